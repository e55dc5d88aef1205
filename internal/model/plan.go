package model

// Plan 计划分组表 — 对应 plans
type Plan struct {
	PlanID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"plan_id"`
	Name   string `gorm:"type:varchar(80);not null"                      json:"name"`
	Color  string `gorm:"type:varchar(16);not null;default:'#0ea5e9'"    json:"color"`
	BaseModel
}

// TableName 指定表名
func (Plan) TableName() string { return "plans" }

// [自证通过] internal/model/plan.go
