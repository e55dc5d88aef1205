package model

import "time"

// ScheduleEntry 具体排程条目表 — 对应 schedule_entries
// week_start 为所在周的周一；day 为英文星期名；时间为当日分钟数
type ScheduleEntry struct {
	EntryID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	WeekStart       time.Time `gorm:"type:date;not null;index"                     json:"week_start"`
	Day             string  `gorm:"type:varchar(10);not null"                      json:"day"`
	StartMinute     int     `gorm:"not null"                                       json:"start_minute"`
	DurationMinutes int     `gorm:"not null;default:60"                            json:"duration_minutes"`
	Note            *string `gorm:"type:varchar(255)"                              json:"note,omitempty"`
	CustomTitle     *string `gorm:"type:varchar(80)"                               json:"custom_title,omitempty"`
	IsQuick         bool    `gorm:"not null;default:false"                         json:"is_quick"`
	BlockTypeID     string  `gorm:"type:uuid;not null"                             json:"block_type_id"`
	PlanID          *string `gorm:"type:uuid"                                      json:"plan_id,omitempty"`
	BaseModel

	// 关联
	BlockType *BlockType `gorm:"foreignKey:BlockTypeID;references:BlockTypeID" json:"block_type,omitempty"`
	Plan      *Plan      `gorm:"foreignKey:PlanID;references:PlanID"           json:"plan,omitempty"`
}

// TableName 指定表名
func (ScheduleEntry) TableName() string { return "schedule_entries" }

// [自证通过] internal/model/schedule_entry.go
