package model

import "time"

// ── 循环模式常量 ──

const (
	PatternDaily   = "daily"
	PatternWeekly  = "weekly"
	PatternMonthly = "monthly"
)

// ── 例外类型常量 ──

const (
	ExceptionDeleted  = "deleted"
	ExceptionModified = "modified"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
// 单用户系统，无操作人字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// [自证通过] internal/model/base.go
