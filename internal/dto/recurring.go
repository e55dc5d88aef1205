package dto

// ── 循环任务 CRUD ──

// CreateRecurringTaskRequest 创建循环任务请求
// day_of_week 仅 weekly 必填（0=周一）；day_of_month 仅 monthly 必填
type CreateRecurringTaskRequest struct {
	Title           string  `json:"title" binding:"required,max=80"`
	Note            string  `json:"note" binding:"omitempty,max=255"`
	Pattern         string  `json:"pattern" binding:"required,oneof=daily weekly monthly"`
	Interval        int     `json:"interval" binding:"required,min=1"`
	DayOfWeek       *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	DayOfMonth      *int    `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	StartMinute     int     `json:"start_minute" binding:"min=0,max=1440"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=15,max=1440"`
	StartDate       string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate         *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	BlockTypeID     string  `json:"block_type_id" binding:"required,uuid"`
	PlanID          *string `json:"plan_id" binding:"omitempty,uuid"`
}

// UpdateRecurringTaskRequest 更新循环任务请求（字段级可选）
type UpdateRecurringTaskRequest struct {
	Title           *string `json:"title" binding:"omitempty,max=80"`
	Note            *string `json:"note" binding:"omitempty,max=255"`
	Pattern         *string `json:"pattern" binding:"omitempty,oneof=daily weekly monthly"`
	Interval        *int    `json:"interval" binding:"omitempty,min=1"`
	DayOfWeek       *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	DayOfMonth      *int    `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	StartMinute     *int    `json:"start_minute" binding:"omitempty,min=0,max=1440"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=15,max=1440"`
	StartDate       *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate         *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	BlockTypeID     *string `json:"block_type_id" binding:"omitempty,uuid"`
	PlanID          *string `json:"plan_id" binding:"omitempty,uuid"`
}

// RecurringTaskResponse 循环任务响应
type RecurringTaskResponse struct {
	RecurringTaskID string  `json:"recurring_task_id"`
	Title           string  `json:"title"`
	Note            string  `json:"note,omitempty"`
	Pattern         string  `json:"pattern"`
	Interval        int     `json:"interval"`
	DayOfWeek       *int    `json:"day_of_week,omitempty"`
	DayOfMonth      *int    `json:"day_of_month,omitempty"`
	StartMinute     int     `json:"start_minute"`
	DurationMinutes int     `json:"duration_minutes"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date,omitempty"`
	BlockTypeID     string  `json:"block_type_id"`
	PlanID          *string `json:"plan_id,omitempty"`
}

// ── 单实例例外 ──

// UpsertExceptionRequest 创建/更新例外请求
// 同一 (任务, 日期) 重复提交时覆盖旧例外
type UpsertExceptionRequest struct {
	ExceptionDate      string  `json:"exception_date" binding:"required,datetime=2006-01-02"`
	ExceptionType      string  `json:"exception_type" binding:"required,oneof=deleted modified"`
	NewDay             *string `json:"new_day" binding:"omitempty"`
	NewStartMinute     *int    `json:"new_start_minute" binding:"omitempty,min=0,max=1440"`
	NewDurationMinutes *int    `json:"new_duration_minutes" binding:"omitempty,min=15,max=1440"`
}

// ExceptionResponse 例外响应
type ExceptionResponse struct {
	ExceptionID        string  `json:"exception_id"`
	RecurringTaskID    string  `json:"recurring_task_id"`
	ExceptionDate      string  `json:"exception_date"`
	ExceptionType      string  `json:"exception_type"`
	NewDay             *string `json:"new_day,omitempty"`
	NewStartMinute     *int    `json:"new_start_minute,omitempty"`
	NewDurationMinutes *int    `json:"new_duration_minutes,omitempty"`
}

// ── 整体移动 ──

// MoveAllRequest 移动全部实例请求
// 直接改写模板的锚点星期与时间，影响所有后续展开；
// clear_exception_date 指触发移动的那个实例日期，其 modified 例外被该操作取代
type MoveAllRequest struct {
	Day                string  `json:"day" binding:"required"`
	StartMinute        int     `json:"start_minute" binding:"min=0,max=1440"`
	DurationMinutes    int     `json:"duration_minutes" binding:"required,min=15,max=1440"`
	ClearExceptionDate *string `json:"clear_exception_date" binding:"omitempty,datetime=2006-01-02"`
}

// [自证通过] internal/dto/recurring.go
