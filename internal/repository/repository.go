package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	BlockType          BlockTypeRepository
	Plan               PlanRepository
	ScheduleEntry      ScheduleEntryRepository
	RecurringTask      RecurringTaskRepository
	RecurringException RecurringExceptionRepository
	Backup             BackupRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		BlockType:          NewBlockTypeRepo(db),
		Plan:               NewPlanRepo(db),
		ScheduleEntry:      NewScheduleEntryRepo(db),
		RecurringTask:      NewRecurringTaskRepo(db),
		RecurringException: NewRecurringExceptionRepo(db),
		Backup:             NewBackupRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
