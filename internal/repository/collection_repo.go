package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"orient_store/internal/model"
)

// ==================== CollectionRepository 系列仓库 ====================

// CollectionRepository 系列仓库接口
type CollectionRepository interface {
	Create(ctx context.Context, c *model.Collection) error
	GetByID(ctx context.Context, id string) (*model.Collection, error)
	GetByName(ctx context.Context, name string) (*model.Collection, error)
	Update(ctx context.Context, c *model.Collection) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]model.Collection, error)
	Exists(ctx context.Context, id string) (bool, error)
	BatchUpsert(ctx context.Context, cs []model.Collection) error
}

type collectionRepo struct {
	db *gorm.DB
}

// NewCollectionRepository 创建系列仓库
func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepo{db: db}
}

func (r *collectionRepo) Create(ctx context.Context, c *model.Collection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collectionRepo) GetByID(ctx context.Context, id string) (*model.Collection, error) {
	var c model.Collection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *collectionRepo) GetByName(ctx context.Context, name string) (*model.Collection, error) {
	var c model.Collection
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Update 全量保存，Active=false 也会写入
func (r *collectionRepo) Update(ctx context.Context, c *model.Collection) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *collectionRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Collection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *collectionRepo) List(ctx context.Context, activeOnly bool) ([]model.Collection, error) {
	var cs []model.Collection
	query := r.db.WithContext(ctx).Model(&model.Collection{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("number ASC").Order("id ASC").Find(&cs).Error
	return cs, err
}

func (r *collectionRepo) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Collection{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *collectionRepo) BatchUpsert(ctx context.Context, cs []model.Collection) error {
	if len(cs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "image", "number", "active", "updated_at"}),
	}).Create(&cs).Error
}
