package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"orient_store/internal/model"
)

// ==================== ContentRepository 首页内容仓库 ====================

// ContentRepository 首页内容仓库接口
// 单行内容不存在时返回 (nil, nil)，由 service 层回落默认值
type ContentRepository interface {
	GetHero(ctx context.Context) (*model.ContentHero, error)
	SaveHero(ctx context.Context, hero *model.ContentHero) error
	GetPromo(ctx context.Context) (*model.ContentPromoBanner, error)
	SavePromo(ctx context.Context, promo *model.ContentPromoBanner) error
	GetHeritage(ctx context.Context) (*model.ContentHeritage, error)
	SaveHeritage(ctx context.Context, heritage *model.ContentHeritage) error

	ListFeatured(ctx context.Context) ([]model.ContentFeaturedWatch, error)
	ReplaceFeatured(ctx context.Context, items []model.ContentFeaturedWatch) error
}

type contentRepo struct {
	db *gorm.DB
}

// NewContentRepository 创建内容仓库
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepo{db: db}
}

func (r *contentRepo) GetHero(ctx context.Context) (*model.ContentHero, error) {
	var hero model.ContentHero
	err := r.db.WithContext(ctx).First(&hero, model.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &hero, err
}

func (r *contentRepo) SaveHero(ctx context.Context, hero *model.ContentHero) error {
	hero.ID = model.SingletonID
	return r.db.WithContext(ctx).Save(hero).Error
}

func (r *contentRepo) GetPromo(ctx context.Context) (*model.ContentPromoBanner, error) {
	var promo model.ContentPromoBanner
	err := r.db.WithContext(ctx).First(&promo, model.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &promo, err
}

func (r *contentRepo) SavePromo(ctx context.Context, promo *model.ContentPromoBanner) error {
	promo.ID = model.SingletonID
	return r.db.WithContext(ctx).Save(promo).Error
}

func (r *contentRepo) GetHeritage(ctx context.Context) (*model.ContentHeritage, error) {
	var heritage model.ContentHeritage
	err := r.db.WithContext(ctx).First(&heritage, model.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &heritage, err
}

func (r *contentRepo) SaveHeritage(ctx context.Context, heritage *model.ContentHeritage) error {
	heritage.ID = model.SingletonID
	return r.db.WithContext(ctx).Save(heritage).Error
}

// ListFeatured 按 order_num 升序，附带商品
func (r *contentRepo) ListFeatured(ctx context.Context) ([]model.ContentFeaturedWatch, error) {
	var items []model.ContentFeaturedWatch
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("order_num ASC").
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// ReplaceFeatured 整体替换推荐位列表
func (r *contentRepo) ReplaceFeatured(ctx context.Context, items []model.ContentFeaturedWatch) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.ContentFeaturedWatch{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].Product = nil
		}
		return tx.Create(&items).Error
	})
}
