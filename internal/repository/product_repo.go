package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"orient_store/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// 基础 CRUD
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)

	// 列表查询
	ListByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	ListRelated(ctx context.Context, collection string, excludeID int64, limit int) ([]model.Product, error)
	ExistsBySKU(ctx context.Context, sku string, excludeID int64) (bool, error)

	// 批量操作
	BatchUpsert(ctx context.Context, products []model.Product) error
	IncrementViews(ctx context.Context, id int64) error

	// 统计
	CountByCollection(ctx context.Context) (map[string]int64, error)
	Facet(ctx context.Context, column string) ([]FacetCount, error)

	// 事务
	WithTx(tx *gorm.DB) ProductRepository
	Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error
}

// ==================== 过滤条件 ====================

// 排序键，与前端下拉框一致
const (
	SortPopular   = "popular"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
	SortName      = "name"
)

// ProductFilter 商品过滤条件
type ProductFilter struct {
	Keyword     string
	Collections []string // 任一匹配
	Movements   []string
	Materials   []string
	DialColors  []string
	Water       []string
	MinPrice    *int64
	MaxPrice    *int64
	InStockOnly bool
	Sort        string
	Page        int
	PageSize    int
}

// FacetCount 侧边栏分面计数
type FacetCount struct {
	Value string
	Count int64
}

// 允许做分面统计的列
var facetColumns = map[string]bool{
	"collection":       true,
	"movement":         true,
	"case_material":    true,
	"dial_color":       true,
	"water_resistance": true,
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.Product{}), filter)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Order(sortClause(filter.Sort)).
		Order("id ASC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (r *productRepo) applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if kw := strings.TrimSpace(filter.Keyword); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if len(filter.Collections) > 0 {
		query = query.Where("collection IN ?", filter.Collections)
	}
	if len(filter.Movements) > 0 {
		query = query.Where("movement IN ?", filter.Movements)
	}
	if len(filter.Materials) > 0 {
		query = query.Where("case_material IN ?", filter.Materials)
	}
	if len(filter.DialColors) > 0 {
		query = query.Where("dial_color IN ?", filter.DialColors)
	}
	if len(filter.Water) > 0 {
		query = query.Where("water_resistance IN ?", filter.Water)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.InStockOnly {
		query = query.Where("in_stock = ?", true)
	}
	return query
}

// sortClause 未知排序键按 popular 处理
func sortClause(key string) string {
	switch key {
	case SortPriceAsc:
		return "price ASC"
	case SortPriceDesc:
		return "price DESC"
	case SortNewest:
		return "created_at DESC"
	case SortName:
		return "name ASC"
	default:
		return "views DESC"
	}
}

func (r *productRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepo) ListRelated(ctx context.Context, collection string, excludeID int64, limit int) ([]model.Product, error) {
	var products []model.Product
	if limit <= 0 {
		limit = 8
	}
	err := r.db.WithContext(ctx).
		Where("collection = ? AND id <> ?", collection, excludeID).
		Order("views DESC").
		Order("id ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) ExistsBySKU(ctx context.Context, sku string, excludeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("sku = ? AND id <> ?", sku, excludeID).
		Count(&count).Error
	return count > 0, err
}

// BatchUpsert 以 SKU 为冲突键批量写入（外部目录导入 / 种子数据）
func (r *productRepo) BatchUpsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "collection", "description",
			"price", "in_stock", "stock_quantity",
			"image", "images", "features", "specs",
			"movement", "case_material", "dial_color", "water_resistance",
			"updated_at",
		}),
	}).Create(&products).Error
}

func (r *productRepo) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *productRepo) CountByCollection(ctx context.Context) (map[string]int64, error) {
	facets, err := r.Facet(ctx, "collection")
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int64, len(facets))
	for _, f := range facets {
		stats[f.Value] = f.Count
	}
	return stats, nil
}

func (r *productRepo) Facet(ctx context.Context, column string) ([]FacetCount, error) {
	if !facetColumns[column] {
		return nil, gorm.ErrInvalidField
	}
	var results []FacetCount
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select(column + " as value, COUNT(*) as count").
		Where(column + " <> ''").
		Group(column).
		Order(column + " ASC").
		Scan(&results).Error
	return results, err
}

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{db: tx}
}

func (r *productRepo) Transaction(ctx context.Context, fn func(txRepo ProductRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
