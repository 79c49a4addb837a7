package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/model"
	"orient_store/internal/repository"
	"orient_store/internal/storefront"
)

// ==================== 常量 ====================

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	RelatedLimit    = 8
)

// 分面键，同时也是列表接口的查询参数名
const (
	FacetCollection = "collection"
	FacetMovement   = "movement"
	FacetMaterial   = "material"
	FacetDialColor  = "dialColor"
	FacetWater      = "waterResistance"
)

// facetDef 分面定义：键 -> 数据库列 + 标题 + 选项标签
type facetDef struct {
	key    string
	column string
	title  string
	labels map[string]string
}

var facetDefs = []facetDef{
	{key: FacetCollection, column: "collection", title: "КОЛЛЕКЦИЯ"},
	{key: FacetMovement, column: "movement", title: "МЕХАНИЗМ", labels: map[string]string{
		"automatic":  "Автоматический",
		"mechanical": "Механический",
	}},
	{key: FacetMaterial, column: "case_material", title: "МАТЕРИАЛ КОРПУСА", labels: map[string]string{
		"steel":    "Нержавеющая сталь",
		"titanium": "Титан",
		"gold":     "Позолота",
	}},
	{key: FacetDialColor, column: "dial_color", title: "ЦВЕТ ЦИФЕРБЛАТА", labels: map[string]string{
		"black": "Черный",
		"blue":  "Синий",
		"white": "Белый",
		"green": "Зеленый",
	}},
	{key: FacetWater, column: "water_resistance", title: "ВОДОНЕПРОНИЦАЕМОСТЬ", labels: map[string]string{
		"200m": "200м",
		"100m": "100м",
		"50m":  "50м",
	}},
}

// ==================== CatalogService 商品目录服务 ====================

// CatalogService 商品目录服务
type CatalogService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, log *zap.Logger) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{productRepo: productRepo, log: log.Named("catalog")}
}

// ==================== 查询 ====================

// List 商品列表（搜索 / 筛选 / 排序 / 分页）
func (s *CatalogService) List(ctx context.Context, req dto.ProductListReq) (*dto.ProductListResp, error) {
	page, limit := normalizePage(req.Page, req.Limit, DefaultPageSize)

	filter := repository.ProductFilter{
		Keyword:     req.Search,
		Collections: req.Collection,
		Movements:   req.Movement,
		Materials:   req.Material,
		DialColors:  req.DialColor,
		Water:       req.Water,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		InStockOnly: req.InStock,
		Sort:        string(storefront.ParseSortKey(req.Sort)),
		Page:        page,
		PageSize:    limit,
	}
	// 价格区间填反时交换
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		filter.MinPrice, filter.MaxPrice = filter.MaxPrice, filter.MinPrice
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("查询商品列表失败: %w", err)
	}

	return &dto.ProductListResp{
		Data:       dto.ToProductResps(products),
		Pagination: dto.NewPagination(page, limit, total),
	}, nil
}

// ListRequestFromPanel 将筛选面板的状态转换为列表请求
func ListRequestFromPanel(q storefront.FilterQuery, view *storefront.CatalogView) dto.ProductListReq {
	req := dto.ProductListReq{
		Collection: q.Values[FacetCollection],
		Movement:   q.Values[FacetMovement],
		Material:   q.Values[FacetMaterial],
		DialColor:  q.Values[FacetDialColor],
		Water:      q.Values[FacetWater],
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
	}
	if view != nil {
		req.Sort = string(view.Sort)
		req.Page = 1
		req.Limit = view.Showing
	}
	return req
}

// Get 商品详情
func (s *CatalogService) Get(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return product, nil
}

// GetByPublicID 字符串 ID 查询（路径参数 / 会话）
func (s *CatalogService) GetByPublicID(ctx context.Context, id string) (*model.Product, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return nil, ErrProductNotFound
	}
	return s.Get(ctx, n)
}

// RecordView 详情页浏览计数，失败只记日志
func (s *CatalogService) RecordView(ctx context.Context, id int64) {
	if err := s.productRepo.IncrementViews(ctx, id); err != nil {
		s.log.Warn("更新浏览量失败", zap.Int64("product_id", id), zap.Error(err))
	}
}

// Related 同系列推荐
func (s *CatalogService) Related(ctx context.Context, p *model.Product, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = RelatedLimit
	}
	items, err := s.productRepo.ListRelated(ctx, p.Collection, p.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("查询相关商品失败: %w", err)
	}
	return items, nil
}

// Facets 侧边栏分面（含计数）
func (s *CatalogService) Facets(ctx context.Context) ([]dto.FacetSection, error) {
	sections := make([]dto.FacetSection, 0, len(facetDefs))
	for _, def := range facetDefs {
		counts, err := s.productRepo.Facet(ctx, def.column)
		if err != nil {
			return nil, fmt.Errorf("统计分面 %s 失败: %w", def.key, err)
		}
		if len(counts) == 0 {
			continue
		}
		section := dto.FacetSection{Key: def.key, Title: def.title}
		for _, c := range counts {
			label := c.Value
			if l, ok := def.labels[c.Value]; ok {
				label = l
			}
			section.Options = append(section.Options, dto.FacetOption{Label: label, Value: c.Value, Count: c.Count})
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// FilterPanelFor 依据当前分面构建筛选面板
func (s *CatalogService) FilterPanelFor(ctx context.Context) (*storefront.FilterPanel, error) {
	facets, err := s.Facets(ctx)
	if err != nil {
		return nil, err
	}
	sections := make([]storefront.FilterSection, len(facets))
	for i, f := range facets {
		opts := make([]storefront.FilterOption, len(f.Options))
		for j, o := range f.Options {
			opts[j] = storefront.FilterOption{Label: o.Label, Value: o.Value, Count: o.Count}
		}
		sections[i] = storefront.FilterSection{Key: f.Key, Title: f.Title, Options: opts}
	}
	return storefront.NewFilterPanel(sections), nil
}

// ==================== 后台管理 ====================

// Create 创建商品，SKU 唯一
func (s *CatalogService) Create(ctx context.Context, req *dto.CreateProductReq) (*model.Product, error) {
	product := &model.Product{
		Name:            strings.TrimSpace(req.Name),
		Collection:      strings.TrimSpace(req.Collection),
		Description:     req.Description,
		Price:           req.Price,
		InStock:         true,
		StockQuantity:   req.StockQuantity,
		Image:           req.Image,
		Images:          req.Images,
		Features:        req.Features,
		Specs:           req.Specs,
		Movement:        req.Movement,
		CaseMaterial:    req.CaseMaterial,
		DialColor:       req.DialColor,
		WaterResistance: req.WaterResistance,
		IsNew:           req.IsNew,
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if product.Name == "" || product.Collection == "" {
		return nil, fmt.Errorf("%w: 名称和系列不能为空", ErrValidation)
	}
	if product.Image == "" && len(product.Images) > 0 {
		product.Image = product.Images[0]
	}

	if sku := strings.TrimSpace(req.SKU); sku != "" {
		exists, err := s.productRepo.ExistsBySKU(ctx, sku, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrSKUExists
		}
		product.SKU = &sku
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("创建商品失败: %w", err)
	}
	s.log.Info("商品已创建", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// Update 部分更新
func (s *CatalogService) Update(ctx context.Context, id int64, req *dto.UpdateProductReq) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku == "" {
			product.SKU = nil
		} else {
			exists, err := s.productRepo.ExistsBySKU(ctx, sku, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrSKUExists
			}
			product.SKU = &sku
		}
	}

	applyString(&product.Name, req.Name)
	applyString(&product.Collection, req.Collection)
	applyString(&product.Description, req.Description)
	applyString(&product.Image, req.Image)
	applyString(&product.Movement, req.Movement)
	applyString(&product.CaseMaterial, req.CaseMaterial)
	applyString(&product.DialColor, req.DialColor)
	applyString(&product.WaterResistance, req.WaterResistance)
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Features != nil {
		product.Features = *req.Features
	}
	if req.Specs != nil {
		product.Specs = *req.Specs
	}

	if strings.TrimSpace(product.Name) == "" || strings.TrimSpace(product.Collection) == "" {
		return nil, fmt.Errorf("%w: 名称和系列不能为空", ErrValidation)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("更新商品失败: %w", err)
	}
	return product, nil
}

// Delete 删除商品
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return notFound(err, ErrProductNotFound)
	}
	s.log.Info("商品已删除", zap.Int64("product_id", id))
	return nil
}

// Import 批量导入（外部目录 / 种子数据），以 SKU 为键 upsert
// 无 SKU 的条目会被跳过
func (s *CatalogService) Import(ctx context.Context, products []model.Product) (int, error) {
	valid := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.SKU == nil || strings.TrimSpace(*p.SKU) == "" || p.Name == "" {
			continue
		}
		if p.Image == "" && len(p.Images) > 0 {
			p.Image = p.Images[0]
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return 0, nil
	}
	err := s.productRepo.Transaction(ctx, func(txRepo repository.ProductRepository) error {
		return txRepo.BatchUpsert(ctx, valid)
	})
	if err != nil {
		return 0, fmt.Errorf("导入商品失败: %w", err)
	}
	return len(valid), nil
}

// ==================== 辅助方法 ====================

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// normalizePage 页码从 1 开始，limit 限制在 [1, MaxPageSize]
func normalizePage(page, limit, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}
