package dto

import (
	"time"

	"orient_store/internal/model"
)

// ==================== 请求 DTO ====================

// CreateProductReq 后台创建商品
type CreateProductReq struct {
	// 基础信息
	Name        string `json:"name" binding:"required,max=255"`
	Collection  string `json:"collection" binding:"required,max=100"`
	Description string `json:"description"`
	SKU         string `json:"sku" binding:"omitempty,max=100"`

	// 价格与库存
	Price         int64 `json:"price" binding:"gte=0"`
	InStock       *bool `json:"inStock"` // 默认 true
	StockQuantity int   `json:"stockQuantity" binding:"gte=0"`

	// 图片与详情
	Image    string           `json:"image"`
	Images   []string         `json:"images"`
	Features []string         `json:"features"`
	Specs    []model.SpecPair `json:"specs"`

	// 筛选属性
	Movement        string `json:"movement"`
	CaseMaterial    string `json:"caseMaterial"`
	DialColor       string `json:"dialColor"`
	WaterResistance string `json:"waterResistance"`
	IsNew           bool   `json:"isNew"`
}

// UpdateProductReq 部分更新，未传字段保持不变
type UpdateProductReq struct {
	Name            *string           `json:"name" binding:"omitempty,max=255"`
	Collection      *string           `json:"collection" binding:"omitempty,max=100"`
	Description     *string           `json:"description"`
	SKU             *string           `json:"sku" binding:"omitempty,max=100"`
	Price           *int64            `json:"price" binding:"omitempty,gte=0"`
	InStock         *bool             `json:"inStock"`
	StockQuantity   *int              `json:"stockQuantity" binding:"omitempty,gte=0"`
	Image           *string           `json:"image"`
	Images          *[]string         `json:"images"`
	Features        *[]string         `json:"features"`
	Specs           *[]model.SpecPair `json:"specs"`
	Movement        *string           `json:"movement"`
	CaseMaterial    *string           `json:"caseMaterial"`
	DialColor       *string           `json:"dialColor"`
	WaterResistance *string           `json:"waterResistance"`
	IsNew           *bool             `json:"isNew"`
}

// ProductListReq 商品列表查询参数
type ProductListReq struct {
	Page       int      `form:"page" binding:"omitempty,gte=1"`
	Limit      int      `form:"limit" binding:"omitempty,gte=1,lte=100"`
	Search     string   `form:"search"`
	Collection []string `form:"collection"`
	Movement   []string `form:"movement"`
	Material   []string `form:"material"`
	DialColor  []string `form:"dialColor"`
	Water      []string `form:"waterResistance"`
	MinPrice   *int64   `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice   *int64   `form:"maxPrice" binding:"omitempty,gte=0"`
	InStock    bool     `form:"inStock"`
	Sort       string   `form:"sort" binding:"omitempty,sortkey"`
}

// ==================== 响应 DTO ====================

// ProductResp 商品
type ProductResp struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Collection      string           `json:"collection"`
	Price           int64            `json:"price"`
	Image           string           `json:"image"`
	Images          []string         `json:"images"`
	Description     string           `json:"description"`
	Features        []string         `json:"features"`
	Specs           []model.SpecPair `json:"specs"`
	InStock         bool             `json:"inStock"`
	StockQuantity   int              `json:"stockQuantity"`
	SKU             *string          `json:"sku"`
	Movement        string           `json:"movement,omitempty"`
	CaseMaterial    string           `json:"caseMaterial,omitempty"`
	DialColor       string           `json:"dialColor,omitempty"`
	WaterResistance string           `json:"waterResistance,omitempty"`
	IsNew           bool             `json:"isNew"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Pagination 分页信息
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination totalPages 向上取整
func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// ProductListResp 商品列表
type ProductListResp struct {
	Data       []ProductResp `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// FacetOption 分面选项
type FacetOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// FacetSection 侧边栏分面
type FacetSection struct {
	Key     string        `json:"key"`
	Title   string        `json:"title"`
	Options []FacetOption `json:"options"`
}

// ==================== 转换 ====================

// ToProductResp 模型转响应
func ToProductResp(p *model.Product) ProductResp {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	features := []string(p.Features)
	if features == nil {
		features = []string{}
	}
	specs := []model.SpecPair(p.Specs)
	if specs == nil {
		specs = []model.SpecPair{}
	}
	return ProductResp{
		ID:              p.PublicID(),
		Name:            p.Name,
		Collection:      p.Collection,
		Price:           p.Price,
		Image:           p.Image,
		Images:          images,
		Description:     p.Description,
		Features:        features,
		Specs:           specs,
		InStock:         p.InStock,
		StockQuantity:   p.StockQuantity,
		SKU:             p.SKU,
		Movement:        p.Movement,
		CaseMaterial:    p.CaseMaterial,
		DialColor:       p.DialColor,
		WaterResistance: p.WaterResistance,
		IsNew:           p.IsNew,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ToProductResps 批量转换
func ToProductResps(products []model.Product) []ProductResp {
	list := make([]ProductResp, len(products))
	for i := range products {
		list[i] = ToProductResp(&products[i])
	}
	return list
}
