package model

import (
	"strconv"

	"gorm.io/datatypes"
)

// SpecPair 规格参数（有序）
type SpecPair struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Product 腕表商品
type Product struct {
	BaseModel

	// --- 基本信息 ---
	Name        string  `gorm:"size:255;not null;index"`
	Collection  string  `gorm:"size:100;not null;index"` // 系列标签，与 Collection.Name 对应
	Description string  `gorm:"type:text"`
	SKU         *string `gorm:"size:100;uniqueIndex"`

	// --- 价格与库存 ---
	Price         int64 `gorm:"not null;index"` // 整数金额，无小数单位
	InStock       bool  `gorm:"not null"`
	StockQuantity int   `gorm:"default:0"`

	// --- 图片 ---
	Image  string                      `gorm:"size:512"` // 列表页主图
	Images datatypes.JSONSlice[string] `gorm:"type:json"`

	// --- 详情 ---
	Features datatypes.JSONSlice[string]   `gorm:"type:json"`
	Specs    datatypes.JSONSlice[SpecPair] `gorm:"type:json"`

	// --- 筛选属性 (侧边栏) ---
	Movement        string `gorm:"size:50;index"` // automatic, mechanical
	CaseMaterial    string `gorm:"size:50;index"` // steel, titanium, gold
	DialColor       string `gorm:"size:50;index"` // black, blue, white, green
	WaterResistance string `gorm:"size:20;index"` // 200m, 100m, 50m

	// --- 统计 ---
	Views int  `gorm:"default:0"` // popular 排序依据
	IsNew bool `gorm:"default:false"`

	// --- 审计 (后台操作人) ---
	CreatedBy int64 `gorm:"default:0"`
	UpdatedBy int64 `gorm:"default:0"`
}

func (Product) TableName() string {
	return "products"
}

// PublicID 对外暴露的字符串 ID
func (p *Product) PublicID() string {
	return strconv.FormatInt(p.ID, 10)
}

// Gallery 详情页画廊图片，无多图时回落到主图
func (p *Product) Gallery() []string {
	if len(p.Images) > 0 {
		return append([]string(nil), p.Images...)
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return nil
}

// SKUValue SKU 为空时返回空串
func (p *Product) SKUValue() string {
	if p.SKU == nil {
		return ""
	}
	return *p.SKU
}
