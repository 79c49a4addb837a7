package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"orient_store/internal/model"
)

//go:embed default.yaml
var defaultCatalog []byte

// Collection 系列
type Collection struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Number      string `yaml:"number"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
	Active      *bool  `yaml:"active"`
}

// Watch 商品
type Watch struct {
	SKU             string           `yaml:"sku"`
	Name            string           `yaml:"name"`
	Collection      string           `yaml:"collection"`
	Description     string           `yaml:"description"`
	Price           int64            `yaml:"price"`
	InStock         *bool            `yaml:"in_stock"`
	StockQuantity   int              `yaml:"stock_quantity"`
	Images          []string         `yaml:"images"`
	Features        []string         `yaml:"features"`
	Specs           []model.SpecPair `yaml:"specs"`
	Movement        string           `yaml:"movement"`
	CaseMaterial    string           `yaml:"case_material"`
	DialColor       string           `yaml:"dial_color"`
	WaterResistance string           `yaml:"water_resistance"`
	IsNew           bool             `yaml:"is_new"`
}

// Featured 首页推荐位，按 SKU 引用
type Featured struct {
	SKU   string `yaml:"sku"`
	Order int    `yaml:"order"`
	IsNew bool   `yaml:"is_new"`
}

// Catalog 种子文件
type Catalog struct {
	Collections []Collection `yaml:"collections"`
	Watches     []Watch      `yaml:"watches"`
	Featured    []Featured   `yaml:"featured"`
}

// Default 内置种子目录
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load path 为空时使用内置目录
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取种子文件失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析并校验
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("解析种子文件失败: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	skus := make(map[string]bool, len(c.Watches))
	for i, w := range c.Watches {
		sku := strings.TrimSpace(w.SKU)
		if sku == "" || strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("第 %d 块表缺少 sku 或 name", i+1)
		}
		if skus[sku] {
			return fmt.Errorf("重复的 sku: %s", sku)
		}
		skus[sku] = true
	}
	for _, f := range c.Featured {
		if !skus[f.SKU] {
			return fmt.Errorf("推荐位引用了不存在的 sku: %s", f.SKU)
		}
	}
	return nil
}

// Products 转为商品模型
func (c *Catalog) Products() []model.Product {
	out := make([]model.Product, 0, len(c.Watches))
	for _, w := range c.Watches {
		sku := strings.TrimSpace(w.SKU)
		p := model.Product{
			Name:            w.Name,
			Collection:      w.Collection,
			Description:     w.Description,
			SKU:             &sku,
			Price:           w.Price,
			InStock:         true,
			StockQuantity:   w.StockQuantity,
			Images:          w.Images,
			Features:        w.Features,
			Specs:           w.Specs,
			Movement:        w.Movement,
			CaseMaterial:    w.CaseMaterial,
			DialColor:       w.DialColor,
			WaterResistance: w.WaterResistance,
			IsNew:           w.IsNew,
		}
		if w.InStock != nil {
			p.InStock = *w.InStock
		}
		if len(w.Images) > 0 {
			p.Image = w.Images[0]
		}
		out = append(out, p)
	}
	return out
}

// CollectionModels 转为系列模型，默认启用
func (c *Catalog) CollectionModels() []model.Collection {
	out := make([]model.Collection, 0, len(c.Collections))
	for _, col := range c.Collections {
		active := true
		if col.Active != nil {
			active = *col.Active
		}
		out = append(out, model.Collection{
			ID:          col.ID,
			Name:        col.Name,
			Number:      col.Number,
			Image:       col.Image,
			Description: col.Description,
			Active:      active,
		})
	}
	return out
}
