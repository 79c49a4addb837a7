package storefront

// ItemsPerLoad 目录页每次 "加载更多" 的数量
const ItemsPerLoad = 6

// SortKey 目录排序方式
type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNewest    SortKey = "newest"
	SortName      SortKey = "name"
)

// ParseSortKey 未知值回落到 popular
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortPopular, SortPriceAsc, SortPriceDesc, SortNewest, SortName:
		return k
	default:
		return SortPopular
	}
}

// ViewMode 网格/列表
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// CatalogView 目录页的排序、视图模式与增量加载
type CatalogView struct {
	Sort    SortKey  `json:"sort"`
	Mode    ViewMode `json:"mode"`
	Showing int      `json:"showing"`
}

// NewCatalogView 默认 popular + grid，首屏 6 个
func NewCatalogView() *CatalogView {
	return &CatalogView{Sort: SortPopular, Mode: ViewGrid, Showing: ItemsPerLoad}
}

// SetSort 切换排序后回到首屏
func (v *CatalogView) SetSort(s SortKey) {
	v.Sort = ParseSortKey(string(s))
	v.Showing = ItemsPerLoad
}

// SetMode 切换视图模式，未知值忽略
func (v *CatalogView) SetMode(m ViewMode) {
	if m == ViewGrid || m == ViewList {
		v.Mode = m
	}
}

// LoadMore 追加一屏，不超过 total
func (v *CatalogView) LoadMore(total int) {
	next := v.Showing + ItemsPerLoad
	if next > total {
		next = total
	}
	if next > v.Showing {
		v.Showing = next
	}
}

// Visible 当前应展示的数量
func (v *CatalogView) Visible(total int) int {
	if total < v.Showing {
		return total
	}
	return v.Showing
}

// HasMore 是否还有未展示的条目
func (v *CatalogView) HasMore(total int) bool {
	return v.Showing < total
}
