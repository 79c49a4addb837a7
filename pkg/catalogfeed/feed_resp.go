package catalogfeed

// ==========================================
// DTO: 外部目录数据源返回的原始 JSON
// ==========================================

// FeedSpec 规格参数
type FeedSpec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FeedWatch 外部目录中的一块表
// GET {base}/watches?page=N
type FeedWatch struct {
	SKU             string     `json:"sku"`
	Name            string     `json:"name"`
	Collection      string     `json:"collection"`
	Description     string     `json:"description"`
	Price           int64      `json:"price"`
	InStock         bool       `json:"in_stock"`
	StockQuantity   int        `json:"stock_quantity"`
	Images          []string   `json:"images"`
	Features        []string   `json:"features"`
	Specs           []FeedSpec `json:"specs"`
	Movement        string     `json:"movement"`
	CaseMaterial    string     `json:"case_material"`
	DialColor       string     `json:"dial_color"`
	WaterResistance string     `json:"water_resistance"`
}

// FeedWatchesResp 分页列表
type FeedWatchesResp struct {
	Count    int         `json:"count"`
	Page     int         `json:"page"`
	NextPage int         `json:"next_page"` // 0 表示最后一页
	Results  []FeedWatch `json:"results"`
}

// FeedCollection 外部系列
// GET {base}/collections
type FeedCollection struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Number      string `json:"number"`
}

// FeedCollectionsResp 系列列表
type FeedCollectionsResp struct {
	Count   int              `json:"count"`
	Results []FeedCollection `json:"results"`
}

// FeedErrorResp 通用错误响应
type FeedErrorResp struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
