package dto

// HeroContent 首页主横幅
type HeroContent struct {
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle" binding:"required"`
	Image    string `json:"image" binding:"required"`
	CtaText  string `json:"ctaText" binding:"required"`
	CtaLink  string `json:"ctaLink" binding:"required"`
}

// PromoBanner 促销条
type PromoBanner struct {
	Text            string `json:"text" binding:"required"`
	Code            string `json:"code" binding:"required"`
	Active          bool   `json:"active"`
	BackgroundColor string `json:"backgroundColor" binding:"omitempty,hexcolor"`
	TextColor       string `json:"textColor" binding:"omitempty,hexcolor"`
	HighlightColor  string `json:"highlightColor" binding:"omitempty,hexcolor"`
}

// HeritageSection 品牌历史
type HeritageSection struct {
	Title       string `json:"title" binding:"required"`
	Subtitle    string `json:"subtitle" binding:"required"`
	Description string `json:"description" binding:"required"`
	CtaText     string `json:"ctaText" binding:"required"`
	CtaLink     string `json:"ctaLink" binding:"required"`
	YearsText   string `json:"yearsText" binding:"required"`
}

// FeaturedWatchReq 后台设置推荐位
type FeaturedWatchReq struct {
	ProductID string `json:"productId" binding:"required,numeric"`
	Order     int    `json:"order"`
	IsNew     bool   `json:"isNew"`
}

// FeaturedWatch 推荐位展示
type FeaturedWatch struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Collection string `json:"collection"`
	Price      int64  `json:"price"`
	Image      string `json:"image"`
	IsNew      bool   `json:"isNew"`
}

// HomePage 首页聚合
type HomePage struct {
	Hero        HeroContent      `json:"hero"`
	Promo       PromoBanner      `json:"promo"`
	Featured    []FeaturedWatch  `json:"featured"`
	Collections []CollectionResp `json:"collections"`
	Heritage    HeritageSection  `json:"heritage"`
}
