package model

import "time"

// 首页内容均为单行表，ID 固定为 1
const SingletonID = 1

// ContentHero 首页主横幅
type ContentHero struct {
	ID        int64  `gorm:"primaryKey"`
	Title     string `gorm:"size:255;not null"`
	Subtitle  string `gorm:"size:255;not null"`
	Image     string `gorm:"size:512;not null"`
	CtaText   string `gorm:"size:100;not null"`
	CtaLink   string `gorm:"size:255;not null"`
	UpdatedAt time.Time
}

func (ContentHero) TableName() string { return "content_hero" }

// ContentPromoBanner 顶部促销条
type ContentPromoBanner struct {
	ID              int64  `gorm:"primaryKey"`
	Text            string `gorm:"size:255;not null"`
	Code            string `gorm:"size:50;not null"`
	Active          bool   `gorm:"not null"`
	BackgroundColor string `gorm:"size:10"`
	TextColor       string `gorm:"size:10"`
	HighlightColor  string `gorm:"size:10"`
	UpdatedAt       time.Time
}

func (ContentPromoBanner) TableName() string { return "content_promo_banner" }

// ContentFeaturedWatch 首页推荐位
type ContentFeaturedWatch struct {
	ID        int64    `gorm:"primaryKey"`
	ProductID int64    `gorm:"index;not null"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE;"`
	OrderNum  int      `gorm:"not null"`
	IsNew     bool     `gorm:"not null"`
}

func (ContentFeaturedWatch) TableName() string { return "content_featured_watches" }

// ContentHeritage 品牌历史区块
type ContentHeritage struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Subtitle    string `gorm:"size:255;not null"`
	Description string `gorm:"type:text;not null"`
	CtaText     string `gorm:"size:100;not null"`
	CtaLink     string `gorm:"size:255;not null"`
	YearsText   string `gorm:"size:10;not null"`
	UpdatedAt   time.Time
}

func (ContentHeritage) TableName() string { return "content_heritage" }
