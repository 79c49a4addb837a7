package model

import (
	"time"

	"gorm.io/gorm"
)

type BaseModel struct {
	ID        int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AllModels 需要 AutoMigrate 的全部模型
func AllModels() []interface{} {
	return []interface{}{
		// Catalog
		&Product{}, &Collection{},
		// Content
		&ContentHero{}, &ContentPromoBanner{}, &ContentFeaturedWatch{}, &ContentHeritage{},
		// Boutique
		&Booking{},
		// Manager
		&SysUser{},
	}
}
