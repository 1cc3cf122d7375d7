package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 商品。カタログが所有し、カート／ウィッシュリストはコピーを持つだけ。
type Product struct {
	ID             string            `gorm:"primaryKey;type:uuid" json:"id"`
	Name           string            `gorm:"type:varchar(255);not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description"`
	Price          decimal.Decimal   `gorm:"type:numeric(12,2);not null" json:"price"`
	OriginalPrice  *decimal.Decimal  `gorm:"type:numeric(12,2)" json:"original_price,omitempty"`
	Category       string            `gorm:"type:varchar(100);index" json:"category"`
	Image          string            `gorm:"type:text" json:"image"`
	Images         []string          `gorm:"serializer:json" json:"images"`
	Rating         float64           `gorm:"not null;default:0" json:"rating"`
	Reviews        int64             `gorm:"not null;default:0" json:"reviews"`
	InStock        bool              `gorm:"not null;default:true" json:"in_stock"`
	Specifications map[string]string `gorm:"serializer:json" json:"specifications"`
	Tags           []string          `gorm:"serializer:json" json:"tags"`
	CreatedAt      time.Time         `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
}
