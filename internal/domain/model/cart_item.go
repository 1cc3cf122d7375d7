package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。
// 追加時点の価格を必ず保存（後からカタログの価格が変わっても明細は変えない）。
type CartItem struct {
	ID        string          `gorm:"primaryKey;type:uuid" json:"id"`
	CartID    string          `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID string          `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
