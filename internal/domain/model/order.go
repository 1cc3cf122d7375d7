package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

type Order struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	Number      string          `gorm:"type:varchar(32);not null;uniqueIndex" json:"number"`
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 注文の明細。商品名・価格は確定時点のスナップショット。
type OrderItem struct {
	ID                  string          `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID             string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID           string          `gorm:"type:uuid;not null" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Quantity            int64           `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
