package model

import "time"

// 1ユーザーにつきウィッシュリストは1つ
type Wishlist struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// ウィッシュリストの明細。同一商品は1件まで。数量の概念は無い。
type WishlistItem struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	WishlistID string    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_product" json:"wishlist_id"`
	ProductID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_product" json:"product_id"`
	AddedAt    time.Time `gorm:"not null;autoCreateTime" json:"added_at"`
}
