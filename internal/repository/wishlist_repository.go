package repository

import (
	"context"

	"smartcart/internal/domain/model"
)

type WishlistRepository interface {
	// ユーザーのウィッシュリストを取得し、無ければ作成
	GetOrCreateByUserID(ctx context.Context, userID string) (model.Wishlist, error)
	// 明細を一覧取得（追加順）
	ListItems(ctx context.Context, wishlistID string) ([]model.WishlistItem, error)
	// 追加。既にあれば ErrDuplicate。
	AddItem(ctx context.Context, wishlistID string, productID string) error
	RemoveItem(ctx context.Context, wishlistID string, productID string) error
	Clear(ctx context.Context, wishlistID string) error
}
