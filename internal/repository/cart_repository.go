package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"smartcart/internal/domain/model"
)

type CartRepository interface {
	// ユーザーのカートを取得し、無ければ作成
	GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error)
	// カート明細を一覧取得（追加順）
	ListItems(ctx context.Context, cartID string) ([]model.CartItem, error)
	// 同一商品は数量加算。新規は追加時点の価格をスナップショット。
	UpsertItem(ctx context.Context, cartID string, productID string, addQty int64, priceSnapshot decimal.Decimal) error
	// 明細の数量を上書き
	SetItemQuantity(ctx context.Context, cartID string, productID string, qty int64) error
	// 明細を削除
	RemoveItem(ctx context.Context, cartID string, productID string) error
	// 明細を全削除
	Clear(ctx context.Context, cartID string) error
}
