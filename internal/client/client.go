// Package client はストアフロントのカート／ウィッシュリスト状態を
// ゲスト（ローカル保存）とログイン済み（リモート保存）の二系統で整合させる。
package client

import (
	"context"
	"errors"

	"smartcart/internal/domain/model"
)

// カートの明細（商品＋数量）。同一商品の明細は1つまで、数量は常に1以上。
type CartLine struct {
	Product  model.Product `json:"product"`
	Quantity int64         `json:"quantity"`
}

var ErrInvalidQuantity = errors.New("invalid quantity")

// 現在のセッション。UserIDが空ならゲスト。
type SessionReader interface {
	CurrentUserID() string
	Token() string
}

// UIへの成否通知。戻り値は見ない（fire-and-forget）。
type Notifier interface {
	Success(title string, detail string)
	Error(title string, detail string)
}

// カートの保存先。ローカル実装とリモート実装があり、
// エンジンはセッション遷移で有効な方に差し替える。
// 変更系は常にコレクション全体を返す（差分は返さない）。
type CartStore interface {
	Load(ctx context.Context) ([]CartLine, error)
	Add(ctx context.Context, p model.Product, qty int64) ([]CartLine, error)
	SetQuantity(ctx context.Context, productID string, qty int64) ([]CartLine, error)
	Remove(ctx context.Context, productID string) ([]CartLine, error)
	Clear(ctx context.Context) error
}

// ウィッシュリストの保存先。Addの第2戻り値は「実際に追加されたか」
// （ゲストの重複追加はエラーにせず false を返す）。
type WishlistStore interface {
	Load(ctx context.Context) ([]model.Product, error)
	Add(ctx context.Context, p model.Product) ([]model.Product, bool, error)
	Remove(ctx context.Context, productID string) ([]model.Product, error)
	Clear(ctx context.Context) error
}
