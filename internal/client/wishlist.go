package client

import (
	"context"
	"sync"

	"smartcart/internal/domain/model"
)

// WishlistEngine はウィッシュリストの画面状態を一元管理する。
// 保存先の選択と読込の世代管理はCartEngineと同じ。
// カートと違い、削除失敗時にローカルで消すことはしない。
type WishlistEngine struct {
	mu sync.Mutex

	session SessionReader
	notify  Notifier
	local   WishlistStore
	remote  WishlistStore

	active WishlistStore
	gen    uint64

	items []model.Product
}

func NewWishlistEngine(session SessionReader, notify Notifier, local WishlistStore, remote WishlistStore) *WishlistEngine {
	return &WishlistEngine{
		session: session,
		notify:  notify,
		local:   local,
		remote:  remote,
		active:  local,
	}
}

// RefreshSession はセッションの現在値に合わせて保存先を選び直し再読込する。
// 古い読込の結果は捨てる。ログイン時の読込失敗はローカルへフォールバック。
func (e *WishlistEngine) RefreshSession(ctx context.Context) error {
	e.mu.Lock()
	authed := e.session.CurrentUserID() != ""
	if authed {
		e.active = e.remote
	} else {
		e.active = e.local
	}
	e.gen++
	gen := e.gen
	store := e.active
	e.mu.Unlock()

	items, err := store.Load(ctx)
	if err != nil && authed {
		items, _ = e.local.Load(ctx)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		return nil
	}
	e.items = items
	return err
}

// AddItem は商品をウィッシュリストへ入れる。
// 重複はゲストなら黙って無視、ログイン時はサーバーのエラーを通知する
// （どちらも致命ではなく、状態は変えない）。
func (e *WishlistEngine) AddItem(ctx context.Context, p model.Product) error {
	e.mu.Lock()
	store := e.active
	e.mu.Unlock()

	items, added, err := store.Add(ctx, p)
	if err != nil {
		e.notify.Error("Error", "failed to add item to wishlist")
		return err
	}

	e.mu.Lock()
	e.items = items
	e.mu.Unlock()

	if added {
		e.notify.Success("Success", "Added to wishlist!")
	}
	return nil
}

// RemoveItem は商品を外す。失敗時は状態を変えない。
func (e *WishlistEngine) RemoveItem(ctx context.Context, productID string) error {
	e.mu.Lock()
	store := e.active
	e.mu.Unlock()

	items, err := store.Remove(ctx, productID)
	if err != nil {
		e.notify.Error("Error", "failed to remove item from wishlist")
		return err
	}

	e.mu.Lock()
	e.items = items
	e.mu.Unlock()

	e.notify.Success("Success", "Removed from wishlist")
	return nil
}

// Clear は全件消す。失敗時は状態を変えない。
func (e *WishlistEngine) Clear(ctx context.Context) error {
	e.mu.Lock()
	store := e.active
	e.mu.Unlock()

	if err := store.Clear(ctx); err != nil {
		e.notify.Error("Error", "failed to clear wishlist")
		return err
	}

	e.mu.Lock()
	e.items = nil
	e.mu.Unlock()

	e.notify.Success("Success", "Wishlist cleared")
	return nil
}

// Contains は商品が入っているかを現在の状態から同期的に判定する。
func (e *WishlistEngine) Contains(productID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, it := range e.items {
		if it.ID == productID {
			return true
		}
	}
	return false
}

// Items は現在のスナップショットのコピーを返す。
func (e *WishlistEngine) Items() []model.Product {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]model.Product, len(e.items))
	copy(out, e.items)
	return out
}

func (e *WishlistEngine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.items)
}
