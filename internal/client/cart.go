package client

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// CartEngine はカートの画面状態を一元管理する。
// ゲスト時はローカル、ログイン時はリモートの保存先を使い、
// 変更系の応答は常に保存先の返すコレクションで丸ごと置き換える
// （最後に返った応答が勝つ）。整合性チェックのための世代番号は
// Load（セッション遷移時の再読込）にのみ適用する。
type CartEngine struct {
	mu sync.Mutex

	session SessionReader
	notify  Notifier
	local   CartStore
	remote  CartStore

	active CartStore
	gen    uint64

	lines  []CartLine
	isOpen bool
}

func NewCartEngine(session SessionReader, notify Notifier, local CartStore, remote CartStore) *CartEngine {
	return &CartEngine{
		session: session,
		notify:  notify,
		local:   local,
		remote:  remote,
		active:  local,
	}
}

// RefreshSession はセッションの現在値に合わせて保存先を選び直し、
// その保存先からカートを読み込む。読込中に再度遷移した場合、
// 古い読込の結果は捨てる。ログイン時の読込失敗はローカルの
// スナップショットへフォールバックする。
// ログイン直後にゲストカートをサーバーへマージすることはしない。
func (e *CartEngine) RefreshSession(ctx context.Context) error {
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

	lines, err := store.Load(ctx)
	if err != nil && authed {
		// リモートが読めない間はローカルの控えで画面を保つ
		lines, _ = e.local.Load(ctx)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen != gen {
		return nil
	}
	e.lines = lines
	return err
}

// AddItem は商品をカートへ入れる。数量0は既定の1として扱い、
// 負数は受け付けない。成功時は応答のコレクションで置き換える。
func (e *CartEngine) AddItem(ctx context.Context, p CartLine) error {
	qty := p.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		e.notify.Error("Error", "invalid quantity")
		return ErrInvalidQuantity
	}

	e.mu.Lock()
	store := e.active
	e.mu.Unlock()

	lines, err := store.Add(ctx, p.Product, qty)
	if err != nil {
		e.notify.Error("Error", "failed to add item to cart")
		return err
	}

	e.mu.Lock()
	e.lines = lines
	e.mu.Unlock()

	e.notify.Success("Success", "Item added to cart!")
	return nil
}

// UpdateQuantity は明細の数量を書き換える。0以下は削除と同義。
// 成功時のトーストは出さない。
func (e *CartEngine) UpdateQuantity(ctx context.Context, productID string, qty int64) error {
	if qty <= 0 {
		return e.RemoveItem(ctx, productID)
	}

	e.mu.Lock()
	store := e.active
	e.mu.Unlock()

	lines, err := store.SetQuantity(ctx, productID, qty)
	if err != nil {
		e.notify.Error("Error", "failed to update quantity")
		return err
	}

	e.mu.Lock()
	e.lines = lines
	e.mu.Unlock()
	return nil
}

// RemoveItem は明細を削除する。保存先が失敗しても画面からは消す
// （削除だけは失敗時もローカルで反映する）。
func (e *CartEngine) RemoveItem(ctx context.Context, productID string) error {
	e.mu.Lock()
	store := e.active
	e.mu.Unlock()

	lines, err := store.Remove(ctx, productID)
	if err != nil {
		e.mu.Lock()
		out := make([]CartLine, 0, len(e.lines))
		for _, l := range e.lines {
			if l.Product.ID != productID {
				out = append(out, l)
			}
		}
		e.lines = out
		e.mu.Unlock()

		e.notify.Error("Error", "failed to remove item from cart")
		return err
	}

	e.mu.Lock()
	e.lines = lines
	e.mu.Unlock()

	e.notify.Success("Success", "Item removed from cart")
	return nil
}

// ClearCart は全明細を消す。失敗時は状態を変えない。
func (e *CartEngine) ClearCart(ctx context.Context) error {
	e.mu.Lock()
	store := e.active
	e.mu.Unlock()

	if err := store.Clear(ctx); err != nil {
		e.notify.Error("Error", "failed to clear cart")
		return err
	}

	e.mu.Lock()
	e.lines = nil
	e.mu.Unlock()

	e.notify.Success("Success", "Cart cleared")
	return nil
}

func (e *CartEngine) ToggleCart() {
	e.mu.Lock()
	e.isOpen = !e.isOpen
	e.mu.Unlock()
}

func (e *CartEngine) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isOpen
}

// Lines は明細のコピーを返す。
func (e *CartEngine) Lines() []CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

// TotalItems は数量の合計。
func (e *CartEngine) TotalItems() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var n int64
	for _, l := range e.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice は金額の合計。常に明細から導出する（別持ちしない）。
func (e *CartEngine) TotalPrice() decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := decimal.Zero
	for _, l := range e.lines {
		total = total.Add(l.Product.Price.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}
