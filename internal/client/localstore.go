package client

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"smartcart/internal/domain/model"
)

const (
	nsCart     = "cart"
	nsWishlist = "wishlist"
)

// LocalStore は名前空間→JSONスナップショットの永続KV。
// ブラウザのlocalStorage相当：同期書き込み・単一書き手・
// 初回起動や壊れたデータは「無いもの」として扱う。
type LocalStore struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

func NewLocalStore(path string) *LocalStore {
	s := &LocalStore{
		path: path,
		data: map[string]json.RawMessage{},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	// 壊れていたら空から始める
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err == nil && data != nil {
		s.data = data
	}
	return s
}

// Get は名前空間の値をvへ読み出す。無い／壊れている場合は false。
func (s *LocalStore) Get(namespace string, v interface{}) bool {
	s.mu.Lock()
	raw, ok := s.data[namespace]
	s.mu.Unlock()

	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false
	}
	return true
}

// Set は名前空間の値を書き込み、即ファイルへ反映する（write-through）。
func (s *LocalStore) Set(namespace string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[namespace] = raw

	out, err := json.Marshal(s.data)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, out, 0o644)
}

// ゲスト用カート。毎回スナップショット全体を読み書きする。
type LocalCartStore struct {
	store *LocalStore
}

func NewLocalCartStore(store *LocalStore) *LocalCartStore {
	return &LocalCartStore{store: store}
}

func (s *LocalCartStore) Load(ctx context.Context) ([]CartLine, error) {
	var lines []CartLine
	if !s.store.Get(nsCart, &lines) {
		return nil, nil
	}
	// 数量0以下の明細は持たない
	out := lines[:0]
	for _, l := range lines {
		if l.Quantity >= 1 && l.Product.ID != "" {
			out = append(out, l)
		}
	}
	return out, nil
}

// 同一商品は数量加算（位置は維持）、無ければ末尾へ追加。
func (s *LocalCartStore) Add(ctx context.Context, p model.Product, qty int64) ([]CartLine, error) {
	lines, _ := s.Load(ctx)

	found := false
	for i := range lines {
		if lines[i].Product.ID == p.ID {
			lines[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, CartLine{Product: p, Quantity: qty})
	}

	if err := s.store.Set(nsCart, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *LocalCartStore) SetQuantity(ctx context.Context, productID string, qty int64) ([]CartLine, error) {
	lines, _ := s.Load(ctx)

	if qty <= 0 {
		return s.Remove(ctx, productID)
	}

	for i := range lines {
		if lines[i].Product.ID == productID {
			lines[i].Quantity = qty
			break
		}
	}

	if err := s.store.Set(nsCart, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *LocalCartStore) Remove(ctx context.Context, productID string) ([]CartLine, error) {
	lines, _ := s.Load(ctx)

	out := make([]CartLine, 0, len(lines))
	for _, l := range lines {
		if l.Product.ID != productID {
			out = append(out, l)
		}
	}

	if err := s.store.Set(nsCart, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LocalCartStore) Clear(ctx context.Context) error {
	return s.store.Set(nsCart, []CartLine{})
}

// ゲスト用ウィッシュリスト。商品IDで重複排除。
type LocalWishlistStore struct {
	store *LocalStore
}

func NewLocalWishlistStore(store *LocalStore) *LocalWishlistStore {
	return &LocalWishlistStore{store: store}
}

func (s *LocalWishlistStore) Load(ctx context.Context) ([]model.Product, error) {
	var items []model.Product
	if !s.store.Get(nsWishlist, &items) {
		return nil, nil
	}
	return items, nil
}

// 既にあれば何もしない（エラーにもしない）。
func (s *LocalWishlistStore) Add(ctx context.Context, p model.Product) ([]model.Product, bool, error) {
	items, _ := s.Load(ctx)

	for _, it := range items {
		if it.ID == p.ID {
			return items, false, nil
		}
	}

	items = append(items, p)
	if err := s.store.Set(nsWishlist, items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (s *LocalWishlistStore) Remove(ctx context.Context, productID string) ([]model.Product, error) {
	items, _ := s.Load(ctx)

	out := make([]model.Product, 0, len(items))
	for _, it := range items {
		if it.ID != productID {
			out = append(out, it)
		}
	}

	if err := s.store.Set(nsWishlist, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LocalWishlistStore) Clear(ctx context.Context) error {
	return s.store.Set(nsWishlist, []model.Product{})
}
