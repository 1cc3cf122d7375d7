package client

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"smartcart/internal/domain/model"
)

// 保存先のフェイク。remoteMode だと重複追加がエラーになる。
type fakeWishlistStore struct {
	mu         sync.Mutex
	items      []model.Product
	failNext   bool
	remoteMode bool
}

func (s *fakeWishlistStore) snapshot() []model.Product {
	out := make([]model.Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *fakeWishlistStore) fail() error {
	if s.failNext {
		s.failNext = false
		return errors.New("store unavailable")
	}
	return nil
}

func (s *fakeWishlistStore) Load(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

func (s *fakeWishlistStore) Add(ctx context.Context, p model.Product) ([]model.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, false, err
	}
	for _, it := range s.items {
		if it.ID == p.ID {
			if s.remoteMode {
				return nil, false, errors.New("item already in wishlist")
			}
			return s.snapshot(), false, nil
		}
	}
	s.items = append(s.items, p)
	return s.snapshot(), true, nil
}

func (s *fakeWishlistStore) Remove(ctx context.Context, productID string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != productID {
			out = append(out, it)
		}
	}
	s.items = out
	return s.snapshot(), nil
}

func (s *fakeWishlistStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail(); err != nil {
		return err
	}
	s.items = nil
	return nil
}

func newTestWishlistEngine() (*WishlistEngine, *fakeSession, *recordNotifier, *fakeWishlistStore, *fakeWishlistStore) {
	session := &fakeSession{}
	notify := &recordNotifier{}
	local := &fakeWishlistStore{}
	remote := &fakeWishlistStore{remoteMode: true}
	e := NewWishlistEngine(session, notify, local, remote)
	return e, session, notify, local, remote
}

func TestWishlistEngine_AddItem(t *testing.T) {
	ctx := context.Background()
	e, _, notify, _, _ := newTestWishlistEngine()

	p := testProduct("p1", "Mug", "5.00")
	assert.NoError(t, e.AddItem(ctx, p))
	assert.True(t, e.Contains("p1"))
	assert.Equal(t, 1, e.Count())
	assert.Equal(t, 1, notify.successCount())
}

// ゲストの重複追加は何もしない（エラーにもトーストにもしない）。
func TestWishlistEngine_AddItem_GuestDuplicateSilent(t *testing.T) {
	ctx := context.Background()
	e, _, notify, _, _ := newTestWishlistEngine()

	p := testProduct("p1", "Mug", "5.00")
	assert.NoError(t, e.AddItem(ctx, p))
	assert.NoError(t, e.AddItem(ctx, p))

	assert.Equal(t, 1, e.Count())
	assert.Equal(t, 1, notify.successCount())
	assert.Equal(t, 0, notify.errorCount())
}

// ログイン時の重複追加はサーバーのエラーを通知するが、状態は壊さない。
func TestWishlistEngine_AddItem_AuthedDuplicateNotifiesError(t *testing.T) {
	ctx := context.Background()
	e, session, notify, _, remote := newTestWishlistEngine()

	p := testProduct("p1", "Mug", "5.00")
	remote.mu.Lock()
	remote.items = []model.Product{p}
	remote.mu.Unlock()

	session.signIn("u1")
	assert.NoError(t, e.RefreshSession(ctx))

	err := e.AddItem(ctx, p)
	assert.Error(t, err)
	assert.Equal(t, 1, notify.errorCount())
	assert.True(t, e.Contains("p1"))
	assert.Equal(t, 1, e.Count())
}

// カートと違い、削除の失敗をローカルで取り繕うことはしない。
func TestWishlistEngine_RemoveItem_FailureKeepsState(t *testing.T) {
	ctx := context.Background()
	e, session, notify, _, remote := newTestWishlistEngine()

	remote.mu.Lock()
	remote.items = []model.Product{testProduct("p1", "Mug", "5.00")}
	remote.mu.Unlock()

	session.signIn("u1")
	assert.NoError(t, e.RefreshSession(ctx))

	remote.mu.Lock()
	remote.failNext = true
	remote.mu.Unlock()

	err := e.RemoveItem(ctx, "p1")
	assert.Error(t, err)
	assert.True(t, e.Contains("p1"))
	assert.Equal(t, 1, notify.errorCount())
}

func TestWishlistEngine_RemoveItem(t *testing.T) {
	ctx := context.Background()
	e, _, _, _, _ := newTestWishlistEngine()

	assert.NoError(t, e.AddItem(ctx, testProduct("p1", "Mug", "5.00")))
	assert.NoError(t, e.AddItem(ctx, testProduct("p2", "Plate", "7.50")))

	assert.NoError(t, e.RemoveItem(ctx, "p1"))
	assert.False(t, e.Contains("p1"))
	assert.True(t, e.Contains("p2"))
}

func TestWishlistEngine_Clear(t *testing.T) {
	ctx := context.Background()
	e, _, _, _, _ := newTestWishlistEngine()

	assert.NoError(t, e.AddItem(ctx, testProduct("p1", "Mug", "5.00")))
	assert.NoError(t, e.Clear(ctx))
	assert.Equal(t, 0, e.Count())
}

// ログインするとゲストのリストはマージされず、サーバー側の内容に置き換わる。
func TestWishlistEngine_ModeSwitch_NoGuestMerge(t *testing.T) {
	ctx := context.Background()
	e, session, _, local, remote := newTestWishlistEngine()

	assert.NoError(t, e.AddItem(ctx, testProduct("p1", "Mug", "5.00")))

	remote.mu.Lock()
	remote.items = []model.Product{testProduct("p9", "Kettle", "30.00")}
	remote.mu.Unlock()

	session.signIn("u1")
	assert.NoError(t, e.RefreshSession(ctx))

	assert.False(t, e.Contains("p1"))
	assert.True(t, e.Contains("p9"))

	// ゲストのリストはローカルに残ったまま
	saved, err := local.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(saved))
	assert.Equal(t, "p1", saved[0].ID)
}

func TestWishlistEngine_RefreshSession_RemoteFailureFallsBackLocal(t *testing.T) {
	ctx := context.Background()
	e, session, _, local, remote := newTestWishlistEngine()

	local.mu.Lock()
	local.items = []model.Product{testProduct("p1", "Mug", "5.00")}
	local.mu.Unlock()

	session.signIn("u1")
	remote.mu.Lock()
	remote.failNext = true
	remote.mu.Unlock()

	err := e.RefreshSession(ctx)
	assert.Error(t, err)
	assert.True(t, e.Contains("p1"))
}
