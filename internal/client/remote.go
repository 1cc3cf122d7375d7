package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"smartcart/internal/domain/model"
)

// 応答ボディの上限（異常応答でメモリを食い尽くさない）
const maxResponseSize = 4 * 1024 * 1024

// APIの失敗応答
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// RemoteClient はサーバー側のカート／ウィッシュリストAPIを叩く薄いクライアント。
// 変更系の成功応答は常にコレクション全体。
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
}

func NewRemoteClient(baseURL string, token func() string) *RemoteClient {
	return &RemoteClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		token: token,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type remoteCartItem struct {
	Product  model.Product   `json:"product"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type cartPayload struct {
	Items       []remoteCartItem `json:"items"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
}

type wishlistPayload struct {
	Items []model.Product `json:"items"`
}

func (c *RemoteClient) FetchCart(ctx context.Context) ([]CartLine, error) {
	var out cartPayload
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return toCartLines(out), nil
}

func (c *RemoteClient) AddToCart(ctx context.Context, productID string, qty int64) ([]CartLine, error) {
	body := map[string]interface{}{"product_id": productID, "quantity": qty}
	var out cartPayload
	if err := c.do(ctx, http.MethodPost, "/cart/add", body, &out); err != nil {
		return nil, err
	}
	return toCartLines(out), nil
}

func (c *RemoteClient) UpdateCartItem(ctx context.Context, productID string, qty int64) ([]CartLine, error) {
	body := map[string]interface{}{"product_id": productID, "quantity": qty}
	var out cartPayload
	if err := c.do(ctx, http.MethodPut, "/cart/update", body, &out); err != nil {
		return nil, err
	}
	return toCartLines(out), nil
}

func (c *RemoteClient) RemoveFromCart(ctx context.Context, productID string) ([]CartLine, error) {
	var out cartPayload
	if err := c.do(ctx, http.MethodDelete, "/cart/remove/"+productID, nil, &out); err != nil {
		return nil, err
	}
	return toCartLines(out), nil
}

func (c *RemoteClient) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/clear", nil, nil)
}

func (c *RemoteClient) FetchWishlist(ctx context.Context) ([]model.Product, error) {
	var out wishlistPayload
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// 既に入っている商品は 400 "item already in wishlist" が返る。
func (c *RemoteClient) AddToWishlist(ctx context.Context, productID string) ([]model.Product, error) {
	var out wishlistPayload
	if err := c.do(ctx, http.MethodPost, "/wishlist/add/"+productID, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *RemoteClient) RemoveFromWishlist(ctx context.Context, productID string) ([]model.Product, error) {
	var out wishlistPayload
	if err := c.do(ctx, http.MethodDelete, "/wishlist/remove/"+productID, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *RemoteClient) ClearWishlist(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/wishlist/clear", nil, nil)
}

func (c *RemoteClient) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: "invalid response"}
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: "invalid response"}
		}
	}
	return nil
}

func toCartLines(p cartPayload) []CartLine {
	lines := make([]CartLine, 0, len(p.Items))
	for _, it := range p.Items {
		lines = append(lines, CartLine{Product: it.Product, Quantity: it.Quantity})
	}
	return lines
}

// RemoteCartStore はRemoteClientをCartStoreに合わせる。
// サーバー応答が常に正：クライアント側で楽観マージはしない。
type RemoteCartStore struct {
	c *RemoteClient
}

func NewRemoteCartStore(c *RemoteClient) *RemoteCartStore {
	return &RemoteCartStore{c: c}
}

func (s *RemoteCartStore) Load(ctx context.Context) ([]CartLine, error) {
	return s.c.FetchCart(ctx)
}

func (s *RemoteCartStore) Add(ctx context.Context, p model.Product, qty int64) ([]CartLine, error) {
	return s.c.AddToCart(ctx, p.ID, qty)
}

func (s *RemoteCartStore) SetQuantity(ctx context.Context, productID string, qty int64) ([]CartLine, error) {
	return s.c.UpdateCartItem(ctx, productID, qty)
}

func (s *RemoteCartStore) Remove(ctx context.Context, productID string) ([]CartLine, error) {
	return s.c.RemoveFromCart(ctx, productID)
}

func (s *RemoteCartStore) Clear(ctx context.Context) error {
	return s.c.ClearCart(ctx)
}

type RemoteWishlistStore struct {
	c *RemoteClient
}

func NewRemoteWishlistStore(c *RemoteClient) *RemoteWishlistStore {
	return &RemoteWishlistStore{c: c}
}

func (s *RemoteWishlistStore) Load(ctx context.Context) ([]model.Product, error) {
	return s.c.FetchWishlist(ctx)
}

// 重複追加はエラーとして返る（サーバーが400を返す）。
func (s *RemoteWishlistStore) Add(ctx context.Context, p model.Product) ([]model.Product, bool, error) {
	items, err := s.c.AddToWishlist(ctx, p.ID)
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (s *RemoteWishlistStore) Remove(ctx context.Context, productID string) ([]model.Product, error) {
	return s.c.RemoveFromWishlist(ctx, productID)
}

func (s *RemoteWishlistStore) Clear(ctx context.Context) error {
	return s.c.ClearWishlist(ctx)
}
