package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteClient_FetchCart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": {
				"items": [
					{"product": {"id": "p1", "name": "Mug", "price": "5.00"}, "quantity": 2, "price": "5.00"}
				],
				"total_amount": "10.00"
			}
		}`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, func() string { return "tok-1" })
	lines, err := c.FetchCart(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, len(lines))
	assert.Equal(t, "p1", lines[0].Product.ID)
	assert.Equal(t, int64(2), lines[0].Quantity)
}

func TestRemoteClient_AddToCart_SendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/add", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			ProductID string `json:"product_id"`
			Quantity  int64  `json:"quantity"`
		}
		assert.NoError(t, jsonDecode(r, &body))
		assert.Equal(t, "p1", body.ProductID)
		assert.Equal(t, int64(3), body.Quantity)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"items": [{"product": {"id": "p1", "price": "5.00"}, "quantity": 3, "price": "5.00"}], "total_amount": "15.00"}}`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, func() string { return "" })
	lines, err := c.AddToCart(context.Background(), "p1", 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), lines[0].Quantity)
}

func TestRemoteClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success": false, "error": "item already in wishlist"}`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, func() string { return "tok-1" })
	_, err := c.AddToWishlist(context.Background(), "p1")
	assert.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "item already in wishlist", apiErr.Message)
}

// success=false はHTTPが200でもエラー扱い。
func TestRemoteClient_SuccessFalseIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error": "something went wrong"}`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, func() string { return "" })
	_, err := c.FetchCart(context.Background())
	assert.Error(t, err)
}

func TestRemoteClient_InvalidJSONIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, func() string { return "" })
	_, err := c.FetchCart(context.Background())
	assert.Error(t, err)
}

func TestRemoteClient_RemoveFromWishlist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/wishlist/remove/p1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"items": []}, "message": "Removed from wishlist"}`))
	}))
	defer srv.Close()

	c := NewRemoteClient(srv.URL, func() string { return "tok-1" })
	items, err := c.RemoveFromWishlist(context.Background(), "p1")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(items))
}

func jsonDecode(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
