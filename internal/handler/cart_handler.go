package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartcart/internal/config"
	"smartcart/internal/middleware"
	"smartcart/internal/usecase"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type UpdateCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("/add", h.addToCart)
	g.PUT("/update", h.updateItem)
	g.DELETE("/remove/:productId", h.removeItem)
	g.DELETE("/clear", h.clearCart)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "")
}

func (h *CartHandler) addToCart(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	// 省略時は1個
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	out, err := h.uc.AddToCart(c.Request().Context(), userID, usecase.AddCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "Item added to cart")
}

func (h *CartHandler) updateItem(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), userID, usecase.UpdateCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "Cart updated")
}

func (h *CartHandler) removeItem(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), userID, c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "Item removed from cart")
}

func (h *CartHandler) clearCart(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.uc.Clear(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	return success(c, nil, "Cart cleared")
}
