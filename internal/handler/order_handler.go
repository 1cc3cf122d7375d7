package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartcart/internal/config"
	"smartcart/internal/middleware"
	"smartcart/internal/usecase"
)

// /ordersのHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/create", h.create)
	g.GET("", h.list)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "Order placed successfully")
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "")
}
