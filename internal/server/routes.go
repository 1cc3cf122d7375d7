package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartcart/internal/config"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e, cfg)
	h.Product.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Wishlist.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
}
