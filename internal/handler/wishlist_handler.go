package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartcart/internal/config"
	"smartcart/internal/middleware"
	"smartcart/internal/usecase"
)

// /wishlistのHTTP
type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

// DI
func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

func (h *WishlistHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/wishlist")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.getWishlist)
	g.POST("/add/:productId", h.add)
	g.DELETE("/remove/:productId", h.remove)
	g.DELETE("/clear", h.clear)
}

func (h *WishlistHandler) getWishlist(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.GetWishlist(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "")
}

func (h *WishlistHandler) add(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.Add(c.Request().Context(), userID, c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "Item added to wishlist")
}

func (h *WishlistHandler) remove(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.Remove(c.Request().Context(), userID, c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "Item removed from wishlist")
}

func (h *WishlistHandler) clear(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.uc.Clear(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	return success(c, nil, "Wishlist cleared")
}
