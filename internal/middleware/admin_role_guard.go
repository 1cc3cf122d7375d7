package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartcart/internal/domain/model"
)

// ADMINロールのみ許可。AuthJWTの後段で使う。
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxUserRoleKey).(string)
			if role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}
