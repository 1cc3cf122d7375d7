package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartcart/internal/middleware"
	"smartcart/internal/usecase"
)

// API共通の応答エンベロープ
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func success(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Error: msg})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return fail(c, he.Status, he.Message)
	}

	//500
	return fail(c, http.StatusInternalServerError, "internal error")
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	userID, ok := c.Get(middleware.CtxUserIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
