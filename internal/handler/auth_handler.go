package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartcart/internal/config"
	"smartcart/internal/middleware"
	"smartcart/internal/usecase"
)

// /authのHTTP
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/forgot-password", h.forgotPassword)
	g.PUT("/reset-password/:token", h.resetPassword)

	g.GET("/me", h.me, middleware.AuthJWT(cfg))
	g.DELETE("/delete-account", h.deleteAccount, middleware.AuthJWT(cfg))
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "Account created")
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return success(c, out, "Logged in")
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, map[string]usecase.UserDTO{"user": out}, "")
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return writeError(c, err)
	}

	return success(c, nil, "If that email is registered, a reset link has been sent")
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	if err := h.uc.ResetPassword(c.Request().Context(), c.Param("token"), req.Password); err != nil {
		return writeError(c, err)
	}

	return success(c, nil, "Password updated")
}

func (h *AuthHandler) deleteAccount(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	return success(c, nil, "Account deleted")
}
