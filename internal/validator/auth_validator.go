package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	repo "smartcart/internal/repository"
	"smartcart/internal/usecase"
)

type authValidator struct {
	users repo.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repo.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, name string, email string, password string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	// 必須チェック
	if name == "" || email == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "name, email and password are required")
	}

	// email形式
	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	// パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}

	// email重複チェック（DBが必要）
	u, err := v.users.FindByEmail(ctx, email)
	if err == nil && u != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "email already used")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	if !isEmailLike(email) {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid email")
	}

	return nil
}

// パスワード再設定の入力を検証
func (v *authValidator) ValidatePassword(password string) error {
	if len(password) < 8 {
		return usecase.NewHTTPError(http.StatusBadRequest, "password must be at least 8 characters")
	}
	return nil
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func isEmailLike(s string) bool {
	return emailRe.MatchString(s)
}
