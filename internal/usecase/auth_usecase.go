package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"smartcart/internal/config"
	"smartcart/internal/domain/model"
	"smartcart/internal/mailer"
	repo "smartcart/internal/repository"
)

// accesstokenの有効期限
const accessTokenTTL = 7 * 24 * time.Hour

// パスワード再設定トークンの有効期限
const resetTokenTTL = 1 * time.Hour

const bcryptCost = 12

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, name string, email string, password string) error
	ValidateLogin(ctx context.Context, email string, password string) error
	ValidatePassword(password string) error
}

type UserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthUsecase struct {
	cfg       config.Config
	users     repo.UserRepository
	validator AuthValidator
	mail      mailer.Mailer
	log       *slog.Logger
}

func NewAuthUsecase(
	cfg config.Config,
	users repo.UserRepository,
	validator AuthValidator,
	mail mailer.Mailer,
	log *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
		mail:      mail,
		log:       log,
	}
}

// 会員登録。登録完了メールはベストエフォート。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	if err := u.validator.ValidateRegister(ctx, in.Name, in.Email, in.Password); err != nil {
		return AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.users.Create(ctx, user); err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.mail.SendWelcome(ctx, user.Email, user.Name); err != nil {
		u.log.Warn("welcome mail failed", "user_id", user.ID, "error", err)
	}

	return u.buildAuthResponse(user)
}

// ログイン
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return AuthResponse{}, err
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repo.ErrNotFound) {
		return AuthResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !user.IsActive {
		return AuthResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		u.log.Warn("last login update failed", "user_id", user.ID, "error", err)
	}

	return u.buildAuthResponse(user)
}

// ログイン中ユーザーの取得
func (u *AuthUsecase) Me(ctx context.Context, userID string) (UserDTO, error) {
	if userID == "" {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return UserDTO{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return UserDTO{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toUserDTO(user), nil
}

// パスワード再設定メールの発行。
// 未登録メールでも成功として返す（登録有無を漏らさない）。
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, err := newResetToken()
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	expires := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires

	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", u.cfg.FEURL, token)
	if err := u.mail.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		u.log.Error("reset mail failed", "user_id", user.ID, "error", err)
		return NewHTTPError(http.StatusInternalServerError, "email could not be sent")
	}

	return nil
}

// トークンでパスワードを再設定
func (u *AuthUsecase) ResetPassword(ctx context.Context, token string, password string) error {
	if token == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid or expired token")
	}
	if err := u.validator.ValidatePassword(password); err != nil {
		return err
	}

	user, err := u.users.FindByResetToken(ctx, token)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusBadRequest, "invalid or expired token")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user.PasswordHash = string(hash)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil

	if err := u.users.Update(ctx, user); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// 退会
func (u *AuthUsecase) DeleteAccount(ctx context.Context, userID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if err := u.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AuthUsecase) buildAuthResponse(user *model.User) (AuthResponse, error) {
	token, err := u.issueToken(user)
	if err != nil {
		return AuthResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return AuthResponse{
		User:  toUserDTO(user),
		Token: token,
	}, nil
}

// HS256のアクセストークン
func (u *AuthUsecase) issueToken(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(u.cfg.JWTSecret))
}

func toUserDTO(user *model.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
