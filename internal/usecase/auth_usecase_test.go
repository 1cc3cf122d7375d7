package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"smartcart/internal/config"
	"smartcart/internal/domain/model"
	repo "smartcart/internal/repository"
	"smartcart/internal/usecase"
)

// 常にOKのバリデータ
type okValidator struct{}

func (okValidator) ValidateRegister(ctx context.Context, name string, email string, password string) error {
	return nil
}
func (okValidator) ValidateLogin(ctx context.Context, email string, password string) error {
	return nil
}
func (okValidator) ValidatePassword(password string) error { return nil }

func testConfig() config.Config {
	return config.Config{
		Port:      "8080",
		JWTSecret: "test-secret",
		GoEnv:     "test",
		FEURL:     "http://localhost:3000",
	}
}

func newAuthUsecase(users repo.UserRepository, mail *MailerMock) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(testConfig(), users, okValidator{}, mail, discardLogger())
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	ctx := context.Background()

	uRepo := new(UserRepoMock)
	mail := new(MailerMock)
	uc := newAuthUsecase(uRepo, mail)

	uRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "a@example.com" && u.Role == model.RoleUser && u.PasswordHash != "password123"
	})).Return(nil)
	mail.On("SendWelcome", mock.Anything, "a@example.com", "Alice").Return(nil)

	out, err := uc.Register(ctx, usecase.RegisterInput{Name: "Alice", Email: "a@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "a@example.com", out.User.Email)
	assert.Equal(t, "USER", out.User.Role)

	uRepo.AssertExpectations(t)
	mail.AssertExpectations(t)
}

// 登録完了メールの失敗は登録を妨げない。
func TestAuthUsecase_Register_WelcomeMailFailureIgnored(t *testing.T) {
	ctx := context.Background()

	uRepo := new(UserRepoMock)
	mail := new(MailerMock)
	uc := newAuthUsecase(uRepo, mail)

	uRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mail.On("SendWelcome", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	out, err := uc.Register(ctx, usecase.RegisterInput{Name: "Alice", Email: "a@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	uRepo := new(UserRepoMock)
	uc := newAuthUsecase(uRepo, new(MailerMock))

	uRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{
		ID: "u1", Name: "Alice", Email: "a@example.com", PasswordHash: string(hash), Role: model.RoleUser, IsActive: true,
	}, nil)
	uRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.LastLoginAt != nil
	})).Return(nil)

	out, err := uc.Login(ctx, usecase.LoginInput{Email: "a@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "u1", out.User.ID)

	uRepo.AssertExpectations(t)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	uRepo := new(UserRepoMock)
	uc := newAuthUsecase(uRepo, new(MailerMock))

	uRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{
		Email: "a@example.com", PasswordHash: string(hash), IsActive: true,
	}, nil)

	_, err = uc.Login(ctx, usecase.LoginInput{Email: "a@example.com", Password: "wrong-pass"})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	uRepo := new(UserRepoMock)
	uc := newAuthUsecase(uRepo, new(MailerMock))

	uRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repo.ErrNotFound)

	_, err := uc.Login(context.Background(), usecase.LoginInput{Email: "nobody@example.com", Password: "password123"})
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

// 未登録メールでも成功として返す（登録有無を漏らさない）。
func TestAuthUsecase_ForgotPassword_UnknownEmailSilent(t *testing.T) {
	uRepo := new(UserRepoMock)
	mail := new(MailerMock)
	uc := newAuthUsecase(uRepo, mail)

	uRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repo.ErrNotFound)

	assert.NoError(t, uc.ForgotPassword(context.Background(), "nobody@example.com"))
	mail.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_ForgotPassword_SetsTokenAndSendsMail(t *testing.T) {
	uRepo := new(UserRepoMock)
	mail := new(MailerMock)
	uc := newAuthUsecase(uRepo, mail)

	uRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{
		ID: "u1", Email: "a@example.com", IsActive: true,
	}, nil)
	uRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ResetPasswordToken != nil && u.ResetPasswordExpires != nil
	})).Return(nil)
	mail.On("SendPasswordReset", mock.Anything, "a@example.com", mock.MatchedBy(func(url string) bool {
		return len(url) > len("http://localhost:3000/reset-password/")
	})).Return(nil)

	assert.NoError(t, uc.ForgotPassword(context.Background(), "a@example.com"))
	mail.AssertExpectations(t)
}

func TestAuthUsecase_ForgotPassword_MailFailure(t *testing.T) {
	uRepo := new(UserRepoMock)
	mail := new(MailerMock)
	uc := newAuthUsecase(uRepo, mail)

	uRepo.On("FindByEmail", mock.Anything, "a@example.com").Return(&model.User{ID: "u1", Email: "a@example.com"}, nil)
	uRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	mail.On("SendPasswordReset", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	err := uc.ForgotPassword(context.Background(), "a@example.com")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.Equal(t, "email could not be sent", he.Message)
}

func TestAuthUsecase_ResetPassword_InvalidToken(t *testing.T) {
	uRepo := new(UserRepoMock)
	uc := newAuthUsecase(uRepo, new(MailerMock))

	uRepo.On("FindByResetToken", mock.Anything, "expired").Return(nil, repo.ErrNotFound)

	err := uc.ResetPassword(context.Background(), "expired", "newpassword")
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestAuthUsecase_ResetPassword_Success(t *testing.T) {
	uRepo := new(UserRepoMock)
	uc := newAuthUsecase(uRepo, new(MailerMock))

	tok := "valid-token"
	uRepo.On("FindByResetToken", mock.Anything, tok).Return(&model.User{ID: "u1"}, nil)
	uRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ResetPasswordToken == nil && u.ResetPasswordExpires == nil && u.PasswordHash != ""
	})).Return(nil)

	assert.NoError(t, uc.ResetPassword(context.Background(), tok, "newpassword"))
	uRepo.AssertExpectations(t)
}

func TestAuthUsecase_Me_Unauthorized(t *testing.T) {
	uc := newAuthUsecase(new(UserRepoMock), new(MailerMock))

	_, err := uc.Me(context.Background(), "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}
