package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"smartcart/internal/config"
	"smartcart/internal/middleware"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret"}
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func runWithAuth(t *testing.T, authz string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	h := middleware.AuthJWT(testConfig())(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	return rec, captured
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub":  "u1",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, captured := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", captured.Get(middleware.CtxUserIDKey))
	assert.Equal(t, "USER", captured.Get(middleware.CtxUserRoleKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, _ := runWithAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	rec, _ := runWithAuth(t, "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub":  "u1",
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, _ := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub":  "u1",
		"role": "USER",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	rec, _ := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingSubClaim(t *testing.T) {
	token := signToken(t, "test-secret", jwt.MapClaims{
		"role": "USER",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	rec, _ := runWithAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()

	run := func(role interface{}) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(middleware.CtxUserRoleKey, role)
		}
		h := middleware.RequireAdmin()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, h(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, run("USER").Code)
	assert.Equal(t, http.StatusForbidden, run(nil).Code)
}
