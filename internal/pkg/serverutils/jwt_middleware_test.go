// FILE: internal/pkg/serverutils/jwt_middleware_test.go
package serverutils

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp(middleware fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/p", middleware, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("role"),
		})
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit_test_secret")
	app := protectedApp(JwtMiddleware)

	userId := uuid.New().String()
	valid := signToken(t, "unit_test_secret", jwt.MapClaims{
		"user_id": userId,
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	t.Run("valid token passes and sets locals", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest("GET", "/p", nil), -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("non-bearer header rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Basic abc123")
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("token signed with another secret rejected", func(t *testing.T) {
		forged := signToken(t, "someone_elses_secret", jwt.MapClaims{
			"user_id": userId,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired := signToken(t, "unit_test_secret", jwt.MapClaims{
			"user_id": userId,
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer "+expired)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})
}

func TestAdminMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit_test_secret")
	app := protectedApp(AdminMiddleware)

	t.Run("admin role passes", func(t *testing.T) {
		token := signToken(t, "unit_test_secret", jwt.MapClaims{
			"user_id": uuid.New().String(),
			"role":    "admin",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("user role forbidden", func(t *testing.T) {
		token := signToken(t, "unit_test_secret", jwt.MapClaims{
			"user_id": uuid.New().String(),
			"role":    "user",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("missing role claim forbidden", func(t *testing.T) {
		token := signToken(t, "unit_test_secret", jwt.MapClaims{
			"user_id": uuid.New().String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest("GET", "/p", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 403, resp.StatusCode)
	})
}

func TestParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit_test_secret")

	userId := uuid.New().String()
	token := signToken(t, "unit_test_secret", jwt.MapClaims{
		"user_id": userId,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userId, claims["user_id"])

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)
}
