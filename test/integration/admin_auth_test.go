package integration

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rag-admin-be/internal/bootstrap"
	"rag-admin-be/internal/config"
	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/model"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/server"
	"rag-admin-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminAuth(t *testing.T) {
	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// Random suffix so reruns never collide with soft-deleted rows.
	suffix := uuid.New().String()[:8]
	adminEmail := "auth-admin-" + suffix + "@example.com"
	userEmail := "auth-user-" + suffix + "@example.com"
	blockedEmail := "auth-blocked-" + suffix + "@example.com"

	pass := "admin123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	hashStr := string(hash)

	adminId := uuid.New()
	admin := model.User{
		Id:           adminId,
		Email:        adminEmail,
		FullName:     "Test Admin",
		PasswordHash: &hashStr,
		Role:         "admin",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	userId := uuid.New()
	user := model.User{
		Id:           userId,
		Email:        userEmail,
		FullName:     "Test User",
		PasswordHash: &hashStr,
		Role:         "user",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	blockedId := uuid.New()
	blocked := model.User{
		Id:           blockedId,
		Email:        blockedEmail,
		FullName:     "Blocked User",
		PasswordHash: &hashStr,
		Role:         "user",
		Status:       "blocked",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	db.Create(&admin)
	db.Create(&user)
	db.Create(&blocked)

	defer func() {
		// Unscoped, otherwise the unique email index keeps the soft-deleted rows around
		db.Unscoped().Delete(&model.User{}, adminId)
		db.Unscoped().Delete(&model.User{}, userId)
		db.Unscoped().Delete(&model.User{}, blockedId)
	}()

	login := func(email, password string) (int, serverutils.BaseResponse[dto.LoginResponse]) {
		body, _ := json.Marshal(dto.LoginRequest{Email: email, Password: password})
		req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req, -1)

		var result serverutils.BaseResponse[dto.LoginResponse]
		json.NewDecoder(resp.Body).Decode(&result)
		return resp.StatusCode, result
	}

	t.Run("Login as Admin success", func(t *testing.T) {
		status, result := login(adminEmail, pass)

		assert.Equal(t, 200, status)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Data.Token)
		assert.Equal(t, "admin", result.Data.User.Role)
	})

	t.Run("Invalid Password", func(t *testing.T) {
		status, _ := login(adminEmail, "wrongpassword")
		assert.Equal(t, 401, status)
	})

	t.Run("Blocked user denied", func(t *testing.T) {
		status, _ := login(blockedEmail, pass)
		assert.Equal(t, 403, status)
	})

	t.Run("Regular user cannot reach admin surface", func(t *testing.T) {
		status, result := login(userEmail, pass)
		assert.Equal(t, 200, status)
		assert.NotEmpty(t, result.Data.Token)

		req := httptest.NewRequest("GET", "/api/v1/admin/users/", nil)
		req.Header.Set("Authorization", "Bearer "+result.Data.Token)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Me returns the session user", func(t *testing.T) {
		_, result := login(adminEmail, pass)

		req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+result.Data.Token)
		resp, _ := app.Test(req, -1)

		assert.Equal(t, 200, resp.StatusCode)

		var me serverutils.BaseResponse[dto.UserResponse]
		json.NewDecoder(resp.Body).Decode(&me)
		assert.Equal(t, adminEmail, me.Data.Email)
	})
}
