package integration

import (
	"encoding/json"
	"fmt"
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

func TestAdminUserCRUD(t *testing.T) {
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

	suffix := uuid.New().String()[:8]

	// Seed an admin, then login through the API to get a real token.
	adminPass := "admin123"
	adminHash, _ := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.DefaultCost)
	adminHashStr := string(adminHash)

	adminId := uuid.New()
	adminEmail := "crud-admin-" + suffix + "@example.com"
	admin := &model.User{
		Id:           adminId,
		Email:        adminEmail,
		FullName:     "CRUD Admin",
		PasswordHash: &adminHashStr,
		Role:         "admin",
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	db.Create(admin)
	defer db.Unscoped().Delete(&model.User{}, adminId)

	loginBody, _ := json.Marshal(dto.LoginRequest{Email: adminEmail, Password: adminPass})
	req := httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(string(loginBody)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)

	var loginRes serverutils.BaseResponse[dto.LoginResponse]
	json.NewDecoder(resp.Body).Decode(&loginRes)
	token := loginRes.Data.Token
	assert.NotEmpty(t, token, "Admin token should not be empty")

	t.Run("Create User", func(t *testing.T) {
		createReq := dto.CreateUserRequest{
			Email:    "created-" + suffix + "@example.com",
			FullName: "Created User",
			Password: "supersecret1",
			Role:     "user",
		}
		body, _ := json.Marshal(createReq)

		req := httptest.NewRequest("POST", "/api/v1/admin/users/", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var createRes serverutils.BaseResponse[dto.UserResponse]
		json.NewDecoder(resp.Body).Decode(&createRes)
		assert.Equal(t, createReq.Email, createRes.Data.Email)
		assert.Equal(t, "user", createRes.Data.Role)

		db.Unscoped().Where("id = ?", createRes.Data.Id).Delete(&model.User{})
	})

	t.Run("Update User Details", func(t *testing.T) {
		targetId := uuid.New()
		target := &model.User{
			Id:        targetId,
			Email:     "target-" + suffix + "@example.com",
			FullName:  "Original Name",
			Role:      "user",
			Status:    "active",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		db.Create(target)
		defer db.Unscoped().Delete(&model.User{}, targetId) // Cleanup in case delete test fails

		updateReq := dto.UpdateUserRequest{
			FullName: "Updated Name",
			Role:     "admin", // Promote to admin
		}
		updateBody, _ := json.Marshal(updateReq)

		req := httptest.NewRequest("PUT", "/api/v1/admin/users/"+targetId.String(), strings.NewReader(string(updateBody)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var updateRes serverutils.BaseResponse[dto.UserResponse]
		json.NewDecoder(resp.Body).Decode(&updateRes)

		assert.Equal(t, "Updated Name", updateRes.Data.FullName)
		assert.Equal(t, "admin", updateRes.Data.Role)

		// Verify in DB
		var dbUser model.User
		db.First(&dbUser, targetId)
		assert.Equal(t, "Updated Name", dbUser.FullName)
		assert.Equal(t, "admin", dbUser.Role)
	})

	t.Run("Block and Delete User", func(t *testing.T) {
		victimId := uuid.New()
		victim := &model.User{
			Id:        victimId,
			Email:     "victim-" + suffix + "@example.com",
			FullName:  "Victim Name",
			Role:      "user",
			Status:    "active",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		db.Create(victim)
		defer db.Unscoped().Delete(&model.User{}, victimId)

		blockBody, _ := json.Marshal(dto.UpdateUserRequest{Status: "blocked"})
		req := httptest.NewRequest("PUT", "/api/v1/admin/users/"+victimId.String(), strings.NewReader(string(blockBody)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		req = httptest.NewRequest("DELETE", "/api/v1/admin/users/"+victimId.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, _ = app.Test(req, -1)

		if resp.StatusCode != 200 {
			var errRes serverutils.BaseResponse[any]
			json.NewDecoder(resp.Body).Decode(&errRes)
			fmt.Printf("Delete Status: %d, Msg: %s\n", resp.StatusCode, errRes.Message)
		}
		assert.Equal(t, 200, resp.StatusCode)

		// Soft delete: the row must survive with deleted_at set.
		var result struct {
			Id        uuid.UUID
			DeletedAt *time.Time
		}
		db.Raw("SELECT id, deleted_at FROM users WHERE id = ?", victimId).Scan(&result)

		if result.Id == uuid.Nil {
			// Row not found (hard delete) also counts as gone.
			return
		}
		assert.NotNil(t, result.DeletedAt, "User row exists but deleted_at is nil")
	})
}
