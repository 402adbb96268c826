package user

import (
	"context"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Manager handles user-related admin operations
type Manager struct {
	logger    logger.ILogger
	publisher events.Publisher
}

// NewManager creates a new user manager
func NewManager(logger logger.ILogger, publisher events.Publisher) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
	}
}

// Create creates a new user with password hashing and emits an event.
// The plain password is passed separately because the service may have
// generated a temporary one when the request omitted it.
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateUserRequest, password string) (*entity.User, error) {
	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, apperrors.Conflict("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashStr,
		Role:         entity.UserRole(req.Role),
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	m.publisher.PublishUserCreated(ctx, user.Id, user.Email, user.FullName)

	return user, nil
}

// Update updates user fields
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req dto.UpdateUserRequest) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	// Update fields if present
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		user.Role = entity.UserRole(req.Role)
	}
	if req.Status != "" {
		user.Status = entity.UserStatus(req.Status)
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		user.PasswordHash = &hashStr
	}

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	m.logger.Info("ADMIN", "Deleted User", map[string]interface{}{
		"userId": userId.String(),
	})

	return uow.UserRepository().Delete(ctx, userId)
}

// FindAll retrieves users with pagination and optional search
func (m *Manager) FindAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, search string) ([]*entity.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	if search != "" {
		users, err := uow.UserRepository().SearchUsers(ctx, search, limit, offset)
		if err != nil {
			return nil, 0, err
		}
		total, err := uow.UserRepository().Count(ctx, specification.UserSearch{Query: search})
		if err != nil {
			return nil, 0, err
		}
		return users, total, nil
	}

	users, err := uow.UserRepository().FindAll(ctx,
		specification.Pagination{Limit: limit, Offset: offset},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, 0, err
	}
	total, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// FindOne retrieves a single user by ID
func (m *Manager) FindOne(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}

// UpdateStatus updates user status
func (m *Manager) UpdateStatus(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, status string) error {
	m.logger.Info("ADMIN", "Updated user status", map[string]interface{}{
		"userId": userId.String(),
		"status": status,
	})
	return uow.UserRepository().UpdateStatus(ctx, userId, status)
}
