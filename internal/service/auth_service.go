// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory unitofwork.RepositoryFactory
	jwtSecret  string
	tokenTTL   time.Duration
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, jwtSecret string, tokenTTLHours int) IAuthService {
	if jwtSecret == "" {
		jwtSecret = "default_secret"
	}
	if tokenTTLHours <= 0 {
		tokenTTLHours = 72
	}
	return &authService{
		uowFactory: uowFactory,
		jwtSecret:  jwtSecret,
		tokenTTL:   time.Duration(tokenTTLHours) * time.Hour,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		// Generic message: do not leak which emails exist.
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	if user.PasswordHash == nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	if user.Status == entity.UserStatusBlocked {
		return nil, apperrors.Forbidden("user account is blocked")
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	// Best effort; a failed timestamp write should not block the login.
	_ = uow.UserRepository().UpdateLastLogin(ctx, user.Id)
	now := time.Now()
	user.LastLoginAt = &now

	return &dto.LoginResponse{
		Token: signedToken,
		User:  *mapper.UserToResponse(user),
	}, nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil || user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return mapper.UserToResponse(user), nil
}
