// FILE: internal/service/user_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/pkg/mailer"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"
	"rag-admin-be/pkg/admin/user"

	"github.com/google/uuid"
)

type IUserService interface {
	FindAll(ctx context.Context, page, limit int, search string) (*serverutils.ListResponse[*dto.UserResponse], error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	manager    *user.Manager
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, manager *user.Manager, emailService mailer.IEmailService, logger logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		manager:    manager,
		mailer:     emailService,
		logger:     logger,
	}
}

func (s *userService) FindAll(ctx context.Context, page, limit int, search string) (*serverutils.ListResponse[*dto.UserResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, total, err := s.manager.FindAll(ctx, uow, page, limit, search)
	if err != nil {
		return nil, err
	}

	return serverutils.NewListResponse(mapper.UsersToResponse(users), total, page, limit), nil
}

func (s *userService) FindOne(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	u, err := s.manager.FindOne(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return mapper.UserToResponse(u), nil
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	password := req.Password
	temporary := false
	if password == "" {
		generated, err := temporaryPassword()
		if err != nil {
			return nil, err
		}
		password = generated
		temporary = true
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	created, err := s.manager.Create(ctx, uow, *req, password)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Invite mail goes out after commit so a mailer outage never rolls
	// back the account. Failures are logged and the account stands.
	if req.SendInvite && s.mailer != nil {
		if err := s.mailer.SendInvite(created.Email, created.FullName, password); err != nil {
			s.logger.Error("USER", "Failed to send invite mail", map[string]interface{}{
				"userId": created.Id.String(),
				"error":  err.Error(),
			})
		}
	}

	if temporary {
		s.logger.Info("USER", "Created user with temporary password", map[string]interface{}{
			"userId": created.Id.String(),
			"email":  created.Email,
		})
	}

	return mapper.UserToResponse(created), nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	updated, err := s.manager.Update(ctx, uow, id, *req)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return mapper.UserToResponse(updated), nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := s.manager.Delete(ctx, uow, id); err != nil {
		return err
	}

	return uow.Commit()
}

// temporaryPassword returns 12 hex chars from a CSPRNG.
func temporaryPassword() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
