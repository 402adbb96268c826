// FILE: internal/service/database_connection_service.go
package service

import (
	"context"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"
	"rag-admin-be/pkg/database"

	"github.com/google/uuid"
)

type IDatabaseConnectionService interface {
	FindAll(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.DatabaseConnectionResponse], error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.DatabaseConnectionResponse, error)
	Create(ctx context.Context, req *dto.CreateDatabaseConnectionRequest) (*dto.DatabaseConnectionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDatabaseConnectionRequest) (*dto.DatabaseConnectionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TestConnection(ctx context.Context, id uuid.UUID) (*dto.TestConnectionResponse, error)
}

type databaseConnectionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDatabaseConnectionService(uowFactory unitofwork.RepositoryFactory) IDatabaseConnectionService {
	return &databaseConnectionService{uowFactory: uowFactory}
}

func (s *databaseConnectionService) FindAll(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.DatabaseConnectionResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: q.SortBy, Desc: q.Order == "desc"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	}
	countSpecs := []specification.Specification{}
	if q.Search != "" {
		search := specification.NameSearch{Query: q.Search}
		specs = append(specs, search)
		countSpecs = append(countSpecs, search)
	}

	conns, err := uow.DatabaseConnectionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.DatabaseConnectionRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	return serverutils.NewListResponse(mapper.DatabaseConnectionsToResponse(conns), total, q.Page, q.Limit), nil
}

func (s *databaseConnectionService) FindOne(ctx context.Context, id uuid.UUID) (*dto.DatabaseConnectionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conn, err := s.findConnection(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return mapper.DatabaseConnectionToResponse(conn), nil
}

func (s *databaseConnectionService) Create(ctx context.Context, req *dto.CreateDatabaseConnectionRequest) (*dto.DatabaseConnectionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	conn := &entity.DatabaseConnection{
		Id:          uuid.New(),
		Name:        req.Name,
		Engine:      entity.DatabaseEngine(req.Engine),
		Host:        req.Host,
		Port:        req.Port,
		Database:    req.Database,
		Username:    req.Username,
		Password:    req.Password,
		ReadOnly:    req.ReadOnly,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uow.DatabaseConnectionRepository().Create(ctx, conn); err != nil {
		return nil, err
	}
	return mapper.DatabaseConnectionToResponse(conn), nil
}

func (s *databaseConnectionService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateDatabaseConnectionRequest) (*dto.DatabaseConnectionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conn, err := s.findConnection(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		conn.Name = req.Name
	}
	if req.Engine != "" {
		conn.Engine = entity.DatabaseEngine(req.Engine)
	}
	if req.Host != "" {
		conn.Host = req.Host
	}
	if req.Port != 0 {
		conn.Port = req.Port
	}
	if req.Database != "" {
		conn.Database = req.Database
	}
	if req.Username != "" {
		conn.Username = req.Username
	}
	if !mapper.IsMasked(req.Password) {
		conn.Password = req.Password
	}
	if req.ReadOnly != nil {
		conn.ReadOnly = *req.ReadOnly
	}
	if req.Description != nil {
		conn.Description = *req.Description
	}
	conn.UpdatedAt = time.Now()

	if err := uow.DatabaseConnectionRepository().Update(ctx, conn); err != nil {
		return nil, err
	}
	return mapper.DatabaseConnectionToResponse(conn), nil
}

func (s *databaseConnectionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findConnection(ctx, uow, id); err != nil {
		return err
	}

	engines, err := uow.ChatEngineRepository().FindAll(ctx)
	if err != nil {
		return err
	}
	for _, engine := range engines {
		if engine.Options.ReferencesDatabaseConnection(id) {
			return apperrors.Conflict("connection is referenced by chat engine " + engine.Name)
		}
	}

	return uow.DatabaseConnectionRepository().Delete(ctx, id)
}

func (s *databaseConnectionService) TestConnection(ctx context.Context, id uuid.UUID) (*dto.TestConnectionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conn, err := s.findConnection(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	password := ""
	if conn.Password != nil {
		password = *conn.Password
	}

	start := time.Now()
	probeErr := database.TestConnection(ctx, conn, password)
	latency := time.Since(start).Milliseconds()

	if probeErr != nil {
		return &dto.TestConnectionResponse{
			Success:   false,
			Message:   probeErr.Error(),
			LatencyMs: latency,
		}, nil
	}

	now := time.Now()
	if err := uow.DatabaseConnectionRepository().UpdateLastTested(ctx, id, now); err != nil {
		return nil, err
	}

	return &dto.TestConnectionResponse{
		Success:   true,
		Message:   "connection ok",
		LatencyMs: latency,
	}, nil
}

func (s *databaseConnectionService) findConnection(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.DatabaseConnection, error) {
	conn, err := uow.DatabaseConnectionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if conn == nil {
		return nil, apperrors.NotFound("database connection not found")
	}
	return conn, nil
}
