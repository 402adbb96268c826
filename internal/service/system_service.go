// FILE: internal/service/system_service.go
package service

import (
	"context"
	"strings"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/dashboard"
)

// ISystemService exposes the dashboard counters and the system log viewer.
type ISystemService interface {
	GetStats(ctx context.Context) (*dto.SystemStatsResponse, error)
	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type systemService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	aggregator *dashboard.Aggregator
}

func NewSystemService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	aggregator *dashboard.Aggregator,
) ISystemService {
	return &systemService{
		uowFactory: uowFactory,
		logger:     logger,
		aggregator: aggregator,
	}
}

func (s *systemService) GetStats(ctx context.Context) (*dto.SystemStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetStats(ctx, uow, s.logger)
}

func (s *systemService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	return s.aggregator.GetSystemLogs(ctx, s.logger, page, limit, strings.ToUpper(level))
}

func (s *systemService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	detail, err := s.aggregator.GetLogDetail(ctx, s.logger, logId)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, apperrors.NotFound("log not found")
		}
		return nil, err
	}
	return detail, nil
}
