package dashboard

import (
	"context"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
)

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

// NewAggregator creates a new dashboard aggregator
func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats retrieves dashboard statistics. Counts run outside any
// transaction; a point-in-time snapshot is good enough here.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork, loggerSvc logger.ILogger) (*dto.SystemStatsResponse, error) {
	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalKbs, err := uow.KnowledgeBaseRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalDatasources, err := uow.DatasourceRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalDocuments, err := uow.DocumentRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalChunks, err := uow.ChunkRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalEngines, err := uow.ChatEngineRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalChats, err := uow.ChatRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalMessages, err := uow.ChatRepository().CountMessages(ctx)
	if err != nil {
		return nil, err
	}

	totalFeedbacks, err := uow.FeedbackRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	totalModels, err := uow.AIModelRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	runningEvals, err := uow.EvaluationRepository().CountTasks(ctx,
		specification.Filter("status", string(entity.EvaluationTaskStatusRunning)))
	if err != nil {
		return nil, err
	}

	pendingIngests, err := uow.DatasourceRepository().Count(ctx,
		specification.Filter("status", string(entity.IngestStatusPending)))
	if err != nil {
		return nil, err
	}

	// Recent logs (limit 5); a read failure here should not sink the stats.
	recentLogs, err := a.GetSystemLogs(ctx, loggerSvc, 1, 5, "")
	if err != nil {
		a.logger.Warn("DASHBOARD", "Failed to read recent logs", map[string]interface{}{"error": err.Error()})
		recentLogs = nil
	}

	stats := &dto.SystemStatsResponse{
		TotalUsers:          totalUsers,
		TotalKnowledgeBases: totalKbs,
		TotalDatasources:    totalDatasources,
		TotalDocuments:      totalDocuments,
		TotalChunks:         totalChunks,
		TotalChatEngines:    totalEngines,
		TotalChats:          totalChats,
		TotalMessages:       totalMessages,
		TotalFeedbacks:      totalFeedbacks,
		TotalModels:         totalModels,
		RunningEvaluations:  runningEvals,
		PendingIngests:      pendingIngests,
	}
	for _, l := range recentLogs {
		stats.RecentLogs = append(stats.RecentLogs, *l)
	}
	return stats, nil
}

// GetSystemLogs retrieves system logs
func (a *Aggregator) GetSystemLogs(ctx context.Context, loggerSvc logger.ILogger, page, limit int, level string) ([]*dto.LogListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	logs, err := loggerSvc.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	var res []*dto.LogListResponse
	for _, l := range logs {
		ts, _ := time.Parse(time.RFC3339, l.Timestamp)
		res = append(res, &dto.LogListResponse{
			Id:        l.Id,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		})
	}
	return res, nil
}

// GetLogDetail retrieves a single log entry
func (a *Aggregator) GetLogDetail(ctx context.Context, loggerSvc logger.ILogger, logId string) (*dto.LogDetailResponse, error) {
	l, err := loggerSvc.GetLogById(logId)
	if err != nil {
		return nil, err
	}

	ts, _ := time.Parse(time.RFC3339, l.Timestamp)

	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        logId,
			Level:     l.Level,
			Module:    l.Module,
			Message:   l.Message,
			CreatedAt: ts,
		},
		Details: l.Details,
	}, nil
}
