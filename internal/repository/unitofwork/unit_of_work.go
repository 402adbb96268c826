package unitofwork

import (
	"context"

	"rag-admin-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	KnowledgeBaseRepository() contract.KnowledgeBaseRepository
	DatasourceRepository() contract.DatasourceRepository
	DocumentRepository() contract.DocumentRepository
	ChunkRepository() contract.ChunkRepository
	GraphRepository() contract.GraphRepository
	AIModelRepository() contract.AIModelRepository
	ChatEngineRepository() contract.ChatEngineRepository
	ChatRepository() contract.ChatRepository
	DatabaseConnectionRepository() contract.DatabaseConnectionRepository
	FeedbackRepository() contract.FeedbackRepository
	EvaluationRepository() contract.EvaluationRepository
	SiteSettingRepository() contract.SiteSettingRepository
}
