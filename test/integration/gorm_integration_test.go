package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.KnowledgeBaseRepository())
	assert.NotNil(t, uow.ChunkRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Document Repository", func(t *testing.T) {
		// Count implies the table and its columns exist
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Transactional Knowledge Base Setup", func(t *testing.T) {
		ctx := context.Background()

		// A knowledge base references an LLM and an embedding model, so
		// create those outside the transaction first.
		llm := &entity.AIModel{
			Id:       uuid.New(),
			Kind:     entity.ModelKindLLM,
			Name:     "integration-llm-" + uuid.New().String()[:8],
			Provider: entity.ModelProviderOllama,
			Model:    "llama3",
		}
		embedder := &entity.AIModel{
			Id:       uuid.New(),
			Kind:     entity.ModelKindEmbedding,
			Name:     "integration-embedder-" + uuid.New().String()[:8],
			Provider: entity.ModelProviderOllama,
			Model:    "nomic-embed-text",
		}
		err := uow.AIModelRepository().Create(ctx, llm)
		assert.NoError(t, err)
		err = uow.AIModelRepository().Create(ctx, embedder)
		assert.NoError(t, err)

		defer func() {
			gormDB.Unscoped().Where("id IN ?", []uuid.UUID{llm.Id, embedder.Id}).Delete(&model.AIModel{})
		}()

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		kbId := uuid.New()
		kb := &entity.KnowledgeBase{
			Id:               kbId,
			Name:             "Integration KB " + uuid.New().String()[:8],
			Description:      "created by the gorm integration test",
			IndexMethods:     []entity.IndexMethod{entity.IndexMethodVector},
			LLMId:            llm.Id,
			EmbeddingModelId: embedder.Id,
			ChunkingConfig:   entity.DefaultChunkingConfig(),
		}
		err = uow.KnowledgeBaseRepository().Create(ctx, kb)
		assert.NoError(t, err)

		dsId := uuid.New()
		ds := &entity.Datasource{
			Id:              dsId,
			KnowledgeBaseId: kbId,
			Name:            "integration datasource",
			Type:            entity.DatasourceTypeURL,
			Config:          entity.DatasourceConfig{URL: "https://example.com"},
			Status:          entity.IngestStatusPending,
		}
		err = uow.DatasourceRepository().Create(ctx, ds)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Knowledge Base with Datasource in Transaction")

		gormDB.Unscoped().Where("id = ?", dsId).Delete(&model.Datasource{})
		gormDB.Unscoped().Where("id = ?", kbId).Delete(&model.KnowledgeBase{})
	})
}
