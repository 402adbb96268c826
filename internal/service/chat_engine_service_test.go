// FILE: internal/service/chat_engine_service_test.go
package service

import (
	"context"
	"testing"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedEngine(repo *fakeChatEngineRepo, name string, isDefault bool) uuid.UUID {
	id := uuid.New()
	repo.rows = append(repo.rows, &entity.ChatEngine{
		Id:        id,
		Name:      name,
		IsDefault: isDefault,
	})
	return id
}

func TestChatEngineCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("first engine becomes the default", func(t *testing.T) {
		uow := newFakeUow()
		svc := NewChatEngineService(uow.factory())

		resp, err := svc.Create(ctx, &dto.CreateChatEngineRequest{Name: "support"})
		require.NoError(t, err)

		assert.True(t, resp.IsDefault)
		assert.True(t, uow.engines.get(resp.Id).IsDefault)
		assert.Equal(t, 1, uow.commits)
	})

	t.Run("explicit default swaps the previous one", func(t *testing.T) {
		uow := newFakeUow()
		oldId := seedEngine(uow.engines, "old", true)
		svc := NewChatEngineService(uow.factory())

		resp, err := svc.Create(ctx, &dto.CreateChatEngineRequest{Name: "new", IsDefault: true})
		require.NoError(t, err)

		assert.True(t, uow.engines.get(resp.Id).IsDefault)
		assert.False(t, uow.engines.get(oldId).IsDefault)
	})

	t.Run("llm reference must exist", func(t *testing.T) {
		uow := newFakeUow()
		seedEngine(uow.engines, "existing", true)
		svc := NewChatEngineService(uow.factory())

		missing := uuid.New()
		_, err := svc.Create(ctx, &dto.CreateChatEngineRequest{
			Name:    "broken",
			Options: dto.EngineOptionsDTO{LLMId: &missing},
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Len(t, uow.engines.rows, 1)
	})

	t.Run("llm reference must point at an llm", func(t *testing.T) {
		uow := newFakeUow()
		embId := seedModel(uow.models, entity.ModelKindEmbedding, "embedder", true)
		svc := NewChatEngineService(uow.factory())

		_, err := svc.Create(ctx, &dto.CreateChatEngineRequest{
			Name:    "broken",
			Options: dto.EngineOptionsDTO{LLMId: &embId},
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.ErrorContains(t, err, "is not a llm")
	})

	t.Run("reranker reference must point at a reranker", func(t *testing.T) {
		uow := newFakeUow()
		llmId := seedModel(uow.models, entity.ModelKindLLM, "chatty", true)
		svc := NewChatEngineService(uow.factory())

		_, err := svc.Create(ctx, &dto.CreateChatEngineRequest{
			Name: "broken",
			Options: dto.EngineOptionsDTO{
				Retrieval: dto.RetrievalOptionsDTO{RerankerId: &llmId},
			},
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.ErrorContains(t, err, "is not a reranker")
	})

	t.Run("knowledge base reference must exist", func(t *testing.T) {
		uow := newFakeUow()
		svc := NewChatEngineService(uow.factory())

		_, err := svc.Create(ctx, &dto.CreateChatEngineRequest{
			Name:    "broken",
			Options: dto.EngineOptionsDTO{KnowledgeBaseIds: []uuid.UUID{uuid.New()}},
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.ErrorContains(t, err, "knowledge base")
	})

	t.Run("database connection reference must exist", func(t *testing.T) {
		uow := newFakeUow()
		svc := NewChatEngineService(uow.factory())

		_, err := svc.Create(ctx, &dto.CreateChatEngineRequest{
			Name:    "broken",
			Options: dto.EngineOptionsDTO{DatabaseConnectionIds: []uuid.UUID{uuid.New()}},
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.ErrorContains(t, err, "database connection")
	})

	t.Run("valid references pass", func(t *testing.T) {
		uow := newFakeUow()
		llmId := seedModel(uow.models, entity.ModelKindLLM, "chatty", true)
		kb := &entity.KnowledgeBase{Id: uuid.New(), Name: "docs"}
		uow.kbs.rows = append(uow.kbs.rows, kb)
		conn := &entity.DatabaseConnection{Id: uuid.New(), Name: "warehouse"}
		uow.connections.rows = append(uow.connections.rows, conn)
		svc := NewChatEngineService(uow.factory())

		resp, err := svc.Create(ctx, &dto.CreateChatEngineRequest{
			Name: "wired",
			Options: dto.EngineOptionsDTO{
				LLMId:                 &llmId,
				KnowledgeBaseIds:      []uuid.UUID{kb.Id},
				DatabaseConnectionIds: []uuid.UUID{conn.Id},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "wired", resp.Name)
	})
}

func TestChatEngineSetDefault(t *testing.T) {
	ctx := context.Background()

	uow := newFakeUow()
	oldId := seedEngine(uow.engines, "old", true)
	newId := seedEngine(uow.engines, "new", false)
	svc := NewChatEngineService(uow.factory())

	resp, err := svc.SetDefault(ctx, newId)
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.True(t, uow.engines.get(newId).IsDefault)
	assert.False(t, uow.engines.get(oldId).IsDefault)
	assert.Equal(t, 1, uow.commits)
}

func TestChatEngineDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("the default engine is protected", func(t *testing.T) {
		uow := newFakeUow()
		id := seedEngine(uow.engines, "default", true)
		svc := NewChatEngineService(uow.factory())

		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.ErrorContains(t, err, "default chat engine")
		assert.NotNil(t, uow.engines.get(id))
	})

	t.Run("a non-default engine deletes", func(t *testing.T) {
		uow := newFakeUow()
		seedEngine(uow.engines, "default", true)
		id := seedEngine(uow.engines, "spare", false)
		svc := NewChatEngineService(uow.factory())

		require.NoError(t, svc.Delete(ctx, id))
		assert.Nil(t, uow.engines.get(id))
	})

	t.Run("missing engine is not found", func(t *testing.T) {
		uow := newFakeUow()
		svc := NewChatEngineService(uow.factory())

		err := svc.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestChatEngineUpdateRevalidatesOptions(t *testing.T) {
	ctx := context.Background()

	uow := newFakeUow()
	id := seedEngine(uow.engines, "bot", true)
	svc := NewChatEngineService(uow.factory())

	missing := uuid.New()
	_, err := svc.Update(ctx, id, &dto.UpdateChatEngineRequest{
		Options: &dto.EngineOptionsDTO{LLMId: &missing},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	// A name-only update skips the reference checks entirely.
	resp, err := svc.Update(ctx, id, &dto.UpdateChatEngineRequest{Name: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", resp.Name)
	assert.Equal(t, "renamed", uow.engines.get(id).Name)
}
