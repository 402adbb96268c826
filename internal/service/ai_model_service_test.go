// FILE: internal/service/ai_model_service_test.go
package service

import (
	"context"
	"testing"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/pkg/admin/mapper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedModel(repo *fakeAIModelRepo, kind entity.ModelKind, name string, isDefault bool) uuid.UUID {
	id := uuid.New()
	repo.rows = append(repo.rows, &entity.AIModel{
		Id:        id,
		Kind:      kind,
		Name:      name,
		Provider:  entity.ModelProviderOllama,
		Model:     "llama3",
		IsDefault: isDefault,
	})
	return id
}

func TestAIModelCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("first model of a kind becomes the default", func(t *testing.T) {
		uow := newFakeUow()
		svc := NewAIModelService(uow.factory())

		resp, err := svc.Create(ctx, entity.ModelKindLLM, &dto.CreateModelRequest{
			Name:     "Llama 3",
			Provider: "ollama",
			Model:    "llama3",
		})
		require.NoError(t, err)
		assert.True(t, resp.IsDefault)

		stored := uow.models.get(resp.Id)
		require.NotNil(t, stored)
		assert.True(t, stored.IsDefault)
		assert.Equal(t, 1, uow.begins)
		assert.Equal(t, 1, uow.commits)
	})

	t.Run("explicit default swaps the previous one", func(t *testing.T) {
		uow := newFakeUow()
		oldId := seedModel(uow.models, entity.ModelKindLLM, "old", true)
		svc := NewAIModelService(uow.factory())

		resp, err := svc.Create(ctx, entity.ModelKindLLM, &dto.CreateModelRequest{
			Name:      "new",
			Provider:  "ollama",
			Model:     "llama3",
			IsDefault: true,
		})
		require.NoError(t, err)

		assert.True(t, uow.models.get(resp.Id).IsDefault)
		assert.False(t, uow.models.get(oldId).IsDefault)
	})

	t.Run("non-default create keeps the existing default", func(t *testing.T) {
		uow := newFakeUow()
		oldId := seedModel(uow.models, entity.ModelKindLLM, "old", true)
		svc := NewAIModelService(uow.factory())

		resp, err := svc.Create(ctx, entity.ModelKindLLM, &dto.CreateModelRequest{
			Name:     "new",
			Provider: "ollama",
			Model:    "llama3",
		})
		require.NoError(t, err)

		assert.False(t, resp.IsDefault)
		assert.True(t, uow.models.get(oldId).IsDefault)
	})

	t.Run("defaults are tracked per kind", func(t *testing.T) {
		uow := newFakeUow()
		llmId := seedModel(uow.models, entity.ModelKindLLM, "llm", true)
		svc := NewAIModelService(uow.factory())

		resp, err := svc.Create(ctx, entity.ModelKindEmbedding, &dto.CreateModelRequest{
			Name:     "embedder",
			Provider: "ollama",
			Model:    "nomic-embed-text",
		})
		require.NoError(t, err)

		// First embedding model is its kind's default, the llm default is untouched.
		assert.True(t, resp.IsDefault)
		assert.True(t, uow.models.get(llmId).IsDefault)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		uow := newFakeUow()
		svc := NewAIModelService(uow.factory())

		_, err := svc.Create(ctx, entity.ModelKind("banana"), &dto.CreateModelRequest{
			Name:     "x",
			Provider: "ollama",
			Model:    "llama3",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestAIModelSetDefault(t *testing.T) {
	ctx := context.Background()

	t.Run("moves the default flag", func(t *testing.T) {
		uow := newFakeUow()
		oldId := seedModel(uow.models, entity.ModelKindLLM, "old", true)
		newId := seedModel(uow.models, entity.ModelKindLLM, "new", false)
		svc := NewAIModelService(uow.factory())

		resp, err := svc.SetDefault(ctx, entity.ModelKindLLM, newId)
		require.NoError(t, err)

		assert.True(t, resp.IsDefault)
		assert.True(t, uow.models.get(newId).IsDefault)
		assert.False(t, uow.models.get(oldId).IsDefault)
		assert.Equal(t, 1, uow.commits)
	})

	t.Run("kind mismatch reads as not found", func(t *testing.T) {
		uow := newFakeUow()
		id := seedModel(uow.models, entity.ModelKindEmbedding, "embedder", true)
		svc := NewAIModelService(uow.factory())

		_, err := svc.SetDefault(ctx, entity.ModelKindLLM, id)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAIModelDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("default with siblings is protected", func(t *testing.T) {
		uow := newFakeUow()
		id := seedModel(uow.models, entity.ModelKindLLM, "default", true)
		seedModel(uow.models, entity.ModelKindLLM, "other", false)
		svc := NewAIModelService(uow.factory())

		err := svc.Delete(ctx, entity.ModelKindLLM, id)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.NotNil(t, uow.models.get(id))
	})

	t.Run("sole model of its kind can be deleted", func(t *testing.T) {
		uow := newFakeUow()
		id := seedModel(uow.models, entity.ModelKindLLM, "only", true)
		svc := NewAIModelService(uow.factory())

		require.NoError(t, svc.Delete(ctx, entity.ModelKindLLM, id))
		assert.Nil(t, uow.models.get(id))
	})

	t.Run("knowledge base reference is protected", func(t *testing.T) {
		uow := newFakeUow()
		uow.kbs.modelRefs = 1
		id := seedModel(uow.models, entity.ModelKindEmbedding, "embedder", false)
		seedModel(uow.models, entity.ModelKindEmbedding, "default", true)
		svc := NewAIModelService(uow.factory())

		err := svc.Delete(ctx, entity.ModelKindEmbedding, id)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.ErrorContains(t, err, "knowledge base")
	})

	t.Run("chat engine reference is protected", func(t *testing.T) {
		uow := newFakeUow()
		id := seedModel(uow.models, entity.ModelKindLLM, "wired", false)
		seedModel(uow.models, entity.ModelKindLLM, "default", true)
		uow.engines.rows = append(uow.engines.rows, &entity.ChatEngine{
			Id:      uuid.New(),
			Name:    "support bot",
			Options: entity.EngineOptions{LLMId: &id},
		})
		svc := NewAIModelService(uow.factory())

		err := svc.Delete(ctx, entity.ModelKindLLM, id)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.ErrorContains(t, err, "support bot")
	})

	t.Run("reranker wired into retrieval options is protected", func(t *testing.T) {
		uow := newFakeUow()
		id := seedModel(uow.models, entity.ModelKindReranker, "reranker", false)
		seedModel(uow.models, entity.ModelKindReranker, "default", true)
		uow.engines.rows = append(uow.engines.rows, &entity.ChatEngine{
			Id:   uuid.New(),
			Name: "kb bot",
			Options: entity.EngineOptions{
				Retrieval: entity.RetrievalOptions{RerankerId: &id},
			},
		})
		svc := NewAIModelService(uow.factory())

		err := svc.Delete(ctx, entity.ModelKindReranker, id)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("missing model is not found", func(t *testing.T) {
		uow := newFakeUow()
		svc := NewAIModelService(uow.factory())

		err := svc.Delete(ctx, entity.ModelKindLLM, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestAIModelUpdateCredentials(t *testing.T) {
	ctx := context.Background()
	stored := "sk-live-123"

	newUowWithSecret := func() (*fakeUow, uuid.UUID) {
		uow := newFakeUow()
		id := seedModel(uow.models, entity.ModelKindLLM, "gpt", true)
		uow.models.get(id).Credentials = &stored
		return uow, id
	}

	t.Run("masked credentials keep the stored secret", func(t *testing.T) {
		uow, id := newUowWithSecret()
		svc := NewAIModelService(uow.factory())

		masked := mapper.MaskedSecret
		_, err := svc.Update(ctx, entity.ModelKindLLM, id, &dto.UpdateModelRequest{
			Name:        "gpt renamed",
			Credentials: &masked,
		})
		require.NoError(t, err)

		row := uow.models.get(id)
		assert.Equal(t, "gpt renamed", row.Name)
		require.NotNil(t, row.Credentials)
		assert.Equal(t, stored, *row.Credentials)
	})

	t.Run("nil credentials keep the stored secret", func(t *testing.T) {
		uow, id := newUowWithSecret()
		svc := NewAIModelService(uow.factory())

		_, err := svc.Update(ctx, entity.ModelKindLLM, id, &dto.UpdateModelRequest{Name: "renamed"})
		require.NoError(t, err)

		row := uow.models.get(id)
		require.NotNil(t, row.Credentials)
		assert.Equal(t, stored, *row.Credentials)
	})

	t.Run("fresh credentials replace the stored secret", func(t *testing.T) {
		uow, id := newUowWithSecret()
		svc := NewAIModelService(uow.factory())

		fresh := "sk-live-456"
		_, err := svc.Update(ctx, entity.ModelKindLLM, id, &dto.UpdateModelRequest{Credentials: &fresh})
		require.NoError(t, err)

		row := uow.models.get(id)
		require.NotNil(t, row.Credentials)
		assert.Equal(t, fresh, *row.Credentials)
	})
}

func TestAIModelTestModelUnknownKind(t *testing.T) {
	uow := newFakeUow()
	svc := NewAIModelService(uow.factory())

	_, err := svc.TestModel(context.Background(), entity.ModelKind("banana"), &dto.CreateModelRequest{
		Name:     "x",
		Provider: "ollama",
		Model:    "llama3",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
