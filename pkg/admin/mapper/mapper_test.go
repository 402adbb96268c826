package mapper

import (
	"testing"

	"rag-admin-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestModelToResponseMasksCredentials(t *testing.T) {
	m := &entity.AIModel{
		Id:          uuid.New(),
		Kind:        entity.ModelKindLLM,
		Name:        "gpt-4o",
		Provider:    entity.ModelProviderOpenAI,
		Model:       "gpt-4o",
		Credentials: strPtr("sk-live-secret"),
	}

	res := ModelToResponse(m)
	require.NotNil(t, res)
	require.NotNil(t, res.Credentials)
	assert.Equal(t, MaskedSecret, *res.Credentials)
}

func TestModelToResponseEmptyCredentialsStayNil(t *testing.T) {
	assert.Nil(t, ModelToResponse(&entity.AIModel{Credentials: nil}).Credentials)
	assert.Nil(t, ModelToResponse(&entity.AIModel{Credentials: strPtr("")}).Credentials)
}

func TestDatabaseConnectionToResponseMasksPassword(t *testing.T) {
	c := &entity.DatabaseConnection{
		Id:       uuid.New(),
		Name:     "warehouse",
		Engine:   entity.DatabaseEnginePostgres,
		Host:     "db.internal",
		Port:     5432,
		Password: strPtr("hunter2"),
	}

	res := DatabaseConnectionToResponse(c)
	require.NotNil(t, res)
	require.NotNil(t, res.Password)
	assert.Equal(t, MaskedSecret, *res.Password)
	assert.Equal(t, "warehouse", res.Name)
}

func TestIsMasked(t *testing.T) {
	assert.True(t, IsMasked(nil))
	assert.True(t, IsMasked(strPtr("")))
	assert.True(t, IsMasked(strPtr(MaskedSecret)))
	assert.False(t, IsMasked(strPtr("fresh-secret")))
}

func TestDatasourceToResponseURLPerType(t *testing.T) {
	url := &entity.Datasource{
		Type:   entity.DatasourceTypeURL,
		Config: entity.DatasourceConfig{URL: "https://example.com/doc"},
	}
	sitemap := &entity.Datasource{
		Type:   entity.DatasourceTypeSitemap,
		Config: entity.DatasourceConfig{SitemapURL: "https://example.com/sitemap.xml"},
	}

	assert.Equal(t, "https://example.com/doc", DatasourceToResponse(url, 0).URL)
	assert.Equal(t, "https://example.com/sitemap.xml", DatasourceToResponse(sitemap, 0).URL)
}

func TestChunkToResponseHasVector(t *testing.T) {
	withVec := &entity.Chunk{Text: "hello", Embedding: []float32{0.1, 0.2}}
	withoutVec := &entity.Chunk{Text: "hello"}

	assert.True(t, ChunkToResponse(withVec).HasVector)
	assert.False(t, ChunkToResponse(withoutVec).HasVector)
}

func TestSubgraphToResponseNilIsEmpty(t *testing.T) {
	res := SubgraphToResponse(nil)
	require.NotNil(t, res)
	assert.Empty(t, res.Nodes)
	assert.Empty(t, res.Relationships)
	assert.NotNil(t, res.Nodes)
	assert.NotNil(t, res.Relationships)
}

func TestEngineOptionsRoundTrip(t *testing.T) {
	llm := uuid.New()
	kb := uuid.New()
	opts := entity.EngineOptions{
		LLMId:            &llm,
		KnowledgeBaseIds: []uuid.UUID{kb},
		Retrieval: entity.RetrievalOptions{
			TopK:                5,
			SimilarityThreshold: 0.6,
		},
		SystemPrompt: "answer briefly",
	}

	back := EngineOptionsFromDTO(EngineOptionsToDTO(opts))
	assert.Equal(t, opts, back)
}

func TestNilEntitiesMapToNil(t *testing.T) {
	assert.Nil(t, UserToResponse(nil))
	assert.Nil(t, KnowledgeBaseToResponse(nil, 0, 0))
	assert.Nil(t, ModelToResponse(nil))
	assert.Nil(t, ChatEngineToResponse(nil))
	assert.Nil(t, DatabaseConnectionToResponse(nil))
	assert.Nil(t, TaskToResponse(nil))
	assert.Nil(t, SettingToResponse(nil))
}
