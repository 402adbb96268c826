package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:              d.Id,
		KnowledgeBaseId: d.KnowledgeBaseId,
		DatasourceId:    d.DatasourceId,
		Name:            d.Name,
		MimeType:        d.MimeType,
		SourceURI:       d.SourceURI,
		Content:         d.Content,
		SizeBytes:       d.SizeBytes,
		IndexStatus:     entity.IngestStatus(d.IndexStatus),
		IndexError:      d.IndexError,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:              d.Id,
		KnowledgeBaseId: d.KnowledgeBaseId,
		DatasourceId:    d.DatasourceId,
		Name:            d.Name,
		MimeType:        d.MimeType,
		SourceURI:       d.SourceURI,
		Content:         d.Content,
		SizeBytes:       d.SizeBytes,
		IndexStatus:     string(d.IndexStatus),
		IndexError:      d.IndexError,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *DocumentMapper) ChunkToEntity(c *model.Chunk) *entity.Chunk {
	if c == nil {
		return nil
	}

	var embedding []float32
	if c.Embedding != nil {
		embedding = c.Embedding.Slice()
	}

	return &entity.Chunk{
		Id:              c.Id,
		DocumentId:      c.DocumentId,
		KnowledgeBaseId: c.KnowledgeBaseId,
		Ordinal:         c.Ordinal,
		Text:            c.Text,
		Embedding:       embedding,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *DocumentMapper) ChunkToModel(c *entity.Chunk) *model.Chunk {
	if c == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if len(c.Embedding) > 0 {
		v := pgvector.NewVector(c.Embedding)
		embedding = &v
	}

	return &model.Chunk{
		Id:              c.Id,
		DocumentId:      c.DocumentId,
		KnowledgeBaseId: c.KnowledgeBaseId,
		Ordinal:         c.Ordinal,
		Text:            c.Text,
		Embedding:       embedding,
		CreatedAt:       c.CreatedAt,
	}
}

func (m *DocumentMapper) ChunksToEntities(chunks []*model.Chunk) []*entity.Chunk {
	entities := make([]*entity.Chunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ChunkToEntity(c)
	}
	return entities
}

func (m *DocumentMapper) ChunksToModels(chunks []*entity.Chunk) []*model.Chunk {
	models := make([]*model.Chunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ChunkToModel(c)
	}
	return models
}
