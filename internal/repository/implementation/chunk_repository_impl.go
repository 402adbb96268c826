package implementation

import (
	"context"
	"errors"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/mapper"
	"rag-admin-be/internal/model"
	"rag-admin-be/internal/repository/contract"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentMapper(),
	}
}

func (r *ChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChunkRepositoryImpl) Create(ctx context.Context, chunk *entity.Chunk) error {
	m := r.mapper.ChunkToModel(chunk)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*chunk = *r.mapper.ChunkToEntity(m)
	return nil
}

func (r *ChunkRepositoryImpl) CreateBatch(ctx context.Context, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ChunksToModels(chunks)
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ChunkToEntity(m)
	}
	return nil
}

func (r *ChunkRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error) {
	var m model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ChunkToEntity(&m), nil
}

func (r *ChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error) {
	var models []*model.Chunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ChunksToEntities(models), nil
}

func (r *ChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Chunk{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ChunkRepositoryImpl) DeleteByDocument(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.Chunk{}).Error
}

func (r *ChunkRepositoryImpl) GetPreview(ctx context.Context, chunkId uuid.UUID) (*entity.ChunkPreview, error) {
	type row struct {
		ChunkId           uuid.UUID
		DocumentId        uuid.UUID
		DocumentName      string
		KnowledgeBaseId   uuid.UUID
		KnowledgeBaseName string
		SourceURI         string
		Text              string
	}
	var res row

	err := r.db.WithContext(ctx).
		Table("chunks").
		Select(`chunks.id as chunk_id,
			documents.id as document_id,
			documents.name as document_name,
			documents.source_uri as source_uri,
			knowledge_bases.id as knowledge_base_id,
			knowledge_bases.name as knowledge_base_name,
			chunks.text as text`).
		Joins("JOIN documents ON documents.id = chunks.document_id").
		Joins("JOIN knowledge_bases ON knowledge_bases.id = chunks.knowledge_base_id").
		Where("chunks.id = ?", chunkId).
		Where("documents.deleted_at IS NULL").
		Where("knowledge_bases.deleted_at IS NULL").
		Scan(&res).Error
	if err != nil {
		return nil, err
	}
	if res.ChunkId == uuid.Nil {
		return nil, nil
	}

	return &entity.ChunkPreview{
		ChunkId:           res.ChunkId,
		DocumentId:        res.DocumentId,
		DocumentName:      res.DocumentName,
		KnowledgeBaseId:   res.KnowledgeBaseId,
		KnowledgeBaseName: res.KnowledgeBaseName,
		SourceURI:         res.SourceURI,
		Text:              res.Text,
	}, nil
}

func (r *ChunkRepositoryImpl) SearchSimilar(ctx context.Context, kbId uuid.UUID, embedding []float32, limit int) ([]*entity.Chunk, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.Chunk

	err := r.db.WithContext(ctx).
		Where("knowledge_base_id = ?", kbId).
		Where("embedding IS NOT NULL").
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ChunksToEntities(models), nil
}
