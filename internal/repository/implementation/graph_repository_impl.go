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

type GraphRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GraphMapper
}

func NewGraphRepository(db *gorm.DB) contract.GraphRepository {
	return &GraphRepositoryImpl{
		db:     db,
		mapper: mapper.NewGraphMapper(),
	}
}

func (r *GraphRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GraphRepositoryImpl) CreateNode(ctx context.Context, node *entity.GraphNode) error {
	m := r.mapper.NodeToModel(node)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*node = *r.mapper.NodeToEntity(m)
	return nil
}

func (r *GraphRepositoryImpl) UpdateNode(ctx context.Context, node *entity.GraphNode) error {
	m := r.mapper.NodeToModel(node)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*node = *r.mapper.NodeToEntity(m)
	return nil
}

func (r *GraphRepositoryImpl) DeleteNode(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GraphNode{}, id).Error
}

func (r *GraphRepositoryImpl) FindOneNode(ctx context.Context, specs ...specification.Specification) (*entity.GraphNode, error) {
	var m model.GraphNode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.NodeToEntity(&m), nil
}

func (r *GraphRepositoryImpl) FindNodes(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphNode, error) {
	var models []*model.GraphNode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.NodesToEntities(models), nil
}

func (r *GraphRepositoryImpl) CountNodes(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GraphNode{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GraphRepositoryImpl) CreateRelationship(ctx context.Context, rel *entity.GraphRelationship) error {
	m := r.mapper.RelationshipToModel(rel)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*rel = *r.mapper.RelationshipToEntity(m)
	return nil
}

func (r *GraphRepositoryImpl) UpdateRelationship(ctx context.Context, rel *entity.GraphRelationship) error {
	m := r.mapper.RelationshipToModel(rel)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*rel = *r.mapper.RelationshipToEntity(m)
	return nil
}

func (r *GraphRepositoryImpl) DeleteRelationship(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GraphRelationship{}, id).Error
}

func (r *GraphRepositoryImpl) FindOneRelationship(ctx context.Context, specs ...specification.Specification) (*entity.GraphRelationship, error) {
	var m model.GraphRelationship
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RelationshipToEntity(&m), nil
}

func (r *GraphRepositoryImpl) FindRelationships(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphRelationship, error) {
	var models []*model.GraphRelationship
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.RelationshipsToEntities(models), nil
}

func (r *GraphRepositoryImpl) CountRelationships(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GraphRelationship{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GraphRepositoryImpl) DeleteRelationshipsTouching(ctx context.Context, nodeId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("source_node_id = ? OR target_node_id = ?", nodeId, nodeId).
		Delete(&model.GraphRelationship{}).Error
}

func (r *GraphRepositoryImpl) SearchNodesByName(ctx context.Context, kbId uuid.UUID, query string, limit int) ([]*entity.GraphNode, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.GraphNode
	pattern := "%" + query + "%"

	err := r.db.WithContext(ctx).
		Where("knowledge_base_id = ?", kbId).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.NodesToEntities(models), nil
}

func (r *GraphRepositoryImpl) SearchNodesByEmbedding(ctx context.Context, kbId uuid.UUID, embedding []float32, limit int) ([]*entity.GraphNode, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.GraphNode

	err := r.db.WithContext(ctx).
		Where("knowledge_base_id = ?", kbId).
		Where("embedding IS NOT NULL").
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.NodesToEntities(models), nil
}
