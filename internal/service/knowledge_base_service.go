// FILE: internal/service/knowledge_base_service.go
package service

import (
	"context"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"

	"github.com/google/uuid"
)

type IKnowledgeBaseService interface {
	FindAll(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[dto.KnowledgeBaseResponse], error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.KnowledgeBaseResponse, error)
	Create(ctx context.Context, req *dto.CreateKnowledgeBaseRequest) (*dto.KnowledgeBaseResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateKnowledgeBaseRequest) (*dto.KnowledgeBaseResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type knowledgeBaseService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewKnowledgeBaseService(uowFactory unitofwork.RepositoryFactory) IKnowledgeBaseService {
	return &knowledgeBaseService{uowFactory: uowFactory}
}

func (s *knowledgeBaseService) FindAll(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[dto.KnowledgeBaseResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: q.SortBy, Desc: q.Order == "desc"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	}
	countSpecs := []specification.Specification{}
	if q.Search != "" {
		search := specification.NameSearch{Query: q.Search}
		specs = append(specs, search)
		countSpecs = append(countSpecs, search)
	}

	kbs, err := uow.KnowledgeBaseRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.KnowledgeBaseRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.KnowledgeBaseResponse, 0, len(kbs))
	for _, kb := range kbs {
		resp, err := s.toResponse(ctx, uow, kb)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	return serverutils.NewListResponse(items, total, q.Page, q.Limit), nil
}

func (s *knowledgeBaseService) FindOne(ctx context.Context, id uuid.UUID) (*dto.KnowledgeBaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if kb == nil {
		return nil, apperrors.NotFound("knowledge base not found")
	}
	return s.toResponse(ctx, uow, kb)
}

func (s *knowledgeBaseService) Create(ctx context.Context, req *dto.CreateKnowledgeBaseRequest) (*dto.KnowledgeBaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.checkModel(ctx, uow, req.LLMId, entity.ModelKindLLM); err != nil {
		return nil, err
	}
	if err := s.checkModel(ctx, uow, req.EmbeddingModelId, entity.ModelKindEmbedding); err != nil {
		return nil, err
	}

	methods := make([]entity.IndexMethod, 0, len(req.IndexMethods))
	for _, m := range req.IndexMethods {
		methods = append(methods, entity.IndexMethod(m))
	}

	chunking := entity.DefaultChunkingConfig()
	if req.ChunkingConfig != nil {
		chunking = chunkingFromDTO(*req.ChunkingConfig, chunking)
	}

	now := time.Now()
	kb := &entity.KnowledgeBase{
		Id:               uuid.New(),
		Name:             req.Name,
		Description:      req.Description,
		IndexMethods:     entity.NormalizeIndexMethods(methods),
		LLMId:            req.LLMId,
		EmbeddingModelId: req.EmbeddingModelId,
		ChunkingConfig:   chunking,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uow.KnowledgeBaseRepository().Create(ctx, kb); err != nil {
		return nil, err
	}

	return mapper.KnowledgeBaseToResponse(kb, 0, 0), nil
}

func (s *knowledgeBaseService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateKnowledgeBaseRequest) (*dto.KnowledgeBaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if kb == nil {
		return nil, apperrors.NotFound("knowledge base not found")
	}

	if req.Name != "" {
		kb.Name = req.Name
	}
	if req.Description != nil {
		kb.Description = *req.Description
	}
	if req.LLMId != nil {
		if err := s.checkModel(ctx, uow, *req.LLMId, entity.ModelKindLLM); err != nil {
			return nil, err
		}
		kb.LLMId = *req.LLMId
	}
	if req.IndexMethods != nil {
		methods := make([]entity.IndexMethod, 0, len(req.IndexMethods))
		for _, m := range req.IndexMethods {
			methods = append(methods, entity.IndexMethod(m))
		}
		kb.IndexMethods = entity.NormalizeIndexMethods(methods)
	}
	if req.ChunkingConfig != nil {
		kb.ChunkingConfig = chunkingFromDTO(*req.ChunkingConfig, kb.ChunkingConfig)
	}
	kb.UpdatedAt = time.Now()

	if err := uow.KnowledgeBaseRepository().Update(ctx, kb); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, uow, kb)
}

func (s *knowledgeBaseService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if kb == nil {
		return apperrors.NotFound("knowledge base not found")
	}

	engines, err := uow.ChatEngineRepository().FindAll(ctx)
	if err != nil {
		return err
	}
	for _, engine := range engines {
		if engine.Options.ReferencesKnowledgeBase(id) {
			return apperrors.Conflict("knowledge base is referenced by chat engine " + engine.Name)
		}
	}

	return uow.KnowledgeBaseRepository().Delete(ctx, id)
}

// checkModel verifies the referenced model exists and has the right kind.
func (s *knowledgeBaseService) checkModel(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, kind entity.ModelKind) error {
	m, err := uow.AIModelRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if m == nil {
		return apperrors.InvalidInput(string(kind) + " not found")
	}
	if m.Kind != kind {
		return apperrors.InvalidInput("model " + m.Name + " is not a " + string(kind))
	}
	return nil
}

func (s *knowledgeBaseService) toResponse(ctx context.Context, uow unitofwork.UnitOfWork, kb *entity.KnowledgeBase) (*dto.KnowledgeBaseResponse, error) {
	docCount, err := uow.DocumentRepository().Count(ctx, specification.ByKnowledgeBaseID{KnowledgeBaseID: kb.Id})
	if err != nil {
		return nil, err
	}
	dsCount, err := uow.DatasourceRepository().Count(ctx, specification.ByKnowledgeBaseID{KnowledgeBaseID: kb.Id})
	if err != nil {
		return nil, err
	}
	return mapper.KnowledgeBaseToResponse(kb, docCount, dsCount), nil
}

func chunkingFromDTO(in dto.ChunkingConfigDTO, base entity.ChunkingConfig) entity.ChunkingConfig {
	out := base
	if in.ChunkSize > 0 {
		out.ChunkSize = in.ChunkSize
	}
	if in.ChunkOverlap > 0 {
		out.ChunkOverlap = in.ChunkOverlap
	}
	if in.Separator != "" {
		out.Separator = in.Separator
	}
	return out
}
