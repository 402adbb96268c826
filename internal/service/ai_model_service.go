// FILE: internal/service/ai_model_service.go
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
	"rag-admin-be/pkg/provider"

	"github.com/google/uuid"
)

const probeTimeout = 15 * time.Second

type IAIModelService interface {
	FindAll(ctx context.Context, kind entity.ModelKind, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.ModelResponse], error)
	FindOne(ctx context.Context, kind entity.ModelKind, id uuid.UUID) (*dto.ModelResponse, error)
	Create(ctx context.Context, kind entity.ModelKind, req *dto.CreateModelRequest) (*dto.ModelResponse, error)
	Update(ctx context.Context, kind entity.ModelKind, id uuid.UUID, req *dto.UpdateModelRequest) (*dto.ModelResponse, error)
	SetDefault(ctx context.Context, kind entity.ModelKind, id uuid.UUID) (*dto.ModelResponse, error)
	Delete(ctx context.Context, kind entity.ModelKind, id uuid.UUID) error
	TestModel(ctx context.Context, kind entity.ModelKind, req *dto.CreateModelRequest) (*dto.TestModelResponse, error)
}

type aiModelService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAIModelService(uowFactory unitofwork.RepositoryFactory) IAIModelService {
	return &aiModelService{uowFactory: uowFactory}
}

func (s *aiModelService) FindAll(ctx context.Context, kind entity.ModelKind, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.ModelResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	byKind := specification.ByModelKind{Kind: string(kind)}
	specs := []specification.Specification{
		byKind,
		specification.OrderBy{Field: q.SortBy, Desc: q.Order == "desc"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	}
	countSpecs := []specification.Specification{byKind}
	if q.Search != "" {
		search := specification.NameSearch{Query: q.Search}
		specs = append(specs, search)
		countSpecs = append(countSpecs, search)
	}

	models, err := uow.AIModelRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.AIModelRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	return serverutils.NewListResponse(mapper.ModelsToResponse(models), total, q.Page, q.Limit), nil
}

func (s *aiModelService) FindOne(ctx context.Context, kind entity.ModelKind, id uuid.UUID) (*dto.ModelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	m, err := s.findModel(ctx, uow, kind, id)
	if err != nil {
		return nil, err
	}
	return mapper.ModelToResponse(m), nil
}

func (s *aiModelService) Create(ctx context.Context, kind entity.ModelKind, req *dto.CreateModelRequest) (*dto.ModelResponse, error) {
	if !kind.Valid() {
		return nil, apperrors.InvalidInput("unknown model kind")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The first model of a kind becomes the default regardless of the flag,
	// so there is never a kind with models but no default.
	existing, err := uow.AIModelRepository().Count(ctx, specification.ByModelKind{Kind: string(kind)})
	if err != nil {
		return nil, err
	}
	makeDefault := req.IsDefault || existing == 0

	now := time.Now()
	m := &entity.AIModel{
		Id:          uuid.New(),
		Kind:        kind,
		Name:        req.Name,
		Provider:    entity.ModelProvider(req.Provider),
		Model:       req.Model,
		BaseURL:     req.BaseURL,
		Params:      req.Params,
		Credentials: req.Credentials,
		IsDefault:   makeDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if makeDefault {
		if err := uow.AIModelRepository().ClearDefault(ctx, kind); err != nil {
			return nil, err
		}
	}
	if err := uow.AIModelRepository().Create(ctx, m); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return mapper.ModelToResponse(m), nil
}

func (s *aiModelService) Update(ctx context.Context, kind entity.ModelKind, id uuid.UUID, req *dto.UpdateModelRequest) (*dto.ModelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	m, err := s.findModel(ctx, uow, kind, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Provider != "" {
		m.Provider = entity.ModelProvider(req.Provider)
	}
	if req.Model != "" {
		m.Model = req.Model
	}
	if req.BaseURL != nil {
		m.BaseURL = *req.BaseURL
	}
	if req.Params != nil {
		m.Params = req.Params
	}
	if !mapper.IsMasked(req.Credentials) {
		m.Credentials = req.Credentials
	}
	m.UpdatedAt = time.Now()

	if err := uow.AIModelRepository().Update(ctx, m); err != nil {
		return nil, err
	}
	return mapper.ModelToResponse(m), nil
}

func (s *aiModelService) SetDefault(ctx context.Context, kind entity.ModelKind, id uuid.UUID) (*dto.ModelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	m, err := s.findModel(ctx, uow, kind, id)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.AIModelRepository().ClearDefault(ctx, kind); err != nil {
		return nil, err
	}
	m.IsDefault = true
	m.UpdatedAt = time.Now()
	if err := uow.AIModelRepository().Update(ctx, m); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return mapper.ModelToResponse(m), nil
}

func (s *aiModelService) Delete(ctx context.Context, kind entity.ModelKind, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	m, err := s.findModel(ctx, uow, kind, id)
	if err != nil {
		return err
	}

	if m.IsDefault {
		others, err := uow.AIModelRepository().Count(ctx, specification.ByModelKind{Kind: string(kind)})
		if err != nil {
			return err
		}
		if others > 1 {
			return apperrors.Conflict("cannot delete the default model; set another default first")
		}
	}

	kbRefs, err := uow.KnowledgeBaseRepository().CountReferencingModel(ctx, id)
	if err != nil {
		return err
	}
	if kbRefs > 0 {
		return apperrors.Conflict("model is referenced by a knowledge base")
	}

	engines, err := uow.ChatEngineRepository().FindAll(ctx)
	if err != nil {
		return err
	}
	for _, engine := range engines {
		if engineReferencesModel(engine.Options, id) {
			return apperrors.Conflict("model is referenced by chat engine " + engine.Name)
		}
	}

	return uow.AIModelRepository().Delete(ctx, id)
}

// TestModel probes an unsaved configuration: list models for LLMs, embed a
// probe string for embedding models, rerank two stub documents for rerankers.
func (s *aiModelService) TestModel(ctx context.Context, kind entity.ModelKind, req *dto.CreateModelRequest) (*dto.TestModelResponse, error) {
	if !kind.Valid() {
		return nil, apperrors.InvalidInput("unknown model kind")
	}

	m := &entity.AIModel{
		Kind:        kind,
		Name:        req.Name,
		Provider:    entity.ModelProvider(req.Provider),
		Model:       req.Model,
		BaseURL:     req.BaseURL,
		Params:      req.Params,
		Credentials: req.Credentials,
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	err := provider.Probe(probeCtx, m)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return &dto.TestModelResponse{
			Success:   false,
			Message:   err.Error(),
			LatencyMs: latency,
		}, nil
	}
	return &dto.TestModelResponse{
		Success:   true,
		Message:   "connection ok",
		LatencyMs: latency,
	}, nil
}

func (s *aiModelService) findModel(ctx context.Context, uow unitofwork.UnitOfWork, kind entity.ModelKind, id uuid.UUID) (*entity.AIModel, error) {
	m, err := uow.AIModelRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByModelKind{Kind: string(kind)},
	)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperrors.NotFound("model not found")
	}
	return m, nil
}

func engineReferencesModel(o entity.EngineOptions, id uuid.UUID) bool {
	if o.LLMId != nil && *o.LLMId == id {
		return true
	}
	if o.FastLLMId != nil && *o.FastLLMId == id {
		return true
	}
	if o.Retrieval.RerankerId != nil && *o.Retrieval.RerankerId == id {
		return true
	}
	return false
}
