// FILE: internal/service/chat_engine_service.go
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

type IChatEngineService interface {
	FindAll(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.ChatEngineResponse], error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.ChatEngineResponse, error)
	Create(ctx context.Context, req *dto.CreateChatEngineRequest) (*dto.ChatEngineResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateChatEngineRequest) (*dto.ChatEngineResponse, error)
	SetDefault(ctx context.Context, id uuid.UUID) (*dto.ChatEngineResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type chatEngineService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewChatEngineService(uowFactory unitofwork.RepositoryFactory) IChatEngineService {
	return &chatEngineService{uowFactory: uowFactory}
}

func (s *chatEngineService) FindAll(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.ChatEngineResponse], error) {
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

	engines, err := uow.ChatEngineRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.ChatEngineRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	return serverutils.NewListResponse(mapper.ChatEnginesToResponse(engines), total, q.Page, q.Limit), nil
}

func (s *chatEngineService) FindOne(ctx context.Context, id uuid.UUID) (*dto.ChatEngineResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	engine, err := s.findEngine(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return mapper.ChatEngineToResponse(engine), nil
}

func (s *chatEngineService) Create(ctx context.Context, req *dto.CreateChatEngineRequest) (*dto.ChatEngineResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	options := mapper.EngineOptionsFromDTO(req.Options)
	if err := s.checkOptions(ctx, uow, options); err != nil {
		return nil, err
	}

	existing, err := uow.ChatEngineRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	makeDefault := req.IsDefault || existing == 0

	now := time.Now()
	engine := &entity.ChatEngine{
		Id:        uuid.New(),
		Name:      req.Name,
		Options:   options,
		IsDefault: makeDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if makeDefault {
		if err := uow.ChatEngineRepository().ClearDefault(ctx); err != nil {
			return nil, err
		}
	}
	if err := uow.ChatEngineRepository().Create(ctx, engine); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return mapper.ChatEngineToResponse(engine), nil
}

func (s *chatEngineService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateChatEngineRequest) (*dto.ChatEngineResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	engine, err := s.findEngine(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		engine.Name = req.Name
	}
	if req.Options != nil {
		options := mapper.EngineOptionsFromDTO(*req.Options)
		if err := s.checkOptions(ctx, uow, options); err != nil {
			return nil, err
		}
		engine.Options = options
	}
	engine.UpdatedAt = time.Now()

	if err := uow.ChatEngineRepository().Update(ctx, engine); err != nil {
		return nil, err
	}
	return mapper.ChatEngineToResponse(engine), nil
}

func (s *chatEngineService) SetDefault(ctx context.Context, id uuid.UUID) (*dto.ChatEngineResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	engine, err := s.findEngine(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatEngineRepository().ClearDefault(ctx); err != nil {
		return nil, err
	}
	engine.IsDefault = true
	engine.UpdatedAt = time.Now()
	if err := uow.ChatEngineRepository().Update(ctx, engine); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return mapper.ChatEngineToResponse(engine), nil
}

func (s *chatEngineService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	engine, err := s.findEngine(ctx, uow, id)
	if err != nil {
		return err
	}
	if engine.IsDefault {
		return apperrors.Conflict("the default chat engine cannot be deleted")
	}

	return uow.ChatEngineRepository().Delete(ctx, id)
}

func (s *chatEngineService) findEngine(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.ChatEngine, error) {
	engine, err := uow.ChatEngineRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if engine == nil {
		return nil, apperrors.NotFound("chat engine not found")
	}
	return engine, nil
}

// checkOptions verifies every id inside the engine options points at a row
// that exists and has the right type.
func (s *chatEngineService) checkOptions(ctx context.Context, uow unitofwork.UnitOfWork, o entity.EngineOptions) error {
	checkModel := func(id *uuid.UUID, kind entity.ModelKind) error {
		if id == nil {
			return nil
		}
		m, err := uow.AIModelRepository().FindOne(ctx, specification.ByID{ID: *id})
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

	if err := checkModel(o.LLMId, entity.ModelKindLLM); err != nil {
		return err
	}
	if err := checkModel(o.FastLLMId, entity.ModelKindLLM); err != nil {
		return err
	}
	if err := checkModel(o.Retrieval.RerankerId, entity.ModelKindReranker); err != nil {
		return err
	}

	for _, kbId := range o.KnowledgeBaseIds {
		kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: kbId})
		if err != nil {
			return err
		}
		if kb == nil {
			return apperrors.InvalidInput("knowledge base " + kbId.String() + " not found")
		}
	}

	for _, connId := range o.DatabaseConnectionIds {
		conn, err := uow.DatabaseConnectionRepository().FindOne(ctx, specification.ByID{ID: connId})
		if err != nil {
			return err
		}
		if conn == nil {
			return apperrors.InvalidInput("database connection " + connId.String() + " not found")
		}
	}

	return nil
}
