// FILE: internal/service/document_service.go
package service

import (
	"context"
	"encoding/json"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"

	"github.com/google/uuid"
)

type IDocumentService interface {
	FindAll(ctx context.Context, kbId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[dto.DocumentResponse], error)
	FindOne(ctx context.Context, kbId, id uuid.UUID) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, kbId, id uuid.UUID) error
	Reindex(ctx context.Context, kbId, id uuid.UUID) (*dto.DocumentResponse, error)
	FindChunks(ctx context.Context, kbId, documentId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.ChunkResponse], error)
	GetChunkPreview(ctx context.Context, chunkId uuid.UUID) (*dto.ChunkPreviewResponse, error)
}

type documentService struct {
	uowFactory      unitofwork.RepositoryFactory
	ingestPublisher IPublisherService
}

func NewDocumentService(uowFactory unitofwork.RepositoryFactory, ingestPublisher IPublisherService) IDocumentService {
	return &documentService{
		uowFactory:      uowFactory,
		ingestPublisher: ingestPublisher,
	}
}

func (s *documentService) FindAll(ctx context.Context, kbId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[dto.DocumentResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	byKB := specification.ByKnowledgeBaseID{KnowledgeBaseID: kbId}
	specs := []specification.Specification{
		byKB,
		specification.OrderBy{Field: q.SortBy, Desc: q.Order == "desc"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	}
	countSpecs := []specification.Specification{byKB}
	if q.Search != "" {
		search := specification.DocumentSearch{Query: q.Search}
		specs = append(specs, search)
		countSpecs = append(countSpecs, search)
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.DocumentRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		chunkCount, err := uow.ChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: doc.Id})
		if err != nil {
			return nil, err
		}
		items = append(items, *mapper.DocumentToResponse(doc, chunkCount))
	}

	return serverutils.NewListResponse(items, total, q.Page, q.Limit), nil
}

func (s *documentService) FindOne(ctx context.Context, kbId, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := s.findDocument(ctx, uow, kbId, id)
	if err != nil {
		return nil, err
	}

	chunkCount, err := uow.ChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: doc.Id})
	if err != nil {
		return nil, err
	}
	return mapper.DocumentToResponse(doc, chunkCount), nil
}

func (s *documentService) Delete(ctx context.Context, kbId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := s.findDocument(ctx, uow, kbId, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChunkRepository().DeleteByDocument(ctx, doc.Id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
		return err
	}

	return uow.Commit()
}

// Reindex re-runs ingestion for the document's datasource. The consumer
// rebuilds every document under it; per-document rebuilds would leave the
// datasource row's state lying about its children.
func (s *documentService) Reindex(ctx context.Context, kbId, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := s.findDocument(ctx, uow, kbId, id)
	if err != nil {
		return nil, err
	}

	if err := uow.DocumentRepository().UpdateIndexStatus(ctx, doc.Id, entity.IngestStatusPending, nil); err != nil {
		return nil, err
	}
	if err := uow.DatasourceRepository().UpdateStatus(ctx, doc.DatasourceId, entity.IngestStatusPending, nil); err != nil {
		return nil, err
	}

	msg := dto.IngestDatasourceMessage{DatasourceId: doc.DatasourceId}
	msgJson, _ := json.Marshal(msg)
	if err := s.ingestPublisher.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	doc.IndexStatus = entity.IngestStatusPending
	doc.IndexError = nil

	chunkCount, err := uow.ChunkRepository().Count(ctx, specification.ByDocumentID{DocumentID: doc.Id})
	if err != nil {
		return nil, err
	}
	return mapper.DocumentToResponse(doc, chunkCount), nil
}

func (s *documentService) FindChunks(ctx context.Context, kbId, documentId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.ChunkResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findDocument(ctx, uow, kbId, documentId); err != nil {
		return nil, err
	}

	byDoc := specification.ByDocumentID{DocumentID: documentId}
	specs := []specification.Specification{
		byDoc,
		specification.OrderBy{Field: "ordinal", Desc: false},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	}
	countSpecs := []specification.Specification{byDoc}
	if q.Search != "" {
		search := specification.TextSearch{Query: q.Search}
		specs = append(specs, search)
		countSpecs = append(countSpecs, search)
	}

	chunks, err := uow.ChunkRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.ChunkRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	return serverutils.NewListResponse(mapper.ChunksToResponse(chunks), total, q.Page, q.Limit), nil
}

func (s *documentService) GetChunkPreview(ctx context.Context, chunkId uuid.UUID) (*dto.ChunkPreviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	preview, err := uow.ChunkRepository().GetPreview(ctx, chunkId)
	if err != nil {
		return nil, err
	}
	if preview == nil {
		return nil, apperrors.NotFound("chunk not found")
	}
	return mapper.ChunkPreviewToResponse(preview), nil
}

func (s *documentService) findDocument(ctx context.Context, uow unitofwork.UnitOfWork, kbId, id uuid.UUID) (*entity.Document, error) {
	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByKnowledgeBaseID{KnowledgeBaseID: kbId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperrors.NotFound("document not found")
	}
	return doc, nil
}
