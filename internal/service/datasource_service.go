// FILE: internal/service/datasource_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/logger"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"
	"rag-admin-be/pkg/events"

	"github.com/google/uuid"
)

const maxUploadSize = 20 * 1024 * 1024 // 20MB

type IDatasourceService interface {
	FindAll(ctx context.Context, kbId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[dto.DatasourceResponse], error)
	FindOne(ctx context.Context, kbId, id uuid.UUID) (*dto.DatasourceResponse, error)
	Create(ctx context.Context, kbId uuid.UUID, req *dto.CreateDatasourceRequest, file *multipart.FileHeader) (*dto.DatasourceResponse, error)
	Delete(ctx context.Context, kbId, id uuid.UUID) error
}

type datasourceService struct {
	uowFactory      unitofwork.RepositoryFactory
	ingestPublisher IPublisherService
	eventPublisher  events.Publisher
	logger          logger.ILogger
	uploadDir       string
}

func NewDatasourceService(
	uowFactory unitofwork.RepositoryFactory,
	ingestPublisher IPublisherService,
	eventPublisher events.Publisher,
	logger logger.ILogger,
	uploadDir string,
) IDatasourceService {
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	return &datasourceService{
		uowFactory:      uowFactory,
		ingestPublisher: ingestPublisher,
		eventPublisher:  eventPublisher,
		logger:          logger,
		uploadDir:       uploadDir,
	}
}

func (s *datasourceService) FindAll(ctx context.Context, kbId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[dto.DatasourceResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.checkKnowledgeBase(ctx, uow, kbId); err != nil {
		return nil, err
	}

	byKB := specification.ByKnowledgeBaseID{KnowledgeBaseID: kbId}
	specs := []specification.Specification{
		byKB,
		specification.OrderBy{Field: q.SortBy, Desc: q.Order == "desc"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	}
	countSpecs := []specification.Specification{byKB}
	if q.Search != "" {
		search := specification.NameSearch{Query: q.Search}
		specs = append(specs, search)
		countSpecs = append(countSpecs, search)
	}

	sources, err := uow.DatasourceRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.DatasourceRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.DatasourceResponse, 0, len(sources))
	for _, ds := range sources {
		docCount, err := uow.DocumentRepository().Count(ctx, specification.ByDatasourceID{DatasourceID: ds.Id})
		if err != nil {
			return nil, err
		}
		items = append(items, *mapper.DatasourceToResponse(ds, docCount))
	}

	return serverutils.NewListResponse(items, total, q.Page, q.Limit), nil
}

func (s *datasourceService) FindOne(ctx context.Context, kbId, id uuid.UUID) (*dto.DatasourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ds, err := uow.DatasourceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByKnowledgeBaseID{KnowledgeBaseID: kbId},
	)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, apperrors.NotFound("datasource not found")
	}

	docCount, err := uow.DocumentRepository().Count(ctx, specification.ByDatasourceID{DatasourceID: ds.Id})
	if err != nil {
		return nil, err
	}
	return mapper.DatasourceToResponse(ds, docCount), nil
}

func (s *datasourceService) Create(ctx context.Context, kbId uuid.UUID, req *dto.CreateDatasourceRequest, file *multipart.FileHeader) (*dto.DatasourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.checkKnowledgeBase(ctx, uow, kbId); err != nil {
		return nil, err
	}

	id := uuid.New()
	config := entity.DatasourceConfig{}

	switch entity.DatasourceType(req.SourceType) {
	case entity.DatasourceTypeFile:
		if file == nil {
			return nil, apperrors.InvalidInput("file sources require a multipart file upload")
		}
		if file.Size > maxUploadSize {
			return nil, apperrors.InvalidInput("file too large (max 20MB)")
		}
		path, err := s.saveUpload(id, file)
		if err != nil {
			return nil, err
		}
		config.FileName = file.Filename
		config.FilePath = path
	case entity.DatasourceTypeURL:
		if req.URL == "" {
			return nil, apperrors.InvalidInput("url sources require a url")
		}
		config.URL = req.URL
	case entity.DatasourceTypeSitemap:
		if req.URL == "" {
			return nil, apperrors.InvalidInput("sitemap sources require a url")
		}
		config.SitemapURL = req.URL
	default:
		return nil, apperrors.InvalidInput("unknown source type " + req.SourceType)
	}

	now := time.Now()
	ds := &entity.Datasource{
		Id:              id,
		KnowledgeBaseId: kbId,
		Name:            req.Name,
		Type:            entity.DatasourceType(req.SourceType),
		Config:          config,
		Status:          entity.IngestStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uow.DatasourceRepository().Create(ctx, ds); err != nil {
		return nil, err
	}

	msg := dto.IngestDatasourceMessage{DatasourceId: ds.Id}
	msgJson, _ := json.Marshal(msg)
	if err := s.ingestPublisher.Publish(ctx, msgJson); err != nil {
		// The row stays pending; the stale-ingest reaper will fail it if
		// nothing ever picks it up.
		s.logger.Error("DATASOURCE", "Failed to publish ingest message", map[string]interface{}{
			"datasourceId": ds.Id.String(),
			"error":        err.Error(),
		})
	}

	s.eventPublisher.PublishDatasourceCreated(ctx, ds.Id, kbId, ds.Name, req.SourceType)

	return mapper.DatasourceToResponse(ds, 0), nil
}

func (s *datasourceService) Delete(ctx context.Context, kbId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ds, err := uow.DatasourceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.ByKnowledgeBaseID{KnowledgeBaseID: kbId},
	)
	if err != nil {
		return err
	}
	if ds == nil {
		return apperrors.NotFound("datasource not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	docs, err := uow.DocumentRepository().FindAll(ctx, specification.ByDatasourceID{DatasourceID: id})
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := uow.ChunkRepository().DeleteByDocument(ctx, doc.Id); err != nil {
			return err
		}
	}
	if err := uow.DocumentRepository().DeleteByDatasource(ctx, id); err != nil {
		return err
	}
	if err := uow.DatasourceRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// Remove the stored upload after the rows are gone. A leftover file is
	// harmless; a dangling row pointing at a deleted file is not.
	if ds.Type == entity.DatasourceTypeFile && ds.Config.FilePath != "" {
		if err := os.Remove(ds.Config.FilePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("DATASOURCE", "Failed to remove uploaded file", map[string]interface{}{
				"path":  ds.Config.FilePath,
				"error": err.Error(),
			})
		}
	}

	return nil
}

func (s *datasourceService) checkKnowledgeBase(ctx context.Context, uow unitofwork.UnitOfWork, kbId uuid.UUID) error {
	kb, err := uow.KnowledgeBaseRepository().FindOne(ctx, specification.ByID{ID: kbId})
	if err != nil {
		return err
	}
	if kb == nil {
		return apperrors.NotFound("knowledge base not found")
	}
	return nil
}

func (s *datasourceService) saveUpload(id uuid.UUID, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(s.uploadDir, "datasources")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	filename := fmt.Sprintf("%s_%d%s", id.String(), time.Now().Unix(), ext)
	dstPath := filepath.Join(dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}

	return dstPath, nil
}
