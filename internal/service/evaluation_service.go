// FILE: internal/service/evaluation_service.go
package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/repository/memory"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"
	"rag-admin-be/pkg/events"

	"github.com/google/uuid"
)

const maxCSVUploadSize = 5 * 1024 * 1024 // 5MB

type IEvaluationService interface {
	FindDatasets(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[dto.EvaluationDatasetResponse], error)
	FindDataset(ctx context.Context, id uuid.UUID) (*dto.EvaluationDatasetResponse, error)
	CreateDataset(ctx context.Context, req *dto.CreateEvaluationDatasetRequest) (*dto.EvaluationDatasetResponse, error)
	UpdateDataset(ctx context.Context, id uuid.UUID, req *dto.UpdateEvaluationDatasetRequest) (*dto.EvaluationDatasetResponse, error)
	DeleteDataset(ctx context.Context, id uuid.UUID) error

	FindItems(ctx context.Context, datasetId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.EvaluationItemResponse], error)
	CreateItem(ctx context.Context, datasetId uuid.UUID, req *dto.CreateEvaluationItemRequest) (*dto.EvaluationItemResponse, error)
	UpdateItem(ctx context.Context, datasetId, itemId uuid.UUID, req *dto.UpdateEvaluationItemRequest) (*dto.EvaluationItemResponse, error)
	DeleteItem(ctx context.Context, datasetId, itemId uuid.UUID) error
	UploadItems(ctx context.Context, datasetId uuid.UUID, file *multipart.FileHeader) (*dto.UploadItemsResponse, error)

	CreateTask(ctx context.Context, req *dto.CreateEvaluationTaskRequest) (*dto.EvaluationTaskResponse, error)
	FindTasks(ctx context.Context, datasetId *uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.EvaluationTaskResponse], error)
	FindTask(ctx context.Context, id uuid.UUID) (*dto.EvaluationTaskResponse, error)
	GetProgress(ctx context.Context, id uuid.UUID) (*dto.TaskProgressResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*dto.EvaluationTaskResponse, error)
	FindResults(ctx context.Context, taskId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[dto.EvaluationResultResponse], error)
}

type evaluationService struct {
	uowFactory     unitofwork.RepositoryFactory
	evalPublisher  IPublisherService
	eventPublisher events.Publisher
	progress       *memory.ProgressStore
}

func NewEvaluationService(
	uowFactory unitofwork.RepositoryFactory,
	evalPublisher IPublisherService,
	eventPublisher events.Publisher,
	progress *memory.ProgressStore,
) IEvaluationService {
	return &evaluationService{
		uowFactory:     uowFactory,
		evalPublisher:  evalPublisher,
		eventPublisher: eventPublisher,
		progress:       progress,
	}
}

func (s *evaluationService) FindDatasets(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[dto.EvaluationDatasetResponse], error) {
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

	datasets, err := uow.EvaluationRepository().FindDatasets(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.EvaluationRepository().CountDatasets(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.EvaluationDatasetResponse, 0, len(datasets))
	for _, ds := range datasets {
		itemCount, err := uow.EvaluationRepository().CountItems(ctx, specification.ByDatasetID{DatasetID: ds.Id})
		if err != nil {
			return nil, err
		}
		items = append(items, *mapper.DatasetToResponse(ds, itemCount))
	}

	return serverutils.NewListResponse(items, total, q.Page, q.Limit), nil
}

func (s *evaluationService) FindDataset(ctx context.Context, id uuid.UUID) (*dto.EvaluationDatasetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ds, err := s.findDataset(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	itemCount, err := uow.EvaluationRepository().CountItems(ctx, specification.ByDatasetID{DatasetID: id})
	if err != nil {
		return nil, err
	}
	return mapper.DatasetToResponse(ds, itemCount), nil
}

func (s *evaluationService) CreateDataset(ctx context.Context, req *dto.CreateEvaluationDatasetRequest) (*dto.EvaluationDatasetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	ds := &entity.EvaluationDataset{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uow.EvaluationRepository().CreateDataset(ctx, ds); err != nil {
		return nil, err
	}
	return mapper.DatasetToResponse(ds, 0), nil
}

func (s *evaluationService) UpdateDataset(ctx context.Context, id uuid.UUID, req *dto.UpdateEvaluationDatasetRequest) (*dto.EvaluationDatasetResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	ds, err := s.findDataset(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		ds.Name = req.Name
	}
	if req.Description != nil {
		ds.Description = *req.Description
	}
	ds.UpdatedAt = time.Now()

	if err := uow.EvaluationRepository().UpdateDataset(ctx, ds); err != nil {
		return nil, err
	}

	itemCount, err := uow.EvaluationRepository().CountItems(ctx, specification.ByDatasetID{DatasetID: id})
	if err != nil {
		return nil, err
	}
	return mapper.DatasetToResponse(ds, itemCount), nil
}

func (s *evaluationService) DeleteDataset(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findDataset(ctx, uow, id); err != nil {
		return err
	}

	active, err := uow.EvaluationRepository().CountTasksByDataset(ctx, id,
		entity.EvaluationTaskStatusPending, entity.EvaluationTaskStatusRunning)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperrors.Conflict("dataset has running evaluation tasks")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	items, err := uow.EvaluationRepository().FindItems(ctx, specification.ByDatasetID{DatasetID: id})
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := uow.EvaluationRepository().DeleteItem(ctx, item.Id); err != nil {
			return err
		}
	}
	if err := uow.EvaluationRepository().DeleteDataset(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *evaluationService) FindItems(ctx context.Context, datasetId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.EvaluationItemResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findDataset(ctx, uow, datasetId); err != nil {
		return nil, err
	}

	byDataset := specification.ByDatasetID{DatasetID: datasetId}
	items, err := uow.EvaluationRepository().FindItems(ctx,
		byDataset,
		specification.OrderBy{Field: q.SortBy, Desc: q.Order == "desc"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	)
	if err != nil {
		return nil, err
	}
	total, err := uow.EvaluationRepository().CountItems(ctx, byDataset)
	if err != nil {
		return nil, err
	}

	return serverutils.NewListResponse(mapper.ItemsToResponse(items), total, q.Page, q.Limit), nil
}

func (s *evaluationService) CreateItem(ctx context.Context, datasetId uuid.UUID, req *dto.CreateEvaluationItemRequest) (*dto.EvaluationItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findDataset(ctx, uow, datasetId); err != nil {
		return nil, err
	}

	now := time.Now()
	item := &entity.EvaluationItem{
		Id:        uuid.New(),
		DatasetId: datasetId,
		Query:     req.Query,
		Reference: req.Reference,
		Extra:     req.Extra,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.EvaluationRepository().CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return mapper.ItemToResponse(item), nil
}

func (s *evaluationService) UpdateItem(ctx context.Context, datasetId, itemId uuid.UUID, req *dto.UpdateEvaluationItemRequest) (*dto.EvaluationItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	item, err := s.findItem(ctx, uow, datasetId, itemId)
	if err != nil {
		return nil, err
	}

	if req.Query != "" {
		item.Query = req.Query
	}
	if req.Reference != "" {
		item.Reference = req.Reference
	}
	if req.Extra != nil {
		item.Extra = req.Extra
	}
	item.UpdatedAt = time.Now()

	if err := uow.EvaluationRepository().UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return mapper.ItemToResponse(item), nil
}

func (s *evaluationService) DeleteItem(ctx context.Context, datasetId, itemId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findItem(ctx, uow, datasetId, itemId); err != nil {
		return err
	}
	return uow.EvaluationRepository().DeleteItem(ctx, itemId)
}

// UploadItems imports a CSV with a header row naming at least "query" and
// "reference" columns. Other columns land in the item's extra map. Rows
// missing either required value are counted as skipped, not errors.
func (s *evaluationService) UploadItems(ctx context.Context, datasetId uuid.UUID, file *multipart.FileHeader) (*dto.UploadItemsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findDataset(ctx, uow, datasetId); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperrors.InvalidInput("csv file is required")
	}
	if file.Size > maxCSVUploadSize {
		return nil, apperrors.InvalidInput("file too large (max 5MB)")
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	batch, skipped, err := parseEvaluationCSV(src, datasetId)
	if err != nil {
		return nil, err
	}

	if len(batch) > 0 {
		if err := uow.EvaluationRepository().CreateItems(ctx, batch); err != nil {
			return nil, err
		}
	}

	return &dto.UploadItemsResponse{
		Imported: len(batch),
		Skipped:  skipped,
	}, nil
}

// parseEvaluationCSV reads query/reference pairs from a CSV stream. Extra
// columns land in the item's Extra map keyed by lowercased header name.
func parseEvaluationCSV(src io.Reader, datasetId uuid.UUID) ([]*entity.EvaluationItem, int, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, apperrors.InvalidInput("csv has no header row")
	}

	queryIdx, referenceIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "query", "question":
			if queryIdx < 0 {
				queryIdx = i
			}
		case "reference", "answer", "reference_answer":
			if referenceIdx < 0 {
				referenceIdx = i
			}
		}
	}
	if queryIdx < 0 || referenceIdx < 0 {
		return nil, 0, apperrors.InvalidInput("csv must have query and reference columns")
	}

	now := time.Now()
	var batch []*entity.EvaluationItem
	skipped := 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed row should not throw away the rest of the file.
			skipped++
			continue
		}

		query := fieldAt(record, queryIdx)
		reference := fieldAt(record, referenceIdx)
		if query == "" || reference == "" {
			skipped++
			continue
		}

		var extra map[string]interface{}
		for i, col := range header {
			if i == queryIdx || i == referenceIdx {
				continue
			}
			if v := fieldAt(record, i); v != "" {
				if extra == nil {
					extra = map[string]interface{}{}
				}
				extra[strings.ToLower(strings.TrimSpace(col))] = v
			}
		}

		batch = append(batch, &entity.EvaluationItem{
			Id:        uuid.New(),
			DatasetId: datasetId,
			Query:     query,
			Reference: reference,
			Extra:     extra,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return batch, skipped, nil
}

func (s *evaluationService) CreateTask(ctx context.Context, req *dto.CreateEvaluationTaskRequest) (*dto.EvaluationTaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findDataset(ctx, uow, req.DatasetId); err != nil {
		return nil, err
	}
	engine, err := uow.ChatEngineRepository().FindOne(ctx, specification.ByID{ID: req.ChatEngineId})
	if err != nil {
		return nil, err
	}
	if engine == nil {
		return nil, apperrors.NotFound("chat engine not found")
	}

	itemCount, err := uow.EvaluationRepository().CountItems(ctx, specification.ByDatasetID{DatasetID: req.DatasetId})
	if err != nil {
		return nil, err
	}
	if itemCount == 0 {
		return nil, apperrors.InvalidInput("dataset has no items")
	}

	now := time.Now()
	task := &entity.EvaluationTask{
		Id:           uuid.New(),
		DatasetId:    req.DatasetId,
		ChatEngineId: req.ChatEngineId,
		Name:         req.Name,
		Status:       entity.EvaluationTaskStatusPending,
		Total:        int(itemCount),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.EvaluationRepository().CreateTask(ctx, task); err != nil {
		return nil, err
	}

	msg := dto.RunEvaluationMessage{TaskId: task.Id}
	msgJson, _ := json.Marshal(msg)
	if err := s.evalPublisher.Publish(ctx, msgJson); err != nil {
		// Roll the row into failed state rather than leaving a pending task
		// no consumer will ever see.
		reason := "failed to enqueue evaluation: " + err.Error()
		task.Status = entity.EvaluationTaskStatusFailed
		task.UpdatedAt = time.Now()
		_ = uow.EvaluationRepository().UpdateTask(ctx, task)
		return nil, errors.New(reason)
	}

	return mapper.TaskToResponse(task), nil
}

func (s *evaluationService) FindTasks(ctx context.Context, datasetId *uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.EvaluationTaskResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: q.SortBy, Desc: q.Order == "desc"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	}
	countSpecs := []specification.Specification{}
	if datasetId != nil {
		byDataset := specification.ByDatasetID{DatasetID: *datasetId}
		specs = append(specs, byDataset)
		countSpecs = append(countSpecs, byDataset)
	}
	if q.Search != "" {
		search := specification.NameSearch{Query: q.Search}
		specs = append(specs, search)
		countSpecs = append(countSpecs, search)
	}

	tasks, err := uow.EvaluationRepository().FindTasks(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.EvaluationRepository().CountTasks(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	return serverutils.NewListResponse(mapper.TasksToResponse(tasks), total, q.Page, q.Limit), nil
}

func (s *evaluationService) FindTask(ctx context.Context, id uuid.UUID) (*dto.EvaluationTaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := s.findTask(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	return mapper.TaskToResponse(task), nil
}

// GetProgress prefers the live in-memory counters; once the consumer is done
// (or after a restart) the persisted row is the source of truth.
func (s *evaluationService) GetProgress(ctx context.Context, id uuid.UUID) (*dto.TaskProgressResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := s.findTask(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if live, ok := s.progress.Get(id); ok {
		return mapper.ProgressToResponse(live), nil
	}

	return mapper.ProgressToResponse(&entity.TaskProgress{
		TaskId:    task.Id,
		Status:    task.Status,
		Total:     task.Total,
		Done:      task.Succeeded,
		Failed:    task.Failed,
		UpdatedAt: task.UpdatedAt,
	}), nil
}

func (s *evaluationService) Cancel(ctx context.Context, id uuid.UUID) (*dto.EvaluationTaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := s.findTask(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	switch task.Status {
	case entity.EvaluationTaskStatusPending:
		// Not picked up yet: flip the row now; the consumer acks and skips
		// when the message finally arrives.
		s.progress.RequestCancel(id)
		now := time.Now()
		task.Status = entity.EvaluationTaskStatusCancelled
		task.FinishedAt = &now
		task.UpdatedAt = now
		if err := uow.EvaluationRepository().UpdateTask(ctx, task); err != nil {
			return nil, err
		}
		s.eventPublisher.PublishEvaluationCancelled(ctx, task.Id, task.Name)
	case entity.EvaluationTaskStatusRunning:
		// The consumer owns the row; it honors the flag between items and
		// writes the final state itself.
		s.progress.RequestCancel(id)
	default:
		return nil, apperrors.Conflict("task is not running")
	}

	return mapper.TaskToResponse(task), nil
}

func (s *evaluationService) FindResults(ctx context.Context, taskId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[dto.EvaluationResultResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := s.findTask(ctx, uow, taskId)
	if err != nil {
		return nil, err
	}

	results, err := uow.EvaluationRepository().FindResults(ctx,
		specification.ByTaskID{TaskID: taskId},
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	)
	if err != nil {
		return nil, err
	}

	// Join item query/reference in one fetch instead of per result.
	items, err := uow.EvaluationRepository().FindItems(ctx, specification.ByDatasetID{DatasetID: task.DatasetId})
	if err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.EvaluationItem, len(items))
	for _, item := range items {
		byId[item.Id] = item
	}

	responses := make([]dto.EvaluationResultResponse, 0, len(results))
	for _, r := range results {
		query, reference := "", ""
		if item, ok := byId[r.ItemId]; ok {
			query, reference = item.Query, item.Reference
		}
		responses = append(responses, *mapper.ResultToResponse(r, query, reference))
	}

	total := int64(task.Succeeded + task.Failed)
	return serverutils.NewListResponse(responses, total, q.Page, q.Limit), nil
}

func (s *evaluationService) findDataset(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.EvaluationDataset, error) {
	ds, err := uow.EvaluationRepository().FindOneDataset(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, apperrors.NotFound("evaluation dataset not found")
	}
	return ds, nil
}

func (s *evaluationService) findItem(ctx context.Context, uow unitofwork.UnitOfWork, datasetId, itemId uuid.UUID) (*entity.EvaluationItem, error) {
	item, err := uow.EvaluationRepository().FindOneItem(ctx,
		specification.ByID{ID: itemId},
		specification.ByDatasetID{DatasetID: datasetId},
	)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperrors.NotFound("evaluation item not found")
	}
	return item, nil
}

func (s *evaluationService) findTask(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.EvaluationTask, error) {
	task, err := uow.EvaluationRepository().FindOneTask(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("evaluation task not found")
	}
	return task, nil
}

func fieldAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
