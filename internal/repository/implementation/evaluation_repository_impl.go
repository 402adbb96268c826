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
	"gorm.io/gorm"
)

type EvaluationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EvaluationMapper
}

func NewEvaluationRepository(db *gorm.DB) contract.EvaluationRepository {
	return &EvaluationRepositoryImpl{
		db:     db,
		mapper: mapper.NewEvaluationMapper(),
	}
}

func (r *EvaluationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EvaluationRepositoryImpl) CreateDataset(ctx context.Context, ds *entity.EvaluationDataset) error {
	m := r.mapper.DatasetToModel(ds)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*ds = *r.mapper.DatasetToEntity(m)
	return nil
}

func (r *EvaluationRepositoryImpl) UpdateDataset(ctx context.Context, ds *entity.EvaluationDataset) error {
	m := r.mapper.DatasetToModel(ds)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*ds = *r.mapper.DatasetToEntity(m)
	return nil
}

func (r *EvaluationRepositoryImpl) DeleteDataset(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EvaluationDataset{}, id).Error
}

func (r *EvaluationRepositoryImpl) FindOneDataset(ctx context.Context, specs ...specification.Specification) (*entity.EvaluationDataset, error) {
	var m model.EvaluationDataset
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.DatasetToEntity(&m), nil
}

func (r *EvaluationRepositoryImpl) FindDatasets(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationDataset, error) {
	var models []*model.EvaluationDataset
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.DatasetsToEntities(models), nil
}

func (r *EvaluationRepositoryImpl) CountDatasets(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.EvaluationDataset{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EvaluationRepositoryImpl) CreateItem(ctx context.Context, item *entity.EvaluationItem) error {
	m := r.mapper.ItemToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ItemToEntity(m)
	return nil
}

func (r *EvaluationRepositoryImpl) CreateItems(ctx context.Context, items []*entity.EvaluationItem) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*model.EvaluationItem, len(items))
	for i, item := range items {
		models[i] = r.mapper.ItemToModel(item)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*items[i] = *r.mapper.ItemToEntity(m)
	}
	return nil
}

func (r *EvaluationRepositoryImpl) UpdateItem(ctx context.Context, item *entity.EvaluationItem) error {
	m := r.mapper.ItemToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ItemToEntity(m)
	return nil
}

func (r *EvaluationRepositoryImpl) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.EvaluationItem{}, id).Error
}

func (r *EvaluationRepositoryImpl) FindOneItem(ctx context.Context, specs ...specification.Specification) (*entity.EvaluationItem, error) {
	var m model.EvaluationItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ItemToEntity(&m), nil
}

func (r *EvaluationRepositoryImpl) FindItems(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationItem, error) {
	var models []*model.EvaluationItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ItemsToEntities(models), nil
}

func (r *EvaluationRepositoryImpl) CountItems(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.EvaluationItem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EvaluationRepositoryImpl) CreateTask(ctx context.Context, task *entity.EvaluationTask) error {
	m := r.mapper.TaskToModel(task)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.TaskToEntity(m)
	return nil
}

func (r *EvaluationRepositoryImpl) UpdateTask(ctx context.Context, task *entity.EvaluationTask) error {
	m := r.mapper.TaskToModel(task)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.TaskToEntity(m)
	return nil
}

func (r *EvaluationRepositoryImpl) FindOneTask(ctx context.Context, specs ...specification.Specification) (*entity.EvaluationTask, error) {
	var m model.EvaluationTask
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TaskToEntity(&m), nil
}

func (r *EvaluationRepositoryImpl) FindTasks(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationTask, error) {
	var models []*model.EvaluationTask
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TasksToEntities(models), nil
}

func (r *EvaluationRepositoryImpl) CountTasks(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.EvaluationTask{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *EvaluationRepositoryImpl) CreateResult(ctx context.Context, result *entity.EvaluationResult) error {
	m := r.mapper.ResultToModel(result)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*result = *r.mapper.ResultToEntity(m)
	return nil
}

func (r *EvaluationRepositoryImpl) FindResults(ctx context.Context, specs ...specification.Specification) ([]*entity.EvaluationResult, error) {
	var models []*model.EvaluationResult
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ResultsToEntities(models), nil
}

func (r *EvaluationRepositoryImpl) CountTasksByDataset(ctx context.Context, datasetId uuid.UUID, statuses ...entity.EvaluationTaskStatus) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&model.EvaluationTask{}).
		Where("dataset_id = ?", datasetId)
	if len(statuses) > 0 {
		raw := make([]string, len(statuses))
		for i, s := range statuses {
			raw[i] = string(s)
		}
		query = query.Where("status IN ?", raw)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
