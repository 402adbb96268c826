package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
)

type EvaluationMapper struct{}

func NewEvaluationMapper() *EvaluationMapper {
	return &EvaluationMapper{}
}

func (m *EvaluationMapper) DatasetToEntity(d *model.EvaluationDataset) *entity.EvaluationDataset {
	if d == nil {
		return nil
	}
	return &entity.EvaluationDataset{
		Id:          d.Id,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (m *EvaluationMapper) DatasetToModel(d *entity.EvaluationDataset) *model.EvaluationDataset {
	if d == nil {
		return nil
	}
	return &model.EvaluationDataset{
		Id:          d.Id,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func (m *EvaluationMapper) DatasetsToEntities(ds []*model.EvaluationDataset) []*entity.EvaluationDataset {
	entities := make([]*entity.EvaluationDataset, len(ds))
	for i, d := range ds {
		entities[i] = m.DatasetToEntity(d)
	}
	return entities
}

func (m *EvaluationMapper) ItemToEntity(it *model.EvaluationItem) *entity.EvaluationItem {
	if it == nil {
		return nil
	}

	var extra map[string]interface{}
	unmarshalJSON(it.Extra, &extra)

	return &entity.EvaluationItem{
		Id:        it.Id,
		DatasetId: it.DatasetId,
		Query:     it.Query,
		Reference: it.Reference,
		Extra:     extra,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func (m *EvaluationMapper) ItemToModel(it *entity.EvaluationItem) *model.EvaluationItem {
	if it == nil {
		return nil
	}
	return &model.EvaluationItem{
		Id:        it.Id,
		DatasetId: it.DatasetId,
		Query:     it.Query,
		Reference: it.Reference,
		Extra:     marshalJSON(it.Extra),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func (m *EvaluationMapper) ItemsToEntities(items []*model.EvaluationItem) []*entity.EvaluationItem {
	entities := make([]*entity.EvaluationItem, len(items))
	for i, it := range items {
		entities[i] = m.ItemToEntity(it)
	}
	return entities
}

func (m *EvaluationMapper) TaskToEntity(t *model.EvaluationTask) *entity.EvaluationTask {
	if t == nil {
		return nil
	}

	var summary *entity.EvaluationSummary
	if len(t.Summary) > 0 {
		summary = &entity.EvaluationSummary{}
		unmarshalJSON(t.Summary, summary)
	}

	return &entity.EvaluationTask{
		Id:           t.Id,
		DatasetId:    t.DatasetId,
		ChatEngineId: t.ChatEngineId,
		Name:         t.Name,
		Status:       entity.EvaluationTaskStatus(t.Status),
		Total:        t.Total,
		Succeeded:    t.Succeeded,
		Failed:       t.Failed,
		Summary:      summary,
		StartedAt:    t.StartedAt,
		FinishedAt:   t.FinishedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (m *EvaluationMapper) TaskToModel(t *entity.EvaluationTask) *model.EvaluationTask {
	if t == nil {
		return nil
	}
	return &model.EvaluationTask{
		Id:           t.Id,
		DatasetId:    t.DatasetId,
		ChatEngineId: t.ChatEngineId,
		Name:         t.Name,
		Status:       string(t.Status),
		Total:        t.Total,
		Succeeded:    t.Succeeded,
		Failed:       t.Failed,
		Summary:      marshalJSON(t.Summary),
		StartedAt:    t.StartedAt,
		FinishedAt:   t.FinishedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (m *EvaluationMapper) TasksToEntities(tasks []*model.EvaluationTask) []*entity.EvaluationTask {
	entities := make([]*entity.EvaluationTask, len(tasks))
	for i, t := range tasks {
		entities[i] = m.TaskToEntity(t)
	}
	return entities
}

func (m *EvaluationMapper) ResultToEntity(r *model.EvaluationResult) *entity.EvaluationResult {
	if r == nil {
		return nil
	}
	return &entity.EvaluationResult{
		Id:                 r.Id,
		TaskId:             r.TaskId,
		ItemId:             r.ItemId,
		Answer:             r.Answer,
		KeywordRecall:      r.KeywordRecall,
		SemanticSimilarity: r.SemanticSimilarity,
		Error:              r.Error,
		CreatedAt:          r.CreatedAt,
	}
}

func (m *EvaluationMapper) ResultToModel(r *entity.EvaluationResult) *model.EvaluationResult {
	if r == nil {
		return nil
	}
	return &model.EvaluationResult{
		Id:                 r.Id,
		TaskId:             r.TaskId,
		ItemId:             r.ItemId,
		Answer:             r.Answer,
		KeywordRecall:      r.KeywordRecall,
		SemanticSimilarity: r.SemanticSimilarity,
		Error:              r.Error,
		CreatedAt:          r.CreatedAt,
	}
}

func (m *EvaluationMapper) ResultsToEntities(results []*model.EvaluationResult) []*entity.EvaluationResult {
	entities := make([]*entity.EvaluationResult, len(results))
	for i, r := range results {
		entities[i] = m.ResultToEntity(r)
	}
	return entities
}
