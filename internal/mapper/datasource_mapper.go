package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
)

type DatasourceMapper struct{}

func NewDatasourceMapper() *DatasourceMapper {
	return &DatasourceMapper{}
}

func (m *DatasourceMapper) ToEntity(ds *model.Datasource) *entity.Datasource {
	if ds == nil {
		return nil
	}

	var cfg entity.DatasourceConfig
	unmarshalJSON(ds.Config, &cfg)

	return &entity.Datasource{
		Id:              ds.Id,
		KnowledgeBaseId: ds.KnowledgeBaseId,
		Name:            ds.Name,
		Type:            entity.DatasourceType(ds.Type),
		Config:          cfg,
		Status:          entity.IngestStatus(ds.Status),
		LastError:       ds.LastError,
		CreatedAt:       ds.CreatedAt,
		UpdatedAt:       ds.UpdatedAt,
	}
}

func (m *DatasourceMapper) ToModel(ds *entity.Datasource) *model.Datasource {
	if ds == nil {
		return nil
	}
	return &model.Datasource{
		Id:              ds.Id,
		KnowledgeBaseId: ds.KnowledgeBaseId,
		Name:            ds.Name,
		Type:            string(ds.Type),
		Config:          marshalJSON(ds.Config),
		Status:          string(ds.Status),
		LastError:       ds.LastError,
		CreatedAt:       ds.CreatedAt,
		UpdatedAt:       ds.UpdatedAt,
	}
}

func (m *DatasourceMapper) ToEntities(sources []*model.Datasource) []*entity.Datasource {
	entities := make([]*entity.Datasource, len(sources))
	for i, ds := range sources {
		entities[i] = m.ToEntity(ds)
	}
	return entities
}

func (m *DatasourceMapper) ToModels(sources []*entity.Datasource) []*model.Datasource {
	models := make([]*model.Datasource, len(sources))
	for i, ds := range sources {
		models[i] = m.ToModel(ds)
	}
	return models
}
