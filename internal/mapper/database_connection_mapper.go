package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
)

type DatabaseConnectionMapper struct{}

func NewDatabaseConnectionMapper() *DatabaseConnectionMapper {
	return &DatabaseConnectionMapper{}
}

func (m *DatabaseConnectionMapper) ToEntity(dc *model.DatabaseConnection) *entity.DatabaseConnection {
	if dc == nil {
		return nil
	}
	return &entity.DatabaseConnection{
		Id:           dc.Id,
		Name:         dc.Name,
		Engine:       entity.DatabaseEngine(dc.Engine),
		Host:         dc.Host,
		Port:         dc.Port,
		Database:     dc.Database,
		Username:     dc.Username,
		Password:     dc.Password,
		ReadOnly:     dc.ReadOnly,
		Description:  dc.Description,
		LastTestedAt: dc.LastTestedAt,
		CreatedAt:    dc.CreatedAt,
		UpdatedAt:    dc.UpdatedAt,
	}
}

func (m *DatabaseConnectionMapper) ToModel(dc *entity.DatabaseConnection) *model.DatabaseConnection {
	if dc == nil {
		return nil
	}
	return &model.DatabaseConnection{
		Id:           dc.Id,
		Name:         dc.Name,
		Engine:       string(dc.Engine),
		Host:         dc.Host,
		Port:         dc.Port,
		Database:     dc.Database,
		Username:     dc.Username,
		Password:     dc.Password,
		ReadOnly:     dc.ReadOnly,
		Description:  dc.Description,
		LastTestedAt: dc.LastTestedAt,
		CreatedAt:    dc.CreatedAt,
		UpdatedAt:    dc.UpdatedAt,
	}
}

func (m *DatabaseConnectionMapper) ToEntities(conns []*model.DatabaseConnection) []*entity.DatabaseConnection {
	entities := make([]*entity.DatabaseConnection, len(conns))
	for i, dc := range conns {
		entities[i] = m.ToEntity(dc)
	}
	return entities
}

func (m *DatabaseConnectionMapper) QueryRecordToEntity(r *model.SQLQueryRecord) *entity.SQLQueryRecord {
	if r == nil {
		return nil
	}

	var rows []map[string]interface{}
	unmarshalJSON(r.ResultRows, &rows)

	return &entity.SQLQueryRecord{
		Id:                   r.Id,
		ChatId:               r.ChatId,
		ChatMessageId:        r.ChatMessageId,
		DatabaseConnectionId: r.DatabaseConnectionId,
		Question:             r.Question,
		Query:                r.Query,
		ResultRows:           rows,
		Error:                r.Error,
		DurationMs:           r.DurationMs,
		CreatedAt:            r.CreatedAt,
	}
}

func (m *DatabaseConnectionMapper) QueryRecordToModel(r *entity.SQLQueryRecord) *model.SQLQueryRecord {
	if r == nil {
		return nil
	}
	return &model.SQLQueryRecord{
		Id:                   r.Id,
		ChatId:               r.ChatId,
		ChatMessageId:        r.ChatMessageId,
		DatabaseConnectionId: r.DatabaseConnectionId,
		Question:             r.Question,
		Query:                r.Query,
		ResultRows:           marshalJSON(r.ResultRows),
		Error:                r.Error,
		DurationMs:           r.DurationMs,
		CreatedAt:            r.CreatedAt,
	}
}

func (m *DatabaseConnectionMapper) QueryRecordsToEntities(records []*model.SQLQueryRecord) []*entity.SQLQueryRecord {
	entities := make([]*entity.SQLQueryRecord, len(records))
	for i, r := range records {
		entities[i] = m.QueryRecordToEntity(r)
	}
	return entities
}
