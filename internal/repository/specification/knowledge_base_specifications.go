package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByKnowledgeBaseID struct {
	KnowledgeBaseID uuid.UUID
}

func (s ByKnowledgeBaseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("knowledge_base_id = ?", s.KnowledgeBaseID)
}

type ByDatasourceID struct {
	DatasourceID uuid.UUID
}

func (s ByDatasourceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("datasource_id = ?", s.DatasourceID)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByIndexStatus struct {
	Status string
}

func (s ByIndexStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("index_status = ?", s.Status)
}
