package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySourceNodeID struct {
	NodeID uuid.UUID
}

func (s BySourceNodeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_node_id = ?", s.NodeID)
}

type ByTargetNodeID struct {
	NodeID uuid.UUID
}

func (s ByTargetNodeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("target_node_id = ?", s.NodeID)
}

// TouchingNodes matches relationships whose source or target is in the set.
type TouchingNodes struct {
	NodeIDs []uuid.UUID
}

func (s TouchingNodes) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_node_id IN ? OR target_node_id IN ?", s.NodeIDs, s.NodeIDs)
}
