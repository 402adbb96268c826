package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

type ByChatEngineID struct {
	ChatEngineID uuid.UUID
}

func (s ByChatEngineID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_engine_id = ?", s.ChatEngineID)
}

type ByOrigin struct {
	Origin string
}

func (s ByOrigin) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("origin = ?", s.Origin)
}

type ByChatMessageID struct {
	ChatMessageID uuid.UUID
}

func (s ByChatMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_message_id = ?", s.ChatMessageID)
}
