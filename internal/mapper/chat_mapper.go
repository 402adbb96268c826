package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}
	return &entity.Chat{
		Id:           c.Id,
		Title:        c.Title,
		ChatEngineId: c.ChatEngineId,
		UserId:       c.UserId,
		Origin:       c.Origin,
		Visibility:   entity.ChatVisibility(c.Visibility),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *ChatMapper) ToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}
	return &model.Chat{
		Id:           c.Id,
		Title:        c.Title,
		ChatEngineId: c.ChatEngineId,
		UserId:       c.UserId,
		Origin:       c.Origin,
		Visibility:   string(c.Visibility),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *ChatMapper) ToEntities(chats []*model.Chat) []*entity.Chat {
	entities := make([]*entity.Chat, len(chats))
	for i, c := range chats {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:         msg.Id,
		ChatId:     msg.ChatId,
		Ordinal:    msg.Ordinal,
		Role:       entity.MessageRole(msg.Role),
		Content:    msg.Content,
		TraceURL:   msg.TraceURL,
		FinishedAt: msg.FinishedAt,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:         msg.Id,
		ChatId:     msg.ChatId,
		Ordinal:    msg.Ordinal,
		Role:       string(msg.Role),
		Content:    msg.Content,
		TraceURL:   msg.TraceURL,
		FinishedAt: msg.FinishedAt,
		CreatedAt:  msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}
