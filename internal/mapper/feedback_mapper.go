package mapper

import (
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/model"
)

type FeedbackMapper struct{}

func NewFeedbackMapper() *FeedbackMapper {
	return &FeedbackMapper{}
}

func (m *FeedbackMapper) ToEntity(f *model.Feedback) *entity.Feedback {
	if f == nil {
		return nil
	}
	return &entity.Feedback{
		Id:            f.Id,
		ChatId:        f.ChatId,
		ChatMessageId: f.ChatMessageId,
		Type:          entity.FeedbackType(f.Type),
		Comment:       f.Comment,
		Origin:        f.Origin,
		UserId:        f.UserId,
		CreatedAt:     f.CreatedAt,
	}
}

func (m *FeedbackMapper) ToModel(f *entity.Feedback) *model.Feedback {
	if f == nil {
		return nil
	}
	return &model.Feedback{
		Id:            f.Id,
		ChatId:        f.ChatId,
		ChatMessageId: f.ChatMessageId,
		Type:          string(f.Type),
		Comment:       f.Comment,
		Origin:        f.Origin,
		UserId:        f.UserId,
		CreatedAt:     f.CreatedAt,
	}
}

func (m *FeedbackMapper) ToEntities(feedbacks []*model.Feedback) []*entity.Feedback {
	entities := make([]*entity.Feedback, len(feedbacks))
	for i, f := range feedbacks {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
