// FILE: internal/service/feedback_service.go
package service

import (
	"context"
	"time"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"
	"rag-admin-be/pkg/events"

	"github.com/google/uuid"
)

type IFeedbackService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	FindAll(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[dto.FeedbackResponse], error)
	FindOne(ctx context.Context, id uuid.UUID) (*dto.FeedbackResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type feedbackService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
}

func NewFeedbackService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher) IFeedbackService {
	return &feedbackService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (s *feedbackService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: req.ChatId})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperrors.NotFound("chat not found")
	}

	msg, err := uow.ChatRepository().FindOneMessage(ctx,
		specification.ByID{ID: req.ChatMessageId},
		specification.ByChatID{ChatID: req.ChatId},
	)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, apperrors.NotFound("chat message not found")
	}
	if msg.Role != entity.MessageRoleAssistant {
		return nil, apperrors.InvalidInput("feedback targets assistant messages only")
	}

	fb := &entity.Feedback{
		Id:            uuid.New(),
		ChatId:        req.ChatId,
		ChatMessageId: req.ChatMessageId,
		Type:          entity.FeedbackType(req.Type),
		Comment:       req.Comment,
		Origin:        req.Origin,
		UserId:        &userId,
		CreatedAt:     time.Now(),
	}
	if fb.Origin == "" {
		fb.Origin = chat.Origin
	}

	if err := uow.FeedbackRepository().Create(ctx, fb); err != nil {
		return nil, err
	}

	s.eventPublisher.PublishFeedbackCreated(ctx, fb.Id, fb.ChatId, req.Type)

	question, answer := s.questionAnswer(ctx, uow, fb)
	return mapper.FeedbackToResponse(fb, question, answer), nil
}

func (s *feedbackService) FindAll(ctx context.Context, q serverutils.PageQuery) (*serverutils.ListResponse[dto.FeedbackResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: q.SortBy, Desc: q.Order == "desc"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	}
	countSpecs := []specification.Specification{}
	if q.Search != "" {
		// q filters by origin, the only free-text column useful here.
		filter := specification.ByOrigin{Origin: q.Search}
		specs = append(specs, filter)
		countSpecs = append(countSpecs, filter)
	}

	feedbacks, err := uow.FeedbackRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.FeedbackRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for _, fb := range feedbacks {
		question, answer := s.questionAnswer(ctx, uow, fb)
		items = append(items, *mapper.FeedbackToResponse(fb, question, answer))
	}

	return serverutils.NewListResponse(items, total, q.Page, q.Limit), nil
}

func (s *feedbackService) FindOne(ctx context.Context, id uuid.UUID) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	fb, err := uow.FeedbackRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if fb == nil {
		return nil, apperrors.NotFound("feedback not found")
	}

	question, answer := s.questionAnswer(ctx, uow, fb)
	return mapper.FeedbackToResponse(fb, question, answer), nil
}

func (s *feedbackService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	fb, err := uow.FeedbackRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if fb == nil {
		return apperrors.NotFound("feedback not found")
	}

	return uow.FeedbackRepository().Delete(ctx, id)
}

// questionAnswer joins the rated assistant message and the user question
// preceding it. Both are best effort: a deleted message leaves the field
// empty rather than failing the read.
func (s *feedbackService) questionAnswer(ctx context.Context, uow unitofwork.UnitOfWork, fb *entity.Feedback) (string, string) {
	msg, err := uow.ChatRepository().FindOneMessage(ctx, specification.ByID{ID: fb.ChatMessageId})
	if err != nil || msg == nil {
		return "", ""
	}
	answer := msg.Content

	messages, err := uow.ChatRepository().FindMessages(ctx,
		specification.ByChatID{ChatID: fb.ChatId},
		specification.OrderBy{Field: "ordinal", Desc: false},
	)
	if err != nil {
		return "", answer
	}

	question := ""
	for _, m := range messages {
		if m.Ordinal >= msg.Ordinal {
			break
		}
		if m.Role == entity.MessageRoleUser {
			question = m.Content
		}
	}
	return question, answer
}
