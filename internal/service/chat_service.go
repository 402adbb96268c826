// FILE: internal/service/chat_service.go
package service

import (
	"context"

	"rag-admin-be/internal/dto"
	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/apperrors"
	"rag-admin-be/internal/pkg/serverutils"
	"rag-admin-be/internal/repository/specification"
	"rag-admin-be/internal/repository/unitofwork"
	"rag-admin-be/pkg/admin/mapper"
	"rag-admin-be/pkg/citation"

	"github.com/google/uuid"
)

// IChatService reads conversations for the admin screens and the account
// owner. A nil requester means an admin caller: no ownership filter.
type IChatService interface {
	FindAll(ctx context.Context, requester *uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[dto.ChatListItemResponse], error)
	FindOne(ctx context.Context, requester *uuid.UUID, id uuid.UUID) (*dto.ChatDetailResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetQueryRecords(ctx context.Context, requester *uuid.UUID, chatId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.SQLQueryRecordResponse], error)
}

type chatService struct {
	uowFactory unitofwork.RepositoryFactory
	resolver   *citation.Resolver
}

func NewChatService(uowFactory unitofwork.RepositoryFactory, resolver *citation.Resolver) IChatService {
	return &chatService{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

func (s *chatService) FindAll(ctx context.Context, requester *uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[dto.ChatListItemResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: q.SortBy, Desc: q.Order == "desc"},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	}
	countSpecs := []specification.Specification{}
	if requester != nil {
		owned := specification.ByUserID{UserID: *requester}
		specs = append(specs, owned)
		countSpecs = append(countSpecs, owned)
	}
	if q.Search != "" {
		search := specification.TitleSearch{Query: q.Search}
		specs = append(specs, search)
		countSpecs = append(countSpecs, search)
	}

	chats, err := uow.ChatRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.ChatRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatListItemResponse, 0, len(chats))
	for _, c := range chats {
		msgCount, err := uow.ChatRepository().CountMessages(ctx, specification.ByChatID{ChatID: c.Id})
		if err != nil {
			return nil, err
		}
		items = append(items, *mapper.ChatToListItem(c, msgCount))
	}

	return serverutils.NewListResponse(items, total, q.Page, q.Limit), nil
}

func (s *chatService) FindOne(ctx context.Context, requester *uuid.UUID, id uuid.UUID) (*dto.ChatDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := s.findChat(ctx, uow, requester, id)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatRepository().FindMessages(ctx,
		specification.ByChatID{ChatID: id},
		specification.OrderBy{Field: "ordinal", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	// Collect every cited chunk across the conversation, then resolve the
	// whole set in one pass so repeated citations hit the cache.
	parsed := make([][]citation.Citation, len(messages))
	allIds := make([]uuid.UUID, 0)
	for i, msg := range messages {
		if msg.Role != entity.MessageRoleAssistant {
			continue
		}
		parsed[i] = citation.Parse(msg.Content)
		for _, c := range parsed[i] {
			allIds = append(allIds, c.ChunkId)
		}
	}

	previews := map[uuid.UUID]*entity.ChunkPreview{}
	if len(allIds) > 0 {
		previews, err = s.resolver.Resolve(ctx, allIds)
		if err != nil {
			return nil, err
		}
	}

	msgResponses := make([]dto.ChatMessageResponse, 0, len(messages))
	for i, msg := range messages {
		resp := mapper.ChatMessageToResponse(msg)
		for _, c := range parsed[i] {
			cit := dto.CitationResponse{
				ChunkId: c.ChunkId,
				Anchor:  c.Anchor,
				Ordinal: c.Ordinal,
			}
			if p, ok := previews[c.ChunkId]; ok {
				cit.Preview = mapper.ChunkPreviewToResponse(p)
			}
			resp.Citations = append(resp.Citations, cit)
		}
		msgResponses = append(msgResponses, *resp)
	}

	return &dto.ChatDetailResponse{
		ChatListItemResponse: *mapper.ChatToListItem(chat, int64(len(messages))),
		Messages:             msgResponses,
	}, nil
}

func (s *chatService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if chat == nil {
		return apperrors.NotFound("chat not found")
	}

	return uow.ChatRepository().Delete(ctx, id)
}

func (s *chatService) GetQueryRecords(ctx context.Context, requester *uuid.UUID, chatId uuid.UUID, q serverutils.PageQuery) (*serverutils.ListResponse[*dto.SQLQueryRecordResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findChat(ctx, uow, requester, chatId); err != nil {
		return nil, err
	}

	byChat := specification.ByChatID{ChatID: chatId}
	records, err := uow.DatabaseConnectionRepository().FindQueryRecords(ctx,
		byChat,
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.Pagination{Limit: q.Limit, Offset: q.Offset()},
	)
	if err != nil {
		return nil, err
	}
	total, err := uow.DatabaseConnectionRepository().CountQueryRecords(ctx, byChat)
	if err != nil {
		return nil, err
	}

	return serverutils.NewListResponse(mapper.SQLQueryRecordsToResponse(records), total, q.Page, q.Limit), nil
}

// findChat loads the chat and enforces ownership for non-admin requesters.
// Hidden rows 404 rather than 403 so callers cannot probe for chat ids.
func (s *chatService) findChat(ctx context.Context, uow unitofwork.UnitOfWork, requester *uuid.UUID, id uuid.UUID) (*entity.Chat, error) {
	chat, err := uow.ChatRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, apperrors.NotFound("chat not found")
	}
	if requester != nil {
		if chat.UserId == nil || *chat.UserId != *requester {
			return nil, apperrors.NotFound("chat not found")
		}
	}
	return chat, nil
}
