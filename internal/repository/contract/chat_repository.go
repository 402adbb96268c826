package contract

import (
	"context"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	Update(ctx context.Context, chat *entity.Chat) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	CreateMessage(ctx context.Context, msg *entity.ChatMessage) error
	FindOneMessage(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindMessages(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	CountMessages(ctx context.Context, specs ...specification.Specification) (int64, error)
}
