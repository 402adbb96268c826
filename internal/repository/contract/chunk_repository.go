package contract

import (
	"context"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChunkRepository interface {
	Create(ctx context.Context, chunk *entity.Chunk) error
	CreateBatch(ctx context.Context, chunks []*entity.Chunk) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByDocument(ctx context.Context, documentId uuid.UUID) error

	// GetPreview resolves a chunk into the hover-card preview: chunk text
	// joined with its document and knowledge base names.
	GetPreview(ctx context.Context, chunkId uuid.UUID) (*entity.ChunkPreview, error)

	// SearchSimilar returns the chunks nearest to the given embedding within
	// one knowledge base, ordered by cosine distance.
	SearchSimilar(ctx context.Context, kbId uuid.UUID, embedding []float32, limit int) ([]*entity.Chunk, error)
}
