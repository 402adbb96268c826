package citation

import (
	"context"
	"encoding/json"
	"time"

	"rag-admin-be/internal/entity"
	"rag-admin-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PreviewSource loads the joined chunk+document+knowledge-base preview.
// Implemented by the chunk repository.
type PreviewSource interface {
	GetPreview(ctx context.Context, chunkId uuid.UUID) (*entity.ChunkPreview, error)
}

// Resolver turns cited chunk ids into hover-card previews. Previews are
// cached in Redis because the same chunks get cited across many messages
// of a conversation; a nil Redis client degrades to direct lookups.
type Resolver struct {
	source PreviewSource
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewResolver(source PreviewSource, rdb *redis.Client, log logger.ILogger) *Resolver {
	return &Resolver{
		source: source,
		rdb:    rdb,
		ttl:    10 * time.Minute,
		logger: log,
	}
}

func previewCacheKey(chunkId uuid.UUID) string {
	return "chunk_preview:" + chunkId.String()
}

// Resolve loads previews for the given chunk ids. Ids that no longer
// resolve (deleted documents, purged knowledge bases) are simply absent
// from the result; a dangling citation is not an error.
func (r *Resolver) Resolve(ctx context.Context, chunkIds []uuid.UUID) (map[uuid.UUID]*entity.ChunkPreview, error) {
	previews := make(map[uuid.UUID]*entity.ChunkPreview, len(chunkIds))

	for _, id := range chunkIds {
		if _, done := previews[id]; done {
			continue
		}

		if cached := r.fromCache(ctx, id); cached != nil {
			previews[id] = cached
			continue
		}

		preview, err := r.source.GetPreview(ctx, id)
		if err != nil {
			return nil, err
		}
		if preview == nil {
			continue
		}
		previews[id] = preview
		r.toCache(ctx, preview)
	}

	return previews, nil
}

// ResolveOne is the single-id variant used by the chunk hover endpoint.
func (r *Resolver) ResolveOne(ctx context.Context, chunkId uuid.UUID) (*entity.ChunkPreview, error) {
	if cached := r.fromCache(ctx, chunkId); cached != nil {
		return cached, nil
	}
	preview, err := r.source.GetPreview(ctx, chunkId)
	if err != nil {
		return nil, err
	}
	if preview != nil {
		r.toCache(ctx, preview)
	}
	return preview, nil
}

func (r *Resolver) fromCache(ctx context.Context, chunkId uuid.UUID) *entity.ChunkPreview {
	if r.rdb == nil {
		return nil
	}
	raw, err := r.rdb.Get(ctx, previewCacheKey(chunkId)).Bytes()
	if err != nil {
		return nil
	}
	var preview entity.ChunkPreview
	if err := json.Unmarshal(raw, &preview); err != nil {
		return nil
	}
	return &preview
}

func (r *Resolver) toCache(ctx context.Context, preview *entity.ChunkPreview) {
	if r.rdb == nil {
		return
	}
	raw, err := json.Marshal(preview)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, previewCacheKey(preview.ChunkId), raw, r.ttl).Err(); err != nil && r.logger != nil {
		r.logger.Warn("Citation", "Failed to cache chunk preview", map[string]interface{}{"error": err.Error()})
	}
}
