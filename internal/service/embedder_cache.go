// FILE: internal/service/embedder_cache.go
package service

import (
	"sync"
	"time"

	"rag-admin-be/internal/entity"
	"rag-admin-be/pkg/provider"

	"github.com/google/uuid"
)

// embedderCache hands out one embedding client per model row. A client is
// rebuilt when the row's UpdatedAt moves, so credential or base-url edits
// take effect without a restart.
type embedderCache struct {
	mu      sync.Mutex
	clients map[uuid.UUID]cachedEmbedder
}

type cachedEmbedder struct {
	client    provider.EmbeddingClient
	updatedAt time.Time
}

func newEmbedderCache() *embedderCache {
	return &embedderCache{clients: make(map[uuid.UUID]cachedEmbedder)}
}

func (c *embedderCache) For(m *entity.AIModel) (provider.EmbeddingClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.clients[m.Id]; ok && cached.updatedAt.Equal(m.UpdatedAt) {
		return cached.client, nil
	}

	raw, err := provider.NewEmbeddingClient(m)
	if err != nil {
		return nil, err
	}
	client := provider.WrapLRUCache(raw, 512, 15*time.Minute)
	c.clients[m.Id] = cachedEmbedder{client: client, updatedAt: m.UpdatedAt}
	return client, nil
}
