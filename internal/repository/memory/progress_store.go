package memory

import (
	"time"

	"rag-admin-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ProgressStore keeps live evaluation-task counters between database
// flushes. Entries expire on their own so a crashed worker cannot leave
// a task pinned in memory.
type ProgressStore struct {
	cache *cache.Cache
}

func NewProgressStore() *ProgressStore {
	// Default expiration 1 hour, purge sweep every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ProgressStore{
		cache: c,
	}
}

func progressKey(taskId uuid.UUID) string {
	return "progress:" + taskId.String()
}

func cancelKey(taskId uuid.UUID) string {
	return "cancel:" + taskId.String()
}

func (s *ProgressStore) Set(progress *entity.TaskProgress) {
	s.cache.Set(progressKey(progress.TaskId), progress, cache.DefaultExpiration)
}

func (s *ProgressStore) Get(taskId uuid.UUID) (*entity.TaskProgress, bool) {
	if x, found := s.cache.Get(progressKey(taskId)); found {
		return x.(*entity.TaskProgress), true
	}
	return nil, false
}

func (s *ProgressStore) Delete(taskId uuid.UUID) {
	s.cache.Delete(progressKey(taskId))
	s.cache.Delete(cancelKey(taskId))
}

// RequestCancel flags a running task; the consumer checks the flag
// between items.
func (s *ProgressStore) RequestCancel(taskId uuid.UUID) {
	s.cache.Set(cancelKey(taskId), true, cache.DefaultExpiration)
}

func (s *ProgressStore) IsCancelRequested(taskId uuid.UUID) bool {
	_, found := s.cache.Get(cancelKey(taskId))
	return found
}
