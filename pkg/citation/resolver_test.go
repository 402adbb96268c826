package citation

import (
	"context"
	"errors"
	"testing"

	"rag-admin-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePreviewSource counts lookups so tests can assert on dedup behavior.
type fakePreviewSource struct {
	previews map[uuid.UUID]*entity.ChunkPreview
	err      error
	calls    int
}

func (f *fakePreviewSource) GetPreview(_ context.Context, chunkId uuid.UUID) (*entity.ChunkPreview, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.previews[chunkId], nil
}

func TestResolve(t *testing.T) {
	idA, idB, gone := uuid.New(), uuid.New(), uuid.New()

	source := &fakePreviewSource{
		previews: map[uuid.UUID]*entity.ChunkPreview{
			idA: {ChunkId: idA, DocumentName: "intro.md", Text: "chunk a"},
			idB: {ChunkId: idB, DocumentName: "guide.md", Text: "chunk b"},
		},
	}
	r := NewResolver(source, nil, nil)

	got, err := r.Resolve(context.Background(), []uuid.UUID{idA, idB, gone})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "intro.md", got[idA].DocumentName)
	assert.Equal(t, "guide.md", got[idB].DocumentName)

	// A dangling citation is simply absent, not an error.
	_, ok := got[gone]
	assert.False(t, ok)
}

func TestResolveDeduplicatesIds(t *testing.T) {
	id := uuid.New()
	source := &fakePreviewSource{
		previews: map[uuid.UUID]*entity.ChunkPreview{
			id: {ChunkId: id, Text: "cited twice"},
		},
	}
	r := NewResolver(source, nil, nil)

	got, err := r.Resolve(context.Background(), []uuid.UUID{id, id, id})
	require.NoError(t, err)

	assert.Len(t, got, 1)
	assert.Equal(t, 1, source.calls)
}

func TestResolveSurfacesSourceErrors(t *testing.T) {
	source := &fakePreviewSource{err: errors.New("connection reset")}
	r := NewResolver(source, nil, nil)

	_, err := r.Resolve(context.Background(), []uuid.UUID{uuid.New()})
	assert.Error(t, err)
}

func TestResolveOne(t *testing.T) {
	id := uuid.New()
	source := &fakePreviewSource{
		previews: map[uuid.UUID]*entity.ChunkPreview{
			id: {ChunkId: id, KnowledgeBaseName: "Handbook", Text: "hover text"},
		},
	}
	r := NewResolver(source, nil, nil)

	preview, err := r.ResolveOne(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, preview)
	assert.Equal(t, "Handbook", preview.KnowledgeBaseName)

	missing, err := r.ResolveOne(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
