package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/ubot/internal/core/domain"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := NewIndex(t.TempDir(), "test_collection")
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestUpsert_AndQuery(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	meta := domain.ChunkMetadata{SourceFile: "housing.md", Title: "Housing", URL: "https://example.edu/housing"}
	require.NoError(t, idx.Upsert(ctx, "housing.md::chunk-0", []float32{1, 0, 0}, "Dorms open in August.", meta))
	require.NoError(t, idx.Upsert(ctx, "housing.md::chunk-1", []float32{0, 1, 0}, "Meal plans are optional.", meta))
	require.NoError(t, idx.Upsert(ctx, "tuition.md::chunk-0", []float32{0.9, 0.1, 0}, "Tuition is due in August.", domain.ChunkMetadata{SourceFile: "tuition.md", Title: "Tuition"}))

	matches, err := idx.Query(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	// Best-first: exact match, then the nearby tuition chunk.
	assert.Equal(t, "housing.md::chunk-0", matches[0].ChunkID)
	assert.Equal(t, "tuition.md::chunk-0", matches[1].ChunkID)
	assert.Equal(t, "Dorms open in August.", matches[0].Content)
	assert.Equal(t, "housing.md", matches[0].Metadata.SourceFile)

	require.NotNil(t, matches[0].Distance)
	require.NotNil(t, matches[1].Distance)
	assert.LessOrEqual(t, *matches[0].Distance, *matches[1].Distance)
}

func TestUpsert_Idempotent(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	meta := domain.ChunkMetadata{SourceFile: "fees.md"}
	require.NoError(t, idx.Upsert(ctx, "fees.md::chunk-0", []float32{1, 0}, "old text", meta))
	require.NoError(t, idx.Upsert(ctx, "fees.md::chunk-0", []float32{0, 1}, "new text", meta))

	count, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	matches, err := idx.Query(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "new text", matches[0].Content)
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, "a::chunk-0", []float32{1, 0, 0}, "three dims", domain.ChunkMetadata{}))

	err := idx.Upsert(ctx, "b::chunk-0", []float32{1, 0}, "two dims", domain.ChunkMetadata{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestQuery_EmptyCollection(t *testing.T) {
	idx := newTestIndex(t)

	matches, err := idx.Query(context.Background(), []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestQuery_FewerThanTopK(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Upsert(ctx, "only::chunk-0", []float32{1, 0}, "single chunk", domain.ChunkMetadata{}))

	matches, err := idx.Query(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSample(t *testing.T) {
	idx := newTestIndex(t)
	ctx := context.Background()

	for _, id := range []string{"a::chunk-0", "a::chunk-1", "b::chunk-0"} {
		require.NoError(t, idx.Upsert(ctx, id, []float32{1, 0}, "text", domain.ChunkMetadata{SourceFile: "a.md"}))
	}

	entries, err := idx.Sample(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a::chunk-0", entries[0].ID)
	assert.Equal(t, "a.md", entries[0].Metadata.SourceFile)
}

func TestPersistence_AcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	idx, err := NewIndex(dir, "persist")
	require.NoError(t, err)
	require.NoError(t, idx.Upsert(ctx, "doc::chunk-0", []float32{0.5, 0.5}, "kept across restarts", domain.ChunkMetadata{}))
	require.NoError(t, idx.Close())

	reopened, err := NewIndex(dir, "persist")
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCosineDistance(t *testing.T) {
	assert.InDelta(t, 0, cosineDistance([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 1, cosineDistance([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 2, cosineDistance([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.InDelta(t, 1, cosineDistance([]float32{0, 0}, []float32{1, 0}), 1e-9)
}

func TestFloat32Roundtrip(t *testing.T) {
	in := []float32{0.1, -2.5, 768.0}
	assert.Equal(t, in, bytesToFloat32Slice(float32SliceToBytes(in)))
	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
