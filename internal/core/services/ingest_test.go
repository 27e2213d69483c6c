package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/ubot/internal/chunker"
	"github.com/campuslabs/ubot/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestIngestDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "admissions.md", "# Admissions\n\nApplications open October 1 and close January 15.")
	writeFile(t, dir, "pages/housing.txt", "Campus Housing\nDorms open in August. Meal plans are optional.")
	writeFile(t, dir, "notes.json", `{"ignored": true}`)

	embedder := &mockEmbeddingService{fallback: []float32{1, 0, 0}}
	index := &mockVectorIndex{}
	svc := NewIngestService(embedder, index, chunker.New(), 0)

	stats, err := svc.IngestDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 2, stats.Chunks)
	assert.Equal(t, 0, stats.Skipped)

	// Chunk IDs derive from the relative path.
	assert.Contains(t, index.upserts, "admissions.md::chunk-0")
	assert.Contains(t, index.upserts, "pages/housing.txt::chunk-0")
	assert.Contains(t, index.upserts["admissions.md::chunk-0"], "Applications open October 1")
}

func TestIngestDir_SkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.txt", "   \n\t\n")
	writeFile(t, dir, "real.md", "# Fees\n\nFees are due at registration.")

	embedder := &mockEmbeddingService{fallback: []float32{1, 0, 0}}
	index := &mockVectorIndex{}
	svc := NewIngestService(embedder, index, chunker.New(), 0)

	stats, err := svc.IngestDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Files)
	assert.Equal(t, 1, stats.Chunks)
	assert.Equal(t, 1, stats.Skipped)
}

func TestIngestDir_MissingDir(t *testing.T) {
	svc := NewIngestService(&mockEmbeddingService{}, &mockVectorIndex{}, chunker.New(), 0)

	_, err := svc.IngestDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestIngestDir_EmptyDir(t *testing.T) {
	svc := NewIngestService(&mockEmbeddingService{}, &mockVectorIndex{}, chunker.New(), 0)

	stats, err := svc.IngestDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, stats.Chunks)
}

func TestIngestDir_Batching(t *testing.T) {
	dir := t.TempDir()
	// Small chunks force several chunks per file; batch size 2 forces
	// multiple embedding calls.
	writeFile(t, dir, "long.txt", "Title line\n"+
		"alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima mike november")

	embedder := &mockEmbeddingService{fallback: []float32{1, 0, 0}}
	index := &mockVectorIndex{}
	splitter := chunker.New(chunker.WithChunkSize(20), chunker.WithOverlap(5))
	svc := NewIngestService(embedder, index, splitter, 2)

	stats, err := svc.IngestDir(context.Background(), dir)
	require.NoError(t, err)
	require.Greater(t, stats.Chunks, 2)

	assert.Greater(t, len(embedder.calls), 1, "expected multiple embed batches")
	for _, call := range embedder.calls {
		assert.LessOrEqual(t, len(call), 2)
	}
}

func TestIngestDir_EmbeddingCountMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# A\n\nfirst document body")
	writeFile(t, dir, "b.md", "# B\n\nsecond document body")

	svc := NewIngestService(&mockShortEmbedding{}, &mockVectorIndex{}, chunker.New(), 0)

	_, err := svc.IngestDir(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderResponseInvalid)
}

func TestIngestDir_CrawledPageURLMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.txt", "# https://example.edu/admissions\n\nHow to apply, step by step.")

	embedder := &mockEmbeddingService{fallback: []float32{1, 0, 0}}
	index := &recordingIndex{}
	svc := NewIngestService(embedder, index, chunker.New(), 0)

	_, err := svc.IngestDir(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, index.metas, 1)
	assert.Equal(t, "https://example.edu/admissions", index.metas[0].URL)
	assert.Equal(t, "page.txt", index.metas[0].SourceFile)
}

// recordingIndex captures upserted metadata.
type recordingIndex struct {
	mockVectorIndex
	metas []domain.ChunkMetadata
}

func (r *recordingIndex) Upsert(ctx context.Context, chunkID string, vector []float32, content string, meta domain.ChunkMetadata) error {
	r.metas = append(r.metas, meta)
	return r.mockVectorIndex.Upsert(ctx, chunkID, vector, content, meta)
}
