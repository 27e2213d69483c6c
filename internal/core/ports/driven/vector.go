package driven

import (
	"context"

	"github.com/campuslabs/ubot/internal/core/domain"
)

// VectorIndex persists chunk vectors with their text and metadata and
// answers nearest-neighbour queries. The index is durable across process
// restarts, opened once per process, and safe for concurrent queries.
type VectorIndex interface {
	// Upsert stores a vector with its chunk text and metadata. Idempotent:
	// re-upserting the same chunk ID replaces the prior entry.
	Upsert(ctx context.Context, chunkID string, vector []float32, content string, meta domain.ChunkMetadata) error

	// Query returns up to topK matches ordered best-first by ascending
	// distance. Fewer results than topK is normal when the collection is
	// small; an empty result is not an error.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedMatch, error)

	// Sample returns up to limit stored entries for inspection. No ordering
	// guarantee beyond the index's native iteration order.
	Sample(ctx context.Context, limit int) ([]domain.SampleEntry, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying store handle.
	Close() error
}
