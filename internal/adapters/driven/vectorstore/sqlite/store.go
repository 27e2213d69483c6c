// Package sqlite provides a persistent vector index backed by SQLite.
//
// Vectors are stored as little-endian float32 blobs and searched with a
// brute-force cosine distance scan. At campus knowledge-base scale (a few
// thousand chunks) a full scan answers well under typical request budgets,
// and the index survives process restarts with zero operational overhead.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultCollection is used when no collection name is configured.
const DefaultCollection = "campus_knowledge"

// schema is applied on open. Collections are created lazily on first upsert;
// the dimension column pins the embedding size the collection accepts.
const schema = `
CREATE TABLE IF NOT EXISTS collections (
	name       TEXT PRIMARY KEY,
	dimension  INTEGER NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS chunks (
	collection TEXT NOT NULL REFERENCES collections(name),
	id         TEXT NOT NULL,
	vector     BLOB NOT NULL,
	content    TEXT NOT NULL,
	metadata   TEXT NOT NULL,
	PRIMARY KEY (collection, id)
);
`

// Index is a SQLite-backed vector index scoped to one named collection.
type Index struct {
	db         *sql.DB
	path       string
	collection string
}

// NewIndex opens (creating if necessary) the index database in dataDir and
// scopes the returned index to the named collection. If dataDir is empty,
// defaults to ~/.ubot/data.
func NewIndex(dataDir, collection string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ubot", "data")
	}
	if collection == "" {
		collection = DefaultCollection
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", domain.ErrIndexUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", domain.ErrIndexUnavailable, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: applying schema: %v", domain.ErrIndexUnavailable, err)
	}

	return &Index{
		db:         db,
		path:       dbPath,
		collection: collection,
	}, nil
}

// Path returns the database file path.
func (s *Index) Path() string {
	return s.path
}

// Collection returns the collection name this index is scoped to.
func (s *Index) Collection() string {
	return s.collection
}

// Upsert stores a chunk vector with its content and metadata, replacing any
// prior entry with the same ID. The first upsert pins the collection's
// dimension; later vectors of a different size are rejected.
func (s *Index) Upsert(ctx context.Context, chunkID string, vector []float32, content string, meta domain.ChunkMetadata) error {
	if chunkID == "" {
		return fmt.Errorf("%w: chunk ID is empty", domain.ErrInvalidInput)
	}
	if len(vector) == 0 {
		return fmt.Errorf("%w: vector is empty", domain.ErrInvalidInput)
	}

	if err := s.ensureCollection(ctx, len(vector)); err != nil {
		return err
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chunks (collection, id, vector, content, metadata)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			vector = excluded.vector,
			content = excluded.content,
			metadata = excluded.metadata
	`, s.collection, chunkID, float32SliceToBytes(vector), content, string(metaJSON))
	if err != nil {
		return fmt.Errorf("%w: upserting chunk %s: %v", domain.ErrIndexUnavailable, chunkID, err)
	}

	return nil
}

// Query scans the collection and returns up to topK matches ordered by
// ascending cosine distance. An empty collection yields an empty result.
func (s *Index) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedMatch, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: query vector is empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		return []domain.RetrievedMatch{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, vector, content, metadata
		FROM chunks
		WHERE collection = ?
	`, s.collection)
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrIndexUnavailable, err)
	}
	defer rows.Close()

	matches := make([]domain.RetrievedMatch, 0, topK)
	for rows.Next() {
		var (
			id       string
			blob     []byte
			content  string
			metaJSON string
		)
		if err := rows.Scan(&id, &blob, &content, &metaJSON); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %v", domain.ErrIndexUnavailable, err)
		}

		stored := bytesToFloat32Slice(blob)
		if len(stored) != len(vector) {
			continue
		}

		var meta domain.ChunkMetadata
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, fmt.Errorf("%w: decoding metadata for %s: %v", domain.ErrIndexUnavailable, id, err)
		}

		distance := cosineDistance(vector, stored)
		matches = append(matches, domain.RetrievedMatch{
			ChunkID:  id,
			Content:  content,
			Metadata: meta,
			Distance: &distance,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %v", domain.ErrIndexUnavailable, err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return *matches[i].Distance < *matches[j].Distance
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// Sample returns up to limit stored entries in insertion-rowid order.
func (s *Index) Sample(ctx context.Context, limit int) ([]domain.SampleEntry, error) {
	if limit <= 0 {
		return []domain.SampleEntry{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, metadata
		FROM chunks
		WHERE collection = ?
		ORDER BY rowid
		LIMIT ?
	`, s.collection, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: sampling chunks: %v", domain.ErrIndexUnavailable, err)
	}
	defer rows.Close()

	entries := make([]domain.SampleEntry, 0, limit)
	for rows.Next() {
		var (
			id       string
			metaJSON string
		)
		if err := rows.Scan(&id, &metaJSON); err != nil {
			return nil, fmt.Errorf("%w: scanning sample: %v", domain.ErrIndexUnavailable, err)
		}

		var meta domain.ChunkMetadata
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, fmt.Errorf("%w: decoding metadata for %s: %v", domain.ErrIndexUnavailable, id, err)
		}

		entries = append(entries, domain.SampleEntry{ID: id, Metadata: meta})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating samples: %v", domain.ErrIndexUnavailable, err)
	}

	return entries, nil
}

// Count returns the number of chunks stored in the collection.
func (s *Index) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM chunks WHERE collection = ?
	`, s.collection).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting chunks: %v", domain.ErrIndexUnavailable, err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *Index) Close() error {
	return s.db.Close()
}

// ensureCollection creates the collection row on first use and enforces the
// recorded dimension afterwards.
func (s *Index) ensureCollection(ctx context.Context, dimension int) error {
	var existing int
	err := s.db.QueryRowContext(ctx, `
		SELECT dimension FROM collections WHERE name = ?
	`, s.collection).Scan(&existing)

	switch {
	case err == sql.ErrNoRows:
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO collections (name, dimension) VALUES (?, ?)
			ON CONFLICT(name) DO NOTHING
		`, s.collection, dimension)
		if err != nil {
			return fmt.Errorf("%w: creating collection %s: %v", domain.ErrIndexUnavailable, s.collection, err)
		}
		return nil

	case err != nil:
		return fmt.Errorf("%w: reading collection %s: %v", domain.ErrIndexUnavailable, s.collection, err)

	case existing != dimension:
		return fmt.Errorf("%w: collection %s stores %d-dimensional vectors, got %d; was the embedding model changed?",
			domain.ErrConfiguration, s.collection, existing, dimension)
	}

	return nil
}

// cosineDistance returns 1 - cosine similarity. Zero vectors are maximally
// distant.
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
