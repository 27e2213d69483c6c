package services

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/campuslabs/ubot/internal/chunker"
	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
	"github.com/campuslabs/ubot/internal/core/ports/driving"
	"github.com/campuslabs/ubot/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultBatchSize is the number of chunks embedded per provider call.
const DefaultBatchSize = 64

// pendingChunk is a chunk waiting for embedding and upsert.
type pendingChunk struct {
	id      string
	content string
	meta    domain.ChunkMetadata
}

// IngestService builds the vector index from content files on disk.
type IngestService struct {
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	splitter  *chunker.Splitter
	batchSize int
}

// NewIngestService creates an ingest service. A batchSize of zero or less
// uses DefaultBatchSize.
func NewIngestService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	splitter *chunker.Splitter,
	batchSize int,
) *IngestService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &IngestService{
		embedder:  embedder,
		index:     index,
		splitter:  splitter,
		batchSize: batchSize,
	}
}

// IngestDir walks dir recursively for .txt and .md files, chunks their
// contents, embeds the chunks in batches, and upserts everything into the
// index. Chunk IDs are derived from the file's path relative to dir, so
// re-ingesting the same tree replaces rather than duplicates.
//
// A batch whose embedding count does not match its chunk count aborts the
// whole run: a partially indexed corpus silently skews every later answer.
func (s *IngestService) IngestDir(ctx context.Context, dir string) (driving.IngestStats, error) {
	var stats driving.IngestStats

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return stats, fmt.Errorf("%w: data directory does not exist: %s", domain.ErrConfiguration, dir)
	}

	logger.Section("Ingestion")
	logger.Info("Scanning %s for content files", dir)

	pending, stats, err := s.collectChunks(dir)
	if err != nil {
		return stats, err
	}
	if len(pending) == 0 {
		logger.Warn("No text chunks generated from %s", dir)
		return stats, nil
	}

	logger.Info("Prepared %d chunks from %d files", len(pending), stats.Files)

	for start := 0; start < len(pending); start += s.batchSize {
		end := start + s.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		if err := s.embedAndStore(ctx, pending[start:end]); err != nil {
			return stats, err
		}
		logger.Debug("Stored chunks %d-%d", start, end-1)
	}

	stats.Chunks = len(pending)
	logger.Info("Ingestion complete: %d files, %d chunks, %d skipped", stats.Files, stats.Chunks, stats.Skipped)
	return stats, nil
}

// collectChunks walks the tree and splits every content file.
func (s *IngestService) collectChunks(dir string) ([]pendingChunk, driving.IngestStats, error) {
	var (
		pending []pendingChunk
		stats   driving.IngestStats
	)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isContentFile(path) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("relativise %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		stats.Files++

		title, body := chunker.ExtractTitle(string(raw))
		chunks := s.splitter.Split(body)
		if len(chunks) == 0 {
			stats.Skipped++
			return nil
		}

		meta := domain.ChunkMetadata{
			SourceFile: rel,
			Title:      title,
		}
		// Crawled pages carry their URL as the heading line.
		if strings.HasPrefix(title, "http://") || strings.HasPrefix(title, "https://") {
			meta.URL = title
		}

		for i, content := range chunks {
			pending = append(pending, pendingChunk{
				id:      domain.ChunkID(rel, i),
				content: content,
				meta:    meta,
			})
		}
		return nil
	})
	if err != nil {
		return nil, stats, fmt.Errorf("walk %s: %w", dir, err)
	}

	return pending, stats, nil
}

// embedAndStore embeds one batch and upserts every chunk in it.
func (s *IngestService) embedAndStore(ctx context.Context, batch []pendingChunk) error {
	texts := make([]string, len(batch))
	for i, chunk := range batch {
		texts[i] = chunk.content
	}

	embeddings, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("%w: %d embeddings for %d chunks",
			domain.ErrProviderResponseInvalid, len(embeddings), len(batch))
	}

	for i, chunk := range batch {
		if err := s.index.Upsert(ctx, chunk.id, embeddings[i], chunk.content, chunk.meta); err != nil {
			return fmt.Errorf("upsert %s: %w", chunk.id, err)
		}
	}
	return nil
}

// isContentFile reports whether a path should be ingested.
func isContentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	default:
		return false
	}
}
