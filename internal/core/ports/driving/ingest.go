package driving

import "context"

// IngestStats summarises one ingestion run.
type IngestStats struct {
	// Files is the number of content files read.
	Files int

	// Chunks is the number of chunks embedded and upserted.
	Chunks int

	// Skipped is the number of files that produced no chunks.
	Skipped int
}

// IngestService builds or refreshes the vector index from content files.
// Ingestion is a batch process assumed to run to completion before or
// independently of live query traffic.
type IngestService interface {
	// IngestDir walks dir for .txt and .md files, chunks and embeds their
	// contents, and upserts every chunk. A batch whose embedding count
	// does not match its chunk count fails the run.
	IngestDir(ctx context.Context, dir string) (IngestStats, error)
}
