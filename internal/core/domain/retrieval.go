package domain

// RetrievedMatch is the query-time result of comparing a query embedding
// against stored chunk embeddings. Ephemeral, created per query, never
// persisted.
type RetrievedMatch struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// Content is the stored chunk text.
	Content string

	// Metadata is the attribution stored at index time.
	Metadata ChunkMetadata

	// Distance is the similarity distance, smaller is more similar.
	// Nil when the backend did not report a score; nothing downstream
	// invents a default.
	Distance *float64
}

// Source is one answer citation, in the same best-first order as the
// matches it came from. Entries sharing a source file are not deduplicated
// here; the caller decides whether to collapse them for display.
type Source struct {
	SourceFile string `json:"source_file"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// Answer is the result of one run of the pipeline.
type Answer struct {
	// Text is the generated answer.
	Text string `json:"answer"`

	// Sources lists one citation per retrieved match, best-first.
	Sources []Source `json:"sources"`
}

// SampleEntry is one row of a vector index sample, used by the inspection
// surface only.
type SampleEntry struct {
	ID       string        `json:"id"`
	Metadata ChunkMetadata `json:"metadata"`
}
