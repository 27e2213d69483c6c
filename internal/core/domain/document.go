package domain

import "fmt"

// Document is a named unit of source text produced by the crawler or a
// local content drop. It is immutable once ingested: the loader creates it,
// the chunker consumes it exactly once, nothing mutates it afterwards.
type Document struct {
	// ID is the document identifier, the path of the source file
	// relative to the data directory.
	ID string

	// Title is the human-readable title extracted from the first heading
	// or first non-empty line.
	Title string

	// URL is the page the content was crawled from, empty for local files.
	URL string

	// Body is the raw text handed to the chunker.
	Body string
}

// Chunk is a contiguous slice of a document's body, the atomic retrieval unit.
type Chunk struct {
	// ID is the deterministic chunk identifier, see ChunkID.
	ID string

	// Index is the ordinal position within the document.
	Index int

	// Content is the chunk text, trimmed of surrounding whitespace.
	Content string

	// Metadata carries the source attribution stored alongside the vector.
	Metadata ChunkMetadata
}

// ChunkMetadata is the attribution stored with every chunk and returned
// with every retrieval match.
type ChunkMetadata struct {
	SourceFile string `json:"source_file"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// ChunkID derives the globally unique chunk identifier from the document
// identifier and chunk index. Re-ingesting a document produces the same IDs,
// so upserts replace rather than duplicate.
func ChunkID(docID string, index int) string {
	return fmt.Sprintf("%s::chunk-%d", docID, index)
}
