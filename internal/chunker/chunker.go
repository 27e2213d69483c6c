// Package chunker provides fixed-size text chunking for retrieval.
package chunker

import "strings"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = 200

// DefaultTitle is used when a document has no usable heading or line.
const DefaultTitle = "Untitled"

// Splitter splits document text into overlapping fixed-size chunks.
// Splitting operates on raw character length, not token count.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Overlap must stay below chunkSize so every window advances.
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize - 1
	}

	return s
}

// Split returns the chunk sequence for body. Empty or whitespace-only input
// yields no chunks. Each chunk is trimmed of surrounding whitespace but
// otherwise verbatim.
//
// Progress is guaranteed even on degenerate input: when the overlap-adjusted
// next start would not advance past the current window start, the next
// window starts exactly at the end of the current one.
func (s *Splitter) Split(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	length := len(body)
	chunks := make([]string, 0, length/(s.chunkSize-s.overlap)+1)

	start := 0
	for start < length {
		end := start + s.chunkSize
		if end > length {
			end = length
		}

		if chunk := strings.TrimSpace(body[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= length {
			break
		}

		next := end - s.overlap
		if next <= start {
			start = end
		} else {
			start = next
		}
	}

	return chunks
}

// ExtractTitle splits raw document text into a title and the body to chunk.
//
// The first markdown heading becomes the title; failing that, the first
// non-empty line. If no body remains after title removal, the whole original
// text is returned as the body so a document with content is never reduced
// to nothing.
func ExtractTitle(text string) (title, body string) {
	title = DefaultTitle

	var bodyLines []string
	found := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		if !found {
			if strings.HasPrefix(line, "#") {
				if t := strings.TrimSpace(strings.TrimLeft(line, "#")); t != "" {
					title = t
				}
				found = true
				continue
			}
			if line != "" {
				title = line
				found = true
				continue
			}
		}

		bodyLines = append(bodyLines, line)
	}

	body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if body == "" {
		body = text
	}

	return title, body
}
