// Package chunk segments a source string into semantic code blocks —
// functions, classes, methods — using per-language regex descriptors from
// internal/language. It is the "chunk extractor" of spec §4.2.
package chunk

import "github.com/mvp-joe/agent-booster/internal/language"

// Chunk is a contiguous, immutable substring of a source file, classified
// by kind. Byte/line offsets are 0-indexed for bytes, 1-indexed for lines
// (matching the teacher parsers' convention). A Chunk is a value type: once
// returned by an Extractor it is never mutated.
type Chunk struct {
	Kind      language.ChunkKind
	StartByte int
	EndByte   int
	StartLine int
	EndLine   int
	Text      string
}

// Extractor produces an ordered, non-decreasing-by-start-byte sequence of
// Chunks from source, bounded to at most maxChunks entries. Implementations
// must never panic on malformed input: an unclosed brace or a string that
// runs to EOF is not an error, it just clamps the chunk to EOF.
type Extractor interface {
	Extract(source string, lang language.Language, maxChunks int) []Chunk
}

// DefaultExtractor is the regex/brace-tracking extractor spec.md §4.2
// describes and the one ApplyEdit uses unless a request opts into the
// AST-backed extractor (and the language has a bundled grammar).
var DefaultExtractor Extractor = RegexExtractor{}
