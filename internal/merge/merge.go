// Package merge implements the merge strategist of spec.md §4.5: given the
// best-scoring chunk and its SimilarityScore, pick one of five splice
// strategies and produce the merged source text.
package merge

import (
	"strings"

	"github.com/mvp-joe/agent-booster/internal/chunk"
)

// Strategy is spec.md §3's MergeStrategy enumeration.
type Strategy int

const (
	ExactReplace Strategy = iota
	FuzzyReplace
	InsertAfter
	InsertBefore
	Append
)

// String returns the lowercase_snake_case form used by the Morph-compatible
// host shape (spec.md §6): {0:"exact_replace", ...}.
func (s Strategy) String() string {
	switch s {
	case ExactReplace:
		return "exact_replace"
	case FuzzyReplace:
		return "fuzzy_replace"
	case InsertAfter:
		return "insert_after"
	case InsertBefore:
		return "insert_before"
	case Append:
		return "append"
	default:
		return "unknown"
	}
}

// SelectStrategy thresholds the total similarity score against threshold to
// pick a strategy, per the closed intervals of spec.md §4.5. Boundary
// values resolve downward: a score of exactly 0.90 is ExactReplace, exactly
// 0.50 is FuzzyReplace, exactly 0.30 is InsertAfter, exactly threshold is
// InsertBefore.
func SelectStrategy(total, threshold float64) Strategy {
	switch {
	case total >= 0.90:
		return ExactReplace
	case total >= 0.50:
		return FuzzyReplace
	case total >= 0.30:
		return InsertAfter
	case total >= threshold:
		return InsertBefore
	default:
		return Append
	}
}

// Merge splices edit into original according to strategy, using best's byte
// range as the splice point for the non-Append strategies. It returns the
// merged text; byte-splicing never mutates original or edit.
func Merge(original, edit string, best chunk.Chunk, strategy Strategy) string {
	switch strategy {
	case ExactReplace:
		return original[:best.StartByte] + edit + original[best.EndByte:]
	case FuzzyReplace:
		indented := reindent(edit, indentColumn(original, best.StartByte))
		return original[:best.StartByte] + indented + original[best.EndByte:]
	case InsertAfter:
		indented := reindent(edit, indentColumn(original, best.StartByte))
		return original[:best.EndByte] + "\n" + indented + original[best.EndByte:]
	case InsertBefore:
		indented := reindent(edit, indentColumn(original, best.StartByte))
		return original[:best.StartByte] + indented + "\n" + original[best.StartByte:]
	default: // Append
		return AppendFallback(original, edit)
	}
}

// AppendFallback is the universal lowest-confidence strategy: it never
// inspects chunks and always preserves original verbatim, per spec.md
// §4.5's "Fallback to Append" rule (zero chunks extracted) and §7's
// degenerate-input rules (empty original/edit).
func AppendFallback(original, edit string) string {
	if original == "" {
		return "\n\n" + edit
	}
	if edit == "" {
		return original
	}
	return original + "\n\n" + edit
}

// indentColumn returns the column of the first non-whitespace character on
// the line containing byteIdx: each leading space counts 1 and each tab 8.
func indentColumn(src string, byteIdx int) int {
	if byteIdx > len(src) {
		byteIdx = len(src)
	}
	lineStart := strings.LastIndexByte(src[:byteIdx], '\n') + 1

	col := 0
	for i := lineStart; i < len(src); i++ {
		switch src[i] {
		case ' ':
			col++
		case '\t':
			col += 8
		default:
			return col
		}
	}
	return col
}

// reindent re-indents every line of text to column col, preserving each
// line's indentation relative to the block's own first non-blank line
// (spec.md §4.5's "Indentation alignment").
func reindent(text string, col int) string {
	lines := strings.Split(text, "\n")

	baseIndent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		baseIndent = leadingWhitespaceLen(l)
		break
	}
	if baseIndent < 0 {
		return text
	}

	prefix := strings.Repeat(" ", col)
	out := make([]string, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			out[i] = l
			continue
		}
		lead := leadingWhitespaceLen(l)
		rel := lead - baseIndent
		if rel < 0 {
			rel = 0
		}
		out[i] = prefix + strings.Repeat(" ", rel) + strings.TrimLeft(l, " \t")
	}
	// Chunk headers are matched from column 0 of their line (the extractor's
	// header regexes are anchored with ^\s*), so splicing indented text in
	// directly at a chunk's StartByte/EndByte never double-applies the
	// prefix added to line 0 above.
	return strings.Join(out, "\n")
}

func leadingWhitespaceLen(s string) int {
	n := 0
	for _, r := range s {
		if r == ' ' {
			n++
		} else if r == '\t' {
			n += 8
		} else {
			break
		}
	}
	return n
}
