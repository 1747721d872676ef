package chunk

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mvp-joe/agent-booster/internal/language"
)

// RegexExtractor is the default, AST-free extractor described in spec.md
// §4.2: per-language header regexes locate the start of a chunk, then
// brace-depth tracking (brace-delimited languages) or indentation tracking
// (Python) finds its end. It never errors; malformed input simply produces
// a best-effort, possibly EOF-clamped chunk.
type RegexExtractor struct{}

// Extract implements Extractor.
func (RegexExtractor) Extract(source string, lang language.Language, maxChunks int) []Chunk {
	if maxChunks <= 0 {
		maxChunks = 100
	}
	desc := language.Get(lang)
	src := []byte(source)

	var chunks []Chunk
	for _, pat := range desc.ChunkPatterns {
		re, err := regexp.Compile("(?m)" + pat.Header)
		if err != nil {
			continue
		}
		chunks = append(chunks, extractForPattern(src, re, pat.Kind, desc)...)
	}

	sort.SliceStable(chunks, func(i, j int) bool {
		if chunks[i].StartByte != chunks[j].StartByte {
			return chunks[i].StartByte < chunks[j].StartByte
		}
		return chunks[i].EndByte > chunks[j].EndByte
	})

	if len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}
	return chunks
}

// extractForPattern scans src for non-overlapping header matches of re and
// expands each into a full chunk per the language's brace style.
func extractForPattern(src []byte, re *regexp.Regexp, kind language.ChunkKind, desc language.Descriptor) []Chunk {
	var out []Chunk
	searchFrom := 0

	for searchFrom < len(src) {
		loc := re.FindIndex(src[searchFrom:])
		if loc == nil {
			break
		}
		headerStart := searchFrom + loc[0]
		headerEnd := searchFrom + loc[1]
		// Under (?m) a header's leading \s* can run across preceding blank
		// lines; start the chunk on the line the header text itself is on.
		first := headerStart
		for first < headerEnd && (src[first] == ' ' || src[first] == '\t' || src[first] == '\n' || src[first] == '\r' || src[first] == '\f') {
			first++
		}
		if ls := lineStartOf(src, first); ls > headerStart {
			headerStart = ls
		}

		var end int
		if desc.BraceStyle == language.IndentDelimited {
			end = expandIndentBlock(src, headerStart)
		} else {
			// Some headers end with the chunk's own '{'; track depth from it.
			from := headerEnd
			if from > headerStart && src[from-1] == '{' {
				from--
			}
			end = expandBraceBlock(src, from, commentStyleFor(desc))
		}
		if end <= headerStart {
			end = headerEnd
		}

		out = append(out, Chunk{
			Kind:      kind,
			StartByte: headerStart,
			EndByte:   end,
			StartLine: lineOf(src, headerStart),
			EndLine:   lineOf(src, end),
			Text:      string(src[headerStart:end]),
		})

		if end > searchFrom {
			searchFrom = end
		} else {
			searchFrom = headerEnd
		}
	}

	return out
}

// commentStyleFor derives the comment markers to recognize while scanning
// a language's source, from its descriptor's single-line comment prefix.
func commentStyleFor(desc language.Descriptor) commentStyle {
	switch desc.LineComment {
	case "#":
		return commentStyle{hashLine: true}
	default:
		return commentStyle{slashLine: true, slashBlock: true}
	}
}

// expandBraceBlock finds the first '{' at or after fromIdx (skipping
// strings/comments), then tracks brace depth forward until it returns to
// zero. An unclosed brace clamps the result to EOF, per spec.md §4.2's
// failure policy.
func expandBraceBlock(src []byte, fromIdx int, cs commentStyle) int {
	var st lexState
	i := fromIdx
	openIdx := -1

	for i < len(src) {
		skip, structural := st.advance(src, i, cs)
		if structural && src[i] == '{' {
			openIdx = i
			i += skip
			break
		}
		// A statement terminator before any '{' means this header never
		// opens a block (e.g. a forward declaration); stop looking.
		if structural && src[i] == ';' && !st.inLiteral() {
			return i + 1
		}
		i += skip
	}

	if openIdx == -1 {
		return len(src)
	}

	depth := 1
	st = lexState{}
	for i < len(src) {
		skip, structural := st.advance(src, i, cs)
		if structural {
			switch src[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
		i += skip
	}
	// Unclosed: clamp to EOF.
	return len(src)
}

// expandIndentBlock implements Python-style indentation tracking: consume
// lines after the header whose indentation strictly exceeds the header
// line's indentation, stopping at the first dedent or EOF.
func expandIndentBlock(src []byte, headerStart int) int {
	lineStart := lineStartOf(src, headerStart)
	headerIndent := indentOf(src, lineStart)

	lineEnd := nextLineStart(src, lineStart)
	end := lineEnd

	for lineEnd < len(src) {
		nextStart := nextLineStart(src, lineEnd)
		line := src[lineEnd:nextStart]
		trimmed := strings.TrimRight(string(line), "\r\n")

		if strings.TrimSpace(trimmed) == "" {
			// Blank lines don't by themselves end the block; keep scanning
			// but don't commit them as the end unless followed by more
			// indented content.
			lineEnd = nextStart
			continue
		}

		indent := indentOf(src, lineEnd)
		if indent <= headerIndent {
			break
		}

		end = nextStart
		lineEnd = nextStart
	}

	return end
}

func lineStartOf(src []byte, idx int) int {
	for idx > 0 && src[idx-1] != '\n' {
		idx--
	}
	return idx
}

func nextLineStart(src []byte, from int) int {
	i := from
	for i < len(src) && src[i] != '\n' {
		i++
	}
	if i < len(src) {
		i++
	}
	return i
}

func indentOf(src []byte, lineStart int) int {
	count := 0
	for i := lineStart; i < len(src); i++ {
		switch src[i] {
		case ' ':
			count++
		case '\t':
			count += 8 // coarse expansion, consistent across a single file
		default:
			return count
		}
	}
	return count
}

func lineOf(src []byte, byteIdx int) int {
	if byteIdx > len(src) {
		byteIdx = len(src)
	}
	line := 1
	for i := 0; i < byteIdx; i++ {
		if src[i] == '\n' {
			line++
		}
	}
	return line
}
