package chunk

import "github.com/mvp-joe/agent-booster/internal/language"

// DelimiterCounts holds the net (opens - closes) count for each of the
// three delimiter kinds spec.md §4.6 checks.
type DelimiterCounts struct {
	Paren   int // ( )
	Bracket int // [ ]
	Brace   int // { }
}

// Balanced reports whether all three counts are zero.
func (d DelimiterCounts) Balanced() bool {
	return d.Paren == 0 && d.Bracket == 0 && d.Brace == 0
}

// CountDelimiters scans source with the same two-state (string/comment)
// lexer the extractor uses and counts unmatched open/close delimiters
// outside strings and comments, per spec.md §4.6. It is exported for
// internal/validate to reuse rather than re-implement the lexer.
func CountDelimiters(source string, lang language.Language) DelimiterCounts {
	desc := language.Get(lang)
	cs := commentStyleFor(desc)
	src := []byte(source)

	var st lexState
	var counts DelimiterCounts
	for i := 0; i < len(src); {
		skip, structural := st.advance(src, i, cs)
		if structural {
			switch src[i] {
			case '(':
				counts.Paren++
			case ')':
				counts.Paren--
			case '[':
				counts.Bracket++
			case ']':
				counts.Bracket--
			case '{':
				counts.Brace++
			case '}':
				counts.Brace--
			}
		}
		i += skip
	}
	return counts
}
