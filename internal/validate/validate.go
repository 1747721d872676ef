// Package validate implements the coarse syntactic sanity checker of
// spec.md §4.6: brace/paren/bracket balance, plus an indentation-mixing
// check for indentation-delimited languages. It never mutates its input
// and never rejects a merge outright — it only reports syntax_valid.
package validate

import (
	"strings"

	"github.com/mvp-joe/agent-booster/internal/chunk"
	"github.com/mvp-joe/agent-booster/internal/language"
)

// Validate reports whether merged looks syntactically sane for lang: all
// of '()', '[]', '{}' balance outside strings/comments, and — for
// indentation-delimited languages — no line mixes tabs and spaces within
// its own leading-whitespace prefix.
func Validate(merged string, lang language.Language) bool {
	if !chunk.CountDelimiters(merged, lang).Balanced() {
		return false
	}

	desc := language.Get(lang)
	if desc.BraceStyle == language.IndentDelimited {
		return !hasMixedIndentation(merged)
	}
	return true
}

// hasMixedIndentation reports whether any non-blank line's leading
// whitespace run contains both a space before a tab, which is the
// classic Python TabError shape: a prefix of spaces followed by a tab (or
// vice versa within what should be one consistent indent unit) is treated
// as invalid; a prefix that is entirely spaces or entirely tabs is fine.
func hasMixedIndentation(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		end := 0
		for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
			end++
		}
		prefix := line[:end]
		if strings.Contains(prefix, " ") && strings.Contains(prefix, "\t") {
			return true
		}
	}
	return false
}
