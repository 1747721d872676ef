package similarity

import (
	"math"
	"strings"
)

// delimiterChars are the brace/paren/bracket characters spec.md §4.3 says
// to count "in both strings" alongside language keywords, fixed across all
// languages (the language only varies the keyword half of the vector).
var delimiterChars = []string{"{", "}", "(", ")", "[", "]"}

// Vector builds the fixed-order structural count-vector for text: one
// dimension per keyword (occurrences, case-sensitive word match) followed
// by one dimension per delimiter character. It is exported because
// internal/similarity/prefilter.go reuses it as a chromem-go embedding
// function, and both call sites must agree on dimension order.
func Vector(text string, keywords []string) []float64 {
	vec := make([]float64, 0, len(keywords)+len(delimiterChars))
	for _, kw := range keywords {
		vec = append(vec, float64(countWord(text, kw)))
	}
	for _, d := range delimiterChars {
		vec = append(vec, float64(strings.Count(text, d)))
	}
	return vec
}

// countWord counts non-overlapping occurrences of word as a whole token in
// text (not a substring match: "for" must not match "format").
func countWord(text, word string) int {
	count := 0
	for _, tok := range tokenPattern.FindAllString(text, -1) {
		if tok == word {
			count++
		}
	}
	return count
}

// cosine computes cosine similarity between two equal-length vectors,
// returning 0 if either is the zero vector (spec.md §4.3).
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// structuralScore is the cosine-similarity component of spec.md §4.3,
// computed over the fixed keyword+delimiter vector.
func structuralScore(a, b string, keywords []string) float64 {
	return cosine(Vector(a, keywords), Vector(b, keywords))
}
