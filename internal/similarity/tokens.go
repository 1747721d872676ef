package similarity

import "regexp"

var tokenPattern = regexp.MustCompile(`\w+`)

// tokenMultiset counts occurrences of each \w+ token in s. Empty input
// yields an empty (not nil) multiset.
func tokenMultiset(s string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokenPattern.FindAllString(s, -1) {
		counts[tok]++
	}
	return counts
}

// tokenOverlapScore is the Jaccard index of two token multisets
// (duplicates contribute, per spec.md §4.3 and §9's "this spec fixes
// multiset semantics" note): |A∩B| / |A∪B|, generalized to multisets as
// sum(min(count)) / sum(max(count)) over the union of distinct tokens.
func tokenOverlapScore(a, b string) float64 {
	ca, cb := tokenMultiset(a), tokenMultiset(b)
	if len(ca) == 0 || len(cb) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(ca)+len(cb))
	var intersection, union int
	for tok := range ca {
		seen[tok] = true
	}
	for tok := range cb {
		seen[tok] = true
	}
	for tok := range seen {
		na, nb := ca[tok], cb[tok]
		if na < nb {
			intersection += na
		} else {
			intersection += nb
		}
		if na > nb {
			union += na
		} else {
			union += nb
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
