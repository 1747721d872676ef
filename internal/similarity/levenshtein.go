package similarity

// levenshtein computes the Levenshtein edit distance between a and b using
// a rolling two-row table: O(|a|·|b|) time, O(min(|a|,|b|)) space, per the
// complexity bound in spec.md §4.3.
func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}

	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			del := prev[i] + 1
			ins := curr[i-1] + 1
			sub := prev[i-1] + cost
			curr[i] = minInt(del, minInt(ins, sub))
		}
		prev, curr = curr, prev
	}

	return prev[len(ar)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
