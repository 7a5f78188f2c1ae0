package match

import "strings"

// Levenshtein returns the number of single-byte insertions, deletions and
// substitutions needed to turn a into b.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	// Two rows over the shorter string.
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Closest returns the candidate nearest to name, compared case-insensitively.
// Candidates further than a third of name's length away are not considered
// close; ok is false when none is. Ties go to the earlier candidate.
func Closest(name string, candidates []string) (best string, ok bool) {
	limit := max(1, len(name)/3)
	bestDist := limit + 1
	folded := strings.ToLower(name)

	for _, c := range candidates {
		if c == name {
			continue
		}

		if d := Levenshtein(folded, strings.ToLower(c)); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist <= limit
}

// Hint formats Closest as a diagnostic suffix: ` (did you mean "Person"?)`,
// or "" when nothing is close.
func Hint(name string, candidates []string) string {
	best, ok := Closest(name, candidates)
	if !ok {
		return ""
	}

	return ` (did you mean "` + best + `"?)`
}
