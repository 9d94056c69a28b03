package rules

import (
	"github.com/agext/levenshtein"
)

// closestMatch returns the candidate with the smallest edit distance to
// name, or "" when nothing is within maxDist edits. Ties keep the earlier
// candidate so suggestions are stable.
func closestMatch(name string, candidates []string, maxDist int) string {
	best := ""
	bestDist := maxDist + 1
	for _, cand := range candidates {
		d := levenshtein.Distance(name, cand, nil)
		if d < bestDist {
			best = cand
			bestDist = d
		}
	}
	return best
}
