package crm

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance caps how far a suggestion may drift from the query
// before the empty state stays silent.
const maxSuggestDistance = 3

// SuggestSearch returns the lead name or company closest to a search term
// that matched nothing, for a "did you mean" hint. The empty string means no
// candidate was close enough.
func SuggestSearch(leads []Lead, term string) string {
	q := strings.ToLower(strings.TrimSpace(term))
	if q == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	consider := func(candidate string) {
		c := strings.ToLower(candidate)
		if c == "" || strings.Contains(c, q) {
			return
		}
		// Compare against each word too, so "jonson" can suggest
		// "Sarah Johnson".
		d := levenshtein.ComputeDistance(q, c)
		for _, w := range strings.Fields(c) {
			if wd := levenshtein.ComputeDistance(q, w); wd < d {
				d = wd
			}
		}
		if d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	for _, l := range leads {
		consider(l.Name)
		consider(l.Company)
	}
	return best
}
