package crm

import "strings"

// AmountRanges lists the discrete amount buckets offered by the opportunity
// view, in display order. The empty bucket means "no amount filter".
func AmountRanges() []string {
	return []string{"", "0-10000", "10000-50000", "50000-100000", "100000+"}
}

// FilterLeads returns the subset of leads matching the search term and
// status filter. The input order is preserved and the input is never
// mutated.
func FilterLeads(leads []Lead, searchTerm, statusFilter string) []Lead {
	out := make([]Lead, 0, len(leads))
	for _, l := range leads {
		if !matchesLeadSearch(l, searchTerm) {
			continue
		}
		if statusFilter != "all" && string(l.Status) != statusFilter {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matchesLeadSearch(l Lead, term string) bool {
	if term == "" {
		return true
	}
	q := strings.ToLower(term)
	return strings.Contains(strings.ToLower(l.Name), q) ||
		strings.Contains(strings.ToLower(l.Company), q)
}

// FilterOpportunities returns the subset of opportunities matching the stage
// and amount-range filters. An empty stage matches everything; an unknown
// amount bucket matches everything.
func FilterOpportunities(opps []Opportunity, stage, amountRange string) []Opportunity {
	out := make([]Opportunity, 0, len(opps))
	for _, o := range opps {
		if stage != "" && string(o.Stage) != stage {
			continue
		}
		if !matchesAmountRange(o.Amount, amountRange) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesAmountRange(amount *float64, bucket string) bool {
	a := 0.0
	if amount != nil {
		a = *amount
	}
	switch bucket {
	case "0-10000":
		return a < 10000
	case "10000-50000":
		return a >= 10000 && a < 50000
	case "50000-100000":
		return a >= 50000 && a < 100000
	case "100000+":
		return a >= 100000
	default:
		return true
	}
}

// LeadCountSet holds per-status counts over the search-filtered collection,
// driving the filter chip labels.
type LeadCountSet struct {
	All      int
	ByStatus map[LeadStatus]int
}

// CountLeads tallies leads by status after applying the search term only.
// Status filtering is deliberately excluded so each chip shows what
// selecting it would yield.
func CountLeads(leads []Lead, searchTerm string) LeadCountSet {
	counts := LeadCountSet{ByStatus: make(map[LeadStatus]int, 4)}
	for _, l := range leads {
		if !matchesLeadSearch(l, searchTerm) {
			continue
		}
		counts.All++
		counts.ByStatus[l.Status]++
	}
	return counts
}
