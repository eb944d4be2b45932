package crm

import (
	"sort"
	"strings"
)

// SortLeads returns a copy of leads ordered by the given field. Strings
// compare case-insensitively; ties keep their input order. An unknown field
// falls back to score.
func SortLeads(leads []Lead, field, direction string) []Lead {
	out := make([]Lead, len(leads))
	copy(out, leads)
	asc := direction == "asc"
	sort.SliceStable(out, func(i, j int) bool {
		var less bool
		switch field {
		case "name":
			less = lowerLess(out[i].Name, out[j].Name)
		case "company":
			less = lowerLess(out[i].Company, out[j].Company)
		case "email":
			less = lowerLess(out[i].Email, out[j].Email)
		case "source":
			less = lowerLess(out[i].Source, out[j].Source)
		case "status":
			less = lowerLess(string(out[i].Status), string(out[j].Status))
		default: // score
			less = out[i].Score < out[j].Score
		}
		if asc {
			return less
		}
		return flip(less, leadFieldEqual(out[i], out[j], field))
	})
	return out
}

// SortOpportunities returns a copy of opps ordered by the given field.
// CreatedAt compares by instant; a zero time sorts as the epoch. An unknown
// field falls back to createdAt.
func SortOpportunities(opps []Opportunity, field, direction string) []Opportunity {
	out := make([]Opportunity, len(opps))
	copy(out, opps)
	asc := direction == "asc"
	sort.SliceStable(out, func(i, j int) bool {
		var less, equal bool
		switch field {
		case "name":
			less = lowerLess(out[i].Name, out[j].Name)
			equal = strings.EqualFold(out[i].Name, out[j].Name)
		case "stage":
			less = lowerLess(string(out[i].Stage), string(out[j].Stage))
			equal = strings.EqualFold(string(out[i].Stage), string(out[j].Stage))
		case "accountName":
			less = lowerLess(out[i].AccountName, out[j].AccountName)
			equal = strings.EqualFold(out[i].AccountName, out[j].AccountName)
		case "amount":
			a, b := amountOrZero(out[i].Amount), amountOrZero(out[j].Amount)
			less, equal = a < b, a == b
		default: // createdAt
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
			equal = out[i].CreatedAt.Equal(out[j].CreatedAt)
		}
		if asc {
			return less
		}
		return flip(less, equal)
	})
	return out
}

// flip inverts a less result for descending order while returning false on
// equal keys, so sort.SliceStable keeps ties in input order for both
// directions.
func flip(less, equal bool) bool {
	if equal {
		return false
	}
	return !less
}

func lowerLess(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

func leadFieldEqual(a, b Lead, field string) bool {
	switch field {
	case "name":
		return strings.EqualFold(a.Name, b.Name)
	case "company":
		return strings.EqualFold(a.Company, b.Company)
	case "email":
		return strings.EqualFold(a.Email, b.Email)
	case "source":
		return strings.EqualFold(a.Source, b.Source)
	case "status":
		return a.Status == b.Status
	default:
		return a.Score == b.Score
	}
}

func amountOrZero(a *float64) float64 {
	if a == nil {
		return 0
	}
	return *a
}
