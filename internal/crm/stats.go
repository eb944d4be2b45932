package crm

import "math"

// LeadStats summarises a lead collection for the overview cards.
type LeadStats struct {
	Total        int
	ByStatus     map[LeadStatus]int
	AverageScore int // rounded
	HighPriority int // score >= 80
}

const highPriorityScore = 80

// ComputeLeadStats derives lead summary figures. An empty collection yields
// all zeroes.
func ComputeLeadStats(leads []Lead) LeadStats {
	stats := LeadStats{ByStatus: make(map[LeadStatus]int, 4)}
	if len(leads) == 0 {
		return stats
	}
	sum := 0
	for _, l := range leads {
		stats.Total++
		stats.ByStatus[l.Status]++
		sum += l.Score
		if l.Score >= highPriorityScore {
			stats.HighPriority++
		}
	}
	stats.AverageScore = int(math.Round(float64(sum) / float64(len(leads))))
	return stats
}

// OpportunityStats summarises an opportunity collection.
type OpportunityStats struct {
	Total      int
	TotalValue float64
	WonCount   int
	WinRate    float64 // percentage, one decimal
	ByStage    map[Stage]int
}

// ComputeOpportunityStats derives pipeline summary figures. A nil amount
// contributes zero to TotalValue; only Closed Won counts as a win.
func ComputeOpportunityStats(opps []Opportunity) OpportunityStats {
	stats := OpportunityStats{ByStage: make(map[Stage]int, 5)}
	for _, o := range opps {
		stats.Total++
		stats.ByStage[o.Stage]++
		if o.Amount != nil {
			stats.TotalValue += *o.Amount
		}
		if o.Stage == StageClosedWon {
			stats.WonCount++
		}
	}
	if stats.Total > 0 {
		stats.WinRate = math.Round(float64(stats.WonCount)/float64(stats.Total)*1000) / 10
	}
	return stats
}
