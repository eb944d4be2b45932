package crm

import "testing"

func TestComputeLeadStatsEmpty(t *testing.T) {
	stats := ComputeLeadStats(nil)
	if stats.Total != 0 || stats.AverageScore != 0 || stats.HighPriority != 0 {
		t.Fatalf("empty stats = %+v, want all zero", stats)
	}
}

func TestComputeLeadStats(t *testing.T) {
	leads := []Lead{
		{Score: 92, Status: StatusNew},
		{Score: 80, Status: StatusContacted},
		{Score: 45, Status: StatusNew},
	}
	stats := ComputeLeadStats(leads)
	if stats.Total != 3 {
		t.Fatalf("Total = %d, want 3", stats.Total)
	}
	// (92+80+45)/3 = 72.33 rounds to 72
	if stats.AverageScore != 72 {
		t.Fatalf("AverageScore = %d, want 72", stats.AverageScore)
	}
	// 80 is on the high-priority boundary and counts
	if stats.HighPriority != 2 {
		t.Fatalf("HighPriority = %d, want 2", stats.HighPriority)
	}
	if stats.ByStatus[StatusNew] != 2 || stats.ByStatus[StatusContacted] != 1 {
		t.Fatalf("ByStatus = %v", stats.ByStatus)
	}
}

func TestComputeLeadStatsAverageRoundsUp(t *testing.T) {
	stats := ComputeLeadStats([]Lead{{Score: 1}, {Score: 2}})
	if stats.AverageScore != 2 {
		t.Fatalf("AverageScore = %d, want 2 (1.5 rounds up)", stats.AverageScore)
	}
}

func TestComputeOpportunityStatsWinRate(t *testing.T) {
	amt := func(v float64) *float64 { return &v }
	opps := []Opportunity{
		{Stage: StageClosedWon, Amount: amt(85000)},
		{Stage: StageProposal, Amount: amt(75000)},
		{Stage: StageClosedLost}, // nil amount counts as zero value
	}
	stats := ComputeOpportunityStats(opps)
	if stats.Total != 3 || stats.WonCount != 1 {
		t.Fatalf("Total/WonCount = %d/%d, want 3/1", stats.Total, stats.WonCount)
	}
	if stats.WinRate != 33.3 {
		t.Fatalf("WinRate = %v, want 33.3", stats.WinRate)
	}
	if stats.TotalValue != 160000 {
		t.Fatalf("TotalValue = %v, want 160000", stats.TotalValue)
	}
	if stats.ByStage[StageProposal] != 1 {
		t.Fatalf("ByStage = %v", stats.ByStage)
	}
}

func TestComputeOpportunityStatsEmpty(t *testing.T) {
	stats := ComputeOpportunityStats(nil)
	if stats.Total != 0 || stats.WinRate != 0 || stats.TotalValue != 0 {
		t.Fatalf("empty stats = %+v, want all zero", stats)
	}
}

func TestComputeOpportunityStatsClosedLostIsNotAWin(t *testing.T) {
	stats := ComputeOpportunityStats([]Opportunity{{Stage: StageClosedLost}, {Stage: StageClosedLost}})
	if stats.WonCount != 0 || stats.WinRate != 0 {
		t.Fatalf("Closed Lost counted as win: %+v", stats)
	}
}
