package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"pipedeck/internal/crm"
)

func TestLeadPrefsRoundTrip(t *testing.T) {
	s := NewStoreAt(t.TempDir())

	saved := LeadPrefs{SearchTerm: "tech", StatusFilter: "contacted", SortBy: "name", SortOrder: "asc"}
	if err := s.SaveLeadPrefs(saved); err != nil {
		t.Fatalf("SaveLeadPrefs: %v", err)
	}
	if got := s.LoadLeadPrefs(); got != saved {
		t.Fatalf("round trip = %+v, want %+v", got, saved)
	}
}

func TestLeadPrefsDefaultsWhenMissing(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	got := s.LoadLeadPrefs()
	want := LeadPrefs{SearchTerm: "", StatusFilter: "all", SortBy: "score", SortOrder: "desc"}
	if got != want {
		t.Fatalf("defaults = %+v, want %+v", got, want)
	}
}

func TestLeadPrefsPerKeyFallbackOnPartialDocument(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreAt(dir)
	// Only one key present; the rest must still default.
	doc := `{"leadDashboard_statusFilter": "qualified"}`
	if err := os.WriteFile(filepath.Join(dir, "leads.json"), []byte(doc), 0o600); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	got := s.LoadLeadPrefs()
	if got.StatusFilter != "qualified" {
		t.Fatalf("StatusFilter = %q, want qualified", got.StatusFilter)
	}
	if got.SortBy != "score" || got.SortOrder != "desc" {
		t.Fatalf("missing keys did not default: %+v", got)
	}
}

func TestLeadPrefsCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreAt(dir)
	if err := os.WriteFile(filepath.Join(dir, "leads.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	if got := s.LoadLeadPrefs(); got != DefaultLeadPrefs() {
		t.Fatalf("corrupt file load = %+v, want defaults", got)
	}
}

func TestOpportunityPrefsRoundTrip(t *testing.T) {
	s := NewStoreAt(t.TempDir())

	saved := OpportunityPrefs{
		Filters: crm.OpportunityFilters{Stage: "Proposal", AmountRange: "50000-100000"},
		Sort:    crm.SortConfig{Field: "amount", Direction: "asc"},
	}
	if err := s.SaveOpportunityPrefs(saved); err != nil {
		t.Fatalf("SaveOpportunityPrefs: %v", err)
	}
	if got := s.LoadOpportunityPrefs(); got != saved {
		t.Fatalf("round trip = %+v, want %+v", got, saved)
	}
}

func TestOpportunityPrefsDefaults(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	got := s.LoadOpportunityPrefs()
	if got.Sort.Field != "createdAt" || got.Sort.Direction != "desc" {
		t.Fatalf("default sort = %+v, want createdAt/desc", got.Sort)
	}
	if got.Filters.Stage != "" || got.Filters.AmountRange != "" {
		t.Fatalf("default filters = %+v, want empty", got.Filters)
	}
}
