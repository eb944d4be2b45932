// Package prefs persists UI preferences as small JSON documents under the
// user config directory. Every read falls back to a documented default, so a
// missing or corrupt file never breaks the caller.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"pipedeck/internal/crm"
)

// Persisted key names. Lead preferences are independent scalar keys;
// opportunity preferences are two serialized structures.
const (
	keySearchTerm   = "leadDashboard_searchTerm"
	keyStatusFilter = "leadDashboard_statusFilter"
	keySortBy       = "leadDashboard_sortBy"
	keySortOrder    = "leadDashboard_sortOrder"

	keyOppFilters = "opportunityFilters"
	keyOppSort    = "opportunitySortConfig"
)

// Store reads and writes preference documents, one file per namespace.
type Store struct {
	dir string
}

// NewStore returns a store rooted at the user config directory.
func NewStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{dir: filepath.Join(dir, "pipedeck")}, nil
}

// NewStoreAt returns a store rooted at an explicit directory.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// LeadPrefs holds the lead view's persisted state.
type LeadPrefs struct {
	SearchTerm   string
	StatusFilter string
	SortBy       string
	SortOrder    string
}

// DefaultLeadPrefs returns the documented per-key defaults.
func DefaultLeadPrefs() LeadPrefs {
	return LeadPrefs{SearchTerm: "", StatusFilter: "all", SortBy: "score", SortOrder: "desc"}
}

// OpportunityPrefs holds the opportunity view's persisted state.
type OpportunityPrefs struct {
	Filters crm.OpportunityFilters
	Sort    crm.SortConfig
}

// DefaultOpportunityPrefs returns the documented per-key defaults.
func DefaultOpportunityPrefs() OpportunityPrefs {
	return OpportunityPrefs{
		Filters: crm.OpportunityFilters{},
		Sort:    crm.SortConfig{Field: "createdAt", Direction: "desc"},
	}
}

// LoadLeadPrefs returns the persisted lead preferences. Each key falls back
// to its default independently if absent or unparseable.
func (s *Store) LoadLeadPrefs() LeadPrefs {
	p := DefaultLeadPrefs()
	doc := s.load("leads")
	readString(doc, keySearchTerm, &p.SearchTerm)
	readString(doc, keyStatusFilter, &p.StatusFilter)
	readString(doc, keySortBy, &p.SortBy)
	readString(doc, keySortOrder, &p.SortOrder)
	return p
}

// SaveLeadPrefs persists the lead preferences. Failures are returned for
// logging but are safe to ignore.
func (s *Store) SaveLeadPrefs(p LeadPrefs) error {
	doc := map[string]json.RawMessage{}
	writeValue(doc, keySearchTerm, p.SearchTerm)
	writeValue(doc, keyStatusFilter, p.StatusFilter)
	writeValue(doc, keySortBy, p.SortBy)
	writeValue(doc, keySortOrder, p.SortOrder)
	return s.save("leads", doc)
}

// LoadOpportunityPrefs returns the persisted opportunity preferences, each
// structure falling back to its default independently.
func (s *Store) LoadOpportunityPrefs() OpportunityPrefs {
	p := DefaultOpportunityPrefs()
	doc := s.load("opportunities")
	if raw, ok := doc[keyOppFilters]; ok {
		var f crm.OpportunityFilters
		if err := json.Unmarshal(raw, &f); err == nil {
			p.Filters = f
		}
	}
	if raw, ok := doc[keyOppSort]; ok {
		var sc crm.SortConfig
		if err := json.Unmarshal(raw, &sc); err == nil && sc.Field != "" {
			p.Sort = sc
		}
	}
	return p
}

// SaveOpportunityPrefs persists the opportunity preferences.
func (s *Store) SaveOpportunityPrefs(p OpportunityPrefs) error {
	doc := map[string]json.RawMessage{}
	writeValue(doc, keyOppFilters, p.Filters)
	writeValue(doc, keyOppSort, p.Sort)
	return s.save("opportunities", doc)
}

func (s *Store) path(namespace string) string {
	return filepath.Join(s.dir, namespace+".json")
}

func (s *Store) load(namespace string) map[string]json.RawMessage {
	data, err := os.ReadFile(s.path(namespace))
	if err != nil {
		return nil
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc
}

func (s *Store) save(namespace string, doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	path := s.path(namespace)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func readString(doc map[string]json.RawMessage, key string, dst *string) {
	raw, ok := doc[key]
	if !ok {
		return
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

func writeValue(doc map[string]json.RawMessage, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	doc[key] = data
}
