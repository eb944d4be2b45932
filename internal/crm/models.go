package crm

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus is a lead's position in the qualification funnel.
type LeadStatus string

const (
	StatusNew         LeadStatus = "new"
	StatusContacted   LeadStatus = "contacted"
	StatusQualified   LeadStatus = "qualified"
	StatusUnqualified LeadStatus = "unqualified"
)

// LeadStatuses lists all statuses in funnel order.
func LeadStatuses() []LeadStatus {
	return []LeadStatus{StatusNew, StatusContacted, StatusQualified, StatusUnqualified}
}

// Stage is an opportunity's position in the sales pipeline.
type Stage string

const (
	StageQualification Stage = "Qualification"
	StageProposal      Stage = "Proposal"
	StageNegotiation   Stage = "Negotiation"
	StageClosedWon     Stage = "Closed Won"
	StageClosedLost    Stage = "Closed Lost"
)

// Stages lists all stages in pipeline order.
func Stages() []Stage {
	return []Stage{StageQualification, StageProposal, StageNegotiation, StageClosedWon, StageClosedLost}
}

// Lead is a prospective customer record. Source is an open set; unknown
// values render with a fallback glyph rather than being rejected.
type Lead struct {
	ID      string
	Name    string
	Company string
	Email   string
	Source  string
	Score   int
	Status  LeadStatus
}

// Opportunity is a pipeline deal created from a converted lead. LeadID is a
// non-owning back-reference kept for traceability only.
type Opportunity struct {
	ID          string
	Name        string
	Stage       Stage
	Amount      *float64 // nil until a value is negotiated
	AccountName string
	LeadID      string
	CreatedAt   time.Time
}

// NewOpportunityFromLead derives a fresh opportunity from a lead. IDs are
// random rather than timestamp-derived so rapid successive conversions
// cannot collide.
func NewOpportunityFromLead(lead Lead, now time.Time) Opportunity {
	return Opportunity{
		ID:          "OPP-" + uuid.NewString(),
		Name:        lead.Company + " - " + lead.Name,
		Stage:       StageQualification,
		Amount:      nil,
		AccountName: lead.Company,
		LeadID:      lead.ID,
		CreatedAt:   now,
	}
}

// LeadFilters holds the lead view's active filter criteria.
type LeadFilters struct {
	SearchTerm   string
	StatusFilter string // "all" or a LeadStatus value
}

// OpportunityFilters holds the opportunity view's active filter criteria.
// The json tags match the persisted preference document.
type OpportunityFilters struct {
	Stage       string `json:"stage"`       // "" = no stage filter
	AmountRange string `json:"amountRange"` // "" or one of the AmountRanges buckets
}

// SortConfig holds a sort field and direction.
type SortConfig struct {
	Field     string `json:"field"`
	Direction string `json:"direction"` // "asc" or "desc"
}
