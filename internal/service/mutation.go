// Package service owns the canonical lead and opportunity collections and
// simulates the remote writes a real backend would perform: artificial
// latency, randomized transient failures, and optimistic replace-by-id on
// success. Successful mutations are mirrored to sqlite so they survive
// restarts.
package service

import (
	"context"
	"database/sql"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"pipedeck/internal/config"
	"pipedeck/internal/crm"
	"pipedeck/internal/database"
	"pipedeck/internal/database/repository"
)

// Transient write failures surfaced to the panel. Both are recoverable by
// resubmitting the same action.
var (
	ErrSaveFailed    = errors.New("failed to save lead, please try again")
	ErrConvertFailed = errors.New("failed to convert lead to opportunity, please try again")
)

// ErrLeadNotFound reports a save against an id missing from the canonical
// collection.
var ErrLeadNotFound = errors.New("lead not found")

// FailureFn decides whether a simulated write fails at the given rate.
// Tests inject deterministic policies.
type FailureFn func(rate float64) bool

// MutationService is the single writer for both collections. Readers get
// copies; the UI is expected to keep at most one mutation in flight, the
// mutex only guards against the tea runtime running command closures off
// the update loop.
type MutationService struct {
	mu    sync.Mutex
	leads []crm.Lead
	opps  []crm.Opportunity

	db      *sql.DB
	leadsDB *repository.LeadRepo
	oppsDB  *repository.OpportunityRepo

	sim  config.SimulationConfig
	fail FailureFn
	now  func() time.Time
}

// NewMutationService wires the service against an opened, migrated database.
func NewMutationService(db *sql.DB, sim config.SimulationConfig) *MutationService {
	return &MutationService{
		db:      db,
		leadsDB: repository.NewLeadRepo(db),
		oppsDB:  repository.NewOpportunityRepo(db),
		sim:     sim,
		fail:    func(rate float64) bool { return rand.Float64() < rate },
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetFailurePolicy replaces the random failure roll, for deterministic tests.
func (s *MutationService) SetFailurePolicy(f FailureFn) { s.fail = f }

// SetClock replaces the conversion timestamp source, for deterministic tests.
func (s *MutationService) SetClock(now func() time.Time) { s.now = now }

// Load pulls both collections from the database after the simulated fetch
// latency. It backs the initial view and can be re-run to refresh.
func (s *MutationService) Load(ctx context.Context) error {
	if err := simulateLatency(ctx, s.sim.LoadLatency); err != nil {
		return err
	}
	leads, err := s.leadsDB.List(ctx)
	if err != nil {
		return err
	}
	opps, err := s.oppsDB.List(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.leads, s.opps = leads, opps
	s.mu.Unlock()
	return nil
}

// Leads returns a copy of the canonical lead collection.
func (s *MutationService) Leads() []crm.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]crm.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Opportunities returns a copy of the canonical opportunity collection.
func (s *MutationService) Opportunities() []crm.Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]crm.Opportunity, len(s.opps))
	copy(out, s.opps)
	return out
}

// SaveLead simulates a remote save of an edited lead. On success the record
// is replaced by id in the canonical collection and mirrored to sqlite; on
// an injected failure the collection is untouched and ErrSaveFailed is
// returned for the panel.
func (s *MutationService) SaveLead(ctx context.Context, updated crm.Lead) error {
	if err := simulateLatency(ctx, s.sim.SaveLatency); err != nil {
		return err
	}
	if s.fail(s.sim.SaveFailureRate) {
		return ErrSaveFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.leadIndex(updated.ID)
	if idx < 0 {
		return ErrLeadNotFound
	}
	s.leads[idx] = updated

	// The in-memory collection is canonical; the sqlite mirror is
	// best-effort and must not fail an already-acknowledged save.
	_ = s.leadsDB.Update(ctx, updated)
	return nil
}

// ConvertLead simulates converting a lead into an opportunity. On success
// the source lead's status is forced to qualified, the new opportunity is
// appended, both writes are mirrored in one transaction, and the updated
// lead plus created opportunity are returned. On failure both collections
// are untouched.
func (s *MutationService) ConvertLead(ctx context.Context, lead crm.Lead) (crm.Lead, crm.Opportunity, error) {
	if err := simulateLatency(ctx, s.sim.ConvertLatency); err != nil {
		return crm.Lead{}, crm.Opportunity{}, err
	}
	if s.fail(s.sim.ConvertFailureRate) {
		return crm.Lead{}, crm.Opportunity{}, ErrConvertFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.leadIndex(lead.ID)
	if idx < 0 {
		return crm.Lead{}, crm.Opportunity{}, ErrLeadNotFound
	}

	qualified := s.leads[idx]
	qualified.Status = crm.StatusQualified
	opp := crm.NewOpportunityFromLead(qualified, s.now())

	s.leads[idx] = qualified
	s.opps = append(s.opps, opp)

	_ = database.WithTx(s.db, func(tx *sql.Tx) error {
		if err := s.leadsDB.UpdateTx(ctx, tx, qualified); err != nil {
			return err
		}
		return s.oppsDB.InsertTx(ctx, tx, opp)
	})
	return qualified, opp, nil
}

// leadIndex finds a lead by id. Callers hold s.mu.
func (s *MutationService) leadIndex(id string) int {
	for i, l := range s.leads {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
