package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pipedeck/internal/config"
	"pipedeck/internal/crm"
	"pipedeck/internal/database"
	"pipedeck/internal/prefs"
	"pipedeck/internal/service"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedDemoData(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := service.NewMutationService(db, config.SimulationConfig{})
	svc.SetFailurePolicy(func(float64) bool { return false })
	if err := svc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	ui := config.UIConfig{CurrencySymbol: "$", DateFormat: "Jan 2, 2006"}
	a := New(ctx, ui, svc, prefs.NewStoreAt(t.TempDir()))
	a.Update(loadDoneMsg{leads: svc.Leads(), opps: svc.Opportunities()})
	return a
}

func TestInitialProjectionUsesDefaultPrefs(t *testing.T) {
	a := newTestApp(t)

	rows := a.visibleLeads()
	if len(rows) != 10 {
		t.Fatalf("visible leads = %d, want 10", len(rows))
	}
	// default sort is score desc
	if rows[0].ID != "LD001" || rows[0].Score != 92 {
		t.Fatalf("top row = %s (%d), want LD001 (92)", rows[0].ID, rows[0].Score)
	}
}

func TestStatusFilterCyclesAndPersists(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("f"))
	if a.leadPrefs.StatusFilter != "new" {
		t.Fatalf("filter after one cycle = %q, want new", a.leadPrefs.StatusFilter)
	}
	for _, l := range a.visibleLeads() {
		if l.Status != crm.StatusNew {
			t.Fatalf("lead %s leaked through status filter", l.ID)
		}
	}

	// the change hits the store immediately
	if got := a.store.LoadLeadPrefs().StatusFilter; got != "new" {
		t.Fatalf("persisted filter = %q, want new", got)
	}
}

func TestSearchInputFiltersAndPersists(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("/"))
	if !a.searching {
		t.Fatal("slash did not enter search mode")
	}
	for _, r := range "tech" {
		a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	a.Update(keyMsg("enter"))

	if a.searching {
		t.Fatal("enter did not leave search mode")
	}
	if a.leadPrefs.SearchTerm != "tech" {
		t.Fatalf("search term = %q, want tech", a.leadPrefs.SearchTerm)
	}
	for _, l := range a.visibleLeads() {
		hay := strings.ToLower(l.Name + " " + l.Company)
		if !strings.Contains(hay, "tech") {
			t.Fatalf("lead %s does not match search", l.ID)
		}
	}
	if got := a.store.LoadLeadPrefs().SearchTerm; got != "tech" {
		t.Fatalf("persisted search = %q, want tech", got)
	}
}

func TestClearFiltersResetsLeadView(t *testing.T) {
	a := newTestApp(t)
	a.leadPrefs.SearchTerm = "tech"
	a.leadPrefs.StatusFilter = "qualified"

	a.Update(keyMsg("c"))
	if a.leadPrefs.SearchTerm != "" || a.leadPrefs.StatusFilter != "all" {
		t.Fatalf("clear left %+v", a.leadPrefs)
	}
}

func TestOpenDetailAndValidationError(t *testing.T) {
	a := newTestApp(t)

	a.Update(keyMsg("enter"))
	if a.detail == nil {
		t.Fatal("enter did not open the detail panel")
	}
	if a.detail.lead.ID != "LD001" {
		t.Fatalf("detail opened %s, want LD001 (top of score desc)", a.detail.lead.ID)
	}

	a.detail.inputs[fieldEmail].SetValue("not-an-email")
	a.Update(keyMsg("ctrl+s"))

	if a.saving {
		t.Fatal("invalid email still reached the service")
	}
	if _, ok := a.detail.fieldErrs[fieldEmail]; !ok {
		t.Fatalf("fieldErrs = %v, want email error", a.detail.fieldErrs)
	}
}

func TestScoreValidationBounds(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("enter"))

	a.detail.inputs[fieldScore].SetValue("150")
	a.Update(keyMsg("ctrl+s"))
	if _, ok := a.detail.fieldErrs[fieldScore]; !ok {
		t.Fatalf("score 150 accepted, fieldErrs = %v", a.detail.fieldErrs)
	}

	a.detail.inputs[fieldScore].SetValue("88")
	a.Update(keyMsg("ctrl+s"))
	if !a.saving {
		t.Fatal("valid edit did not start a save")
	}
}

func TestSavedMessageUpdatesSelectionAndClearsError(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("enter"))
	a.saving = true
	a.panelErr = "failed to save lead, please try again"

	updated := a.detail.lead
	updated.Status = crm.StatusContacted
	a.Update(leadSavedMsg{lead: updated})

	if a.saving || a.panelErr != "" {
		t.Fatalf("save done left saving=%v err=%q", a.saving, a.panelErr)
	}
	if a.detail.lead.Status != crm.StatusContacted {
		t.Fatalf("selected lead status = %s, want contacted", a.detail.lead.Status)
	}
}

func TestMutationErrorSurfacesOnPanel(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("enter"))
	a.saving = true

	a.Update(mutationErrMsg{err: errors.New("failed to convert lead to opportunity, please try again")})
	if a.saving {
		t.Fatal("error did not clear the busy flag")
	}
	if a.panelErr == "" {
		t.Fatal("panel error is empty after failure")
	}
}

func TestBusyFlagGatesResubmission(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("enter"))
	a.saving = true

	a.Update(keyMsg("ctrl+s"))
	a.Update(keyMsg("esc"))
	if a.detail == nil {
		t.Fatal("keys were handled while a mutation was in flight")
	}
}

func TestConvertFlowAppendsOpportunity(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("enter"))

	before := len(a.opps)
	a.Update(keyMsg("ctrl+o"))
	if !a.saving {
		t.Fatal("convert did not set the busy flag")
	}

	// run the produced command synchronously, as the tea runtime would
	msg := a.convertLeadCmd(a.detail.lead)()
	done, ok := msg.(convertDoneMsg)
	if !ok {
		t.Fatalf("convert produced %T, want convertDoneMsg", msg)
	}
	a.Update(done)

	if len(a.opps) != before+1 {
		t.Fatalf("opportunities = %d, want %d", len(a.opps), before+1)
	}
	if a.detail.lead.Status != crm.StatusQualified {
		t.Fatalf("converted lead status = %s, want qualified", a.detail.lead.Status)
	}
	if !strings.Contains(a.status, done.opp.Name) {
		t.Fatalf("status %q does not announce the new opportunity", a.status)
	}
}

func TestOpportunityViewFiltersAndSort(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("tab"))
	if a.state != viewOpportunities {
		t.Fatalf("state = %s, want opportunities", a.state)
	}

	// default sort createdAt desc: opp-001 (Sep 15) first
	rows := a.visibleOpportunities()
	if rows[0].ID != "opp-001" {
		t.Fatalf("top opportunity = %s, want opp-001", rows[0].ID)
	}

	// cycle amount filter once: nothing is under $10k (min is 25000)
	a.Update(keyMsg("a"))
	if a.oppPrefs.Filters.AmountRange != "0-10000" {
		t.Fatalf("amount range = %q", a.oppPrefs.Filters.AmountRange)
	}
	if n := len(a.visibleOpportunities()); n != 0 {
		t.Fatalf("visible = %d, want 0 under $10k", n)
	}

	a.Update(keyMsg("c"))
	if n := len(a.visibleOpportunities()); n != 7 {
		t.Fatalf("visible after clear = %d, want 7", n)
	}

	if got := a.store.LoadOpportunityPrefs().Filters.AmountRange; got != "" {
		t.Fatalf("persisted amount range = %q, want empty", got)
	}
}

func TestViewRendersWithoutPanicking(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	out := a.View()
	if !strings.Contains(out, "Sarah Johnson") {
		t.Fatalf("lead view missing seeded lead:\n%s", out)
	}

	a.Update(keyMsg("tab"))
	out = a.View()
	if !strings.Contains(out, "Win Rate") {
		t.Fatalf("opportunity view missing stats cards:\n%s", out)
	}

	a.Update(keyMsg("tab"))
	a.Update(keyMsg("enter"))
	out = a.View()
	if !strings.Contains(out, "LD001") {
		t.Fatalf("detail view missing lead id:\n%s", out)
	}
}

func TestSuggestionAppearsInEmptyState(t *testing.T) {
	a := newTestApp(t)
	a.leadPrefs.SearchTerm = "jonson"

	out := a.renderLeadView()
	if !strings.Contains(out, "Sarah Johnson") {
		t.Fatalf("empty state missing suggestion:\n%s", out)
	}
}

func TestFormatCurrency(t *testing.T) {
	amt := func(v float64) *float64 { return &v }
	cases := []struct {
		in   *float64
		want string
	}{
		{amt(75000), "$75,000"},
		{amt(1234567), "$1,234,567"},
		{amt(999), "$999"},
		{nil, "—"},
	}
	for _, tc := range cases {
		if got := formatCurrency("$", tc.in); got != tc.want {
			t.Fatalf("formatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDateZeroTime(t *testing.T) {
	if got := formatDate("Jan 2, 2006", time.Time{}); got != "—" {
		t.Fatalf("zero date = %q, want dash", got)
	}
	d := time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC)
	if got := formatDate("Jan 2, 2006", d); got != "Sep 15, 2024" {
		t.Fatalf("date = %q", got)
	}
}

func TestSourceGlyphFallback(t *testing.T) {
	if got := sourceGlyph("carrier-pigeon"); !strings.Contains(got, "carrier-pigeon") {
		t.Fatalf("unknown source rendered %q, want fallback with tag", got)
	}
}
