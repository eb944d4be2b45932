package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pipedeck/internal/config"
	"pipedeck/internal/crm"
	"pipedeck/internal/prefs"
	"pipedeck/internal/service"
)

type view string

const (
	viewLeads         view = "leads"
	viewOpportunities view = "opportunities"
)

// App ties the two dashboard views over the mutation service. All state
// changes happen on the tea update loop; the service is only touched from
// command closures.
type App struct {
	ctx   context.Context
	svc   *service.MutationService
	store *prefs.Store
	ui    config.UIConfig
	keys  keyMap
	help  help.Model

	state  view
	width  int
	height int

	loading bool
	loadErr string
	leads   []crm.Lead
	opps    []crm.Opportunity

	// lead view
	leadPrefs   prefs.LeadPrefs
	searchInput textinput.Model
	searching   bool
	leadCursor  int

	// opportunity view
	oppPrefs  prefs.OpportunityPrefs
	oppCursor int

	// detail panel; nil when closed
	detail *detailState

	saving   bool
	panelErr string
	status   string
}

// New builds the app with preferences restored from the store.
func New(ctx context.Context, ui config.UIConfig, svc *service.MutationService, store *prefs.Store) *App {
	input := textinput.New()
	input.Prompt = "search: "
	input.Placeholder = "name or company"
	input.CharLimit = 80

	a := &App{
		ctx:         ctx,
		svc:         svc,
		store:       store,
		ui:          ui,
		keys:        newKeyMap(),
		help:        help.New(),
		state:       viewLeads,
		loading:     true,
		leadPrefs:   store.LoadLeadPrefs(),
		oppPrefs:    store.LoadOpportunityPrefs(),
		searchInput: input,
	}
	a.searchInput.SetValue(a.leadPrefs.SearchTerm)
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(), textinput.Blink)
}

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.svc.Load(a.ctx); err != nil {
			return loadErrMsg{err}
		}
		return loadDoneMsg{leads: a.svc.Leads(), opps: a.svc.Opportunities()}
	}
}

func (a *App) saveLeadCmd(lead crm.Lead) tea.Cmd {
	return func() tea.Msg {
		if err := a.svc.SaveLead(a.ctx, lead); err != nil {
			return mutationErrMsg{err}
		}
		return leadSavedMsg{lead: lead}
	}
}

func (a *App) convertLeadCmd(lead crm.Lead) tea.Cmd {
	return func() tea.Msg {
		updated, opp, err := a.svc.ConvertLead(a.ctx, lead)
		if err != nil {
			return mutationErrMsg{err}
		}
		return convertDoneMsg{lead: updated, opp: opp}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.help.Width = m.Width
		return a, nil

	case loadDoneMsg:
		a.loading = false
		a.loadErr = ""
		a.leads = m.leads
		a.opps = m.opps
		a.clampCursors()
		return a, nil

	case loadErrMsg:
		a.loading = false
		a.loadErr = "failed to load data: " + m.err.Error()
		return a, nil

	case leadSavedMsg:
		a.saving = false
		a.panelErr = ""
		a.leads = a.svc.Leads()
		if a.detail != nil {
			a.detail.setLead(m.lead)
		}
		a.status = "Saved " + m.lead.Name + "."
		return a, nil

	case convertDoneMsg:
		a.saving = false
		a.panelErr = ""
		a.leads = a.svc.Leads()
		a.opps = a.svc.Opportunities()
		if a.detail != nil {
			a.detail.setLead(m.lead)
		}
		a.status = "Converted to opportunity: " + m.opp.Name
		return a, nil

	case mutationErrMsg:
		a.saving = false
		a.panelErr = m.err.Error()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A mutation in flight gates resubmission; quit still works.
	if a.saving && msg.String() != "q" && msg.String() != "ctrl+c" {
		return a, nil
	}
	if a.detail != nil {
		return a.updateDetail(msg)
	}
	if a.searching {
		return a.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.NextView):
		if a.state == viewLeads {
			a.state = viewOpportunities
		} else {
			a.state = viewLeads
		}
		a.status = ""
		return a, nil
	}

	if a.state == viewLeads {
		return a.handleLeadKey(msg)
	}
	return a.handleOpportunityKey(msg)
}

func (a *App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	if term := a.searchInput.Value(); term != a.leadPrefs.SearchTerm {
		a.leadPrefs.SearchTerm = term
		a.leadCursor = 0
		a.persistLeadPrefs()
	}
	return a, cmd
}

func (a *App) handleLeadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.searchInput.Focus()
		return a, textinput.Blink
	case key.Matches(msg, a.keys.Filter):
		a.leadPrefs.StatusFilter = nextStatusFilter(a.leadPrefs.StatusFilter)
		a.leadCursor = 0
		a.persistLeadPrefs()
	case key.Matches(msg, a.keys.SortField):
		a.leadPrefs.SortBy = nextLeadSortField(a.leadPrefs.SortBy)
		a.persistLeadPrefs()
	case key.Matches(msg, a.keys.SortDir):
		a.leadPrefs.SortOrder = flipDirection(a.leadPrefs.SortOrder)
		a.persistLeadPrefs()
	case key.Matches(msg, a.keys.Clear):
		a.leadPrefs.SearchTerm = ""
		a.leadPrefs.StatusFilter = "all"
		a.searchInput.SetValue("")
		a.leadCursor = 0
		a.persistLeadPrefs()
	case key.Matches(msg, a.keys.UpDown):
		a.moveCursor(msg, &a.leadCursor, len(a.visibleLeads()))
	case key.Matches(msg, a.keys.Enter):
		rows := a.visibleLeads()
		if a.leadCursor < len(rows) {
			a.openDetail(rows[a.leadCursor])
		}
	}
	return a, nil
}

func (a *App) handleOpportunityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Filter):
		a.oppPrefs.Filters.Stage = nextStageFilter(a.oppPrefs.Filters.Stage)
		a.oppCursor = 0
		a.persistOppPrefs()
	case key.Matches(msg, a.keys.Amount):
		a.oppPrefs.Filters.AmountRange = nextAmountRange(a.oppPrefs.Filters.AmountRange)
		a.oppCursor = 0
		a.persistOppPrefs()
	case key.Matches(msg, a.keys.SortField):
		a.oppPrefs.Sort.Field = nextOppSortField(a.oppPrefs.Sort.Field)
		a.persistOppPrefs()
	case key.Matches(msg, a.keys.SortDir):
		a.oppPrefs.Sort.Direction = flipDirection(a.oppPrefs.Sort.Direction)
		a.persistOppPrefs()
	case key.Matches(msg, a.keys.Clear):
		a.oppPrefs.Filters = crm.OpportunityFilters{}
		a.oppCursor = 0
		a.persistOppPrefs()
	case key.Matches(msg, a.keys.UpDown):
		a.moveCursor(msg, &a.oppCursor, len(a.visibleOpportunities()))
	}
	return a, nil
}

func (a *App) moveCursor(msg tea.KeyMsg, cursor *int, length int) {
	switch msg.String() {
	case "up", "k":
		if *cursor > 0 {
			*cursor--
		}
	case "down", "j":
		if *cursor < length-1 {
			*cursor++
		}
	}
}

func (a *App) clampCursors() {
	if n := len(a.visibleLeads()); a.leadCursor >= n {
		a.leadCursor = 0
	}
	if n := len(a.visibleOpportunities()); a.oppCursor >= n {
		a.oppCursor = 0
	}
}

// visibleLeads is the filtered+sorted projection the lead table renders.
func (a *App) visibleLeads() []crm.Lead {
	filtered := crm.FilterLeads(a.leads, a.leadPrefs.SearchTerm, a.leadPrefs.StatusFilter)
	return crm.SortLeads(filtered, a.leadPrefs.SortBy, a.leadPrefs.SortOrder)
}

// visibleOpportunities is the filtered+sorted projection the opportunity
// table renders.
func (a *App) visibleOpportunities() []crm.Opportunity {
	filtered := crm.FilterOpportunities(a.opps, a.oppPrefs.Filters.Stage, a.oppPrefs.Filters.AmountRange)
	return crm.SortOpportunities(filtered, a.oppPrefs.Sort.Field, a.oppPrefs.Sort.Direction)
}

// Preference writes are best-effort; a failed write never interrupts the
// session.
func (a *App) persistLeadPrefs() { _ = a.store.SaveLeadPrefs(a.leadPrefs) }
func (a *App) persistOppPrefs()  { _ = a.store.SaveOpportunityPrefs(a.oppPrefs) }

// ---------------------------------------------------------------------------
// Filter/sort cycling
// ---------------------------------------------------------------------------

func nextStatusFilter(current string) string {
	order := []string{"all"}
	for _, s := range crm.LeadStatuses() {
		order = append(order, string(s))
	}
	return nextIn(order, current)
}

func nextStageFilter(current string) string {
	order := []string{""}
	for _, s := range crm.Stages() {
		order = append(order, string(s))
	}
	return nextIn(order, current)
}

func nextAmountRange(current string) string {
	return nextIn(crm.AmountRanges(), current)
}

func nextLeadSortField(current string) string {
	return nextIn([]string{"score", "name", "company"}, current)
}

func nextOppSortField(current string) string {
	return nextIn([]string{"createdAt", "name", "stage", "amount", "accountName"}, current)
}

func flipDirection(d string) string {
	if d == "asc" {
		return "desc"
	}
	return "asc"
}

func nextIn(order []string, current string) string {
	for i, v := range order {
		if v == current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}
