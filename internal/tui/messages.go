package tui

import "pipedeck/internal/crm"

// Messages emitted by command closures back into the update loop.

type loadDoneMsg struct {
	leads []crm.Lead
	opps  []crm.Opportunity
}

type loadErrMsg struct{ err error }

type leadSavedMsg struct{ lead crm.Lead }

type convertDoneMsg struct {
	lead crm.Lead
	opp  crm.Opportunity
}

// mutationErrMsg carries a failed save/convert for the panel error line.
type mutationErrMsg struct{ err error }
