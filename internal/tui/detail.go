package tui

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pipedeck/internal/crm"
)

// Editable field order in the detail panel. Status is a virtual field
// cycled with left/right rather than typed.
const (
	fieldName = iota
	fieldCompany
	fieldEmail
	fieldScore
	fieldStatus
	fieldCount
)

var fieldLabels = [...]string{"Name", "Company", "Email", "Score", "Status"}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// detailState holds the open lead and its edit buffers. Validation errors
// are per-field and synchronous; they never reach the service.
type detailState struct {
	lead      crm.Lead
	inputs    [4]textinput.Model
	status    crm.LeadStatus
	focus     int
	fieldErrs map[int]string
}

func (a *App) openDetail(lead crm.Lead) {
	d := &detailState{lead: lead, status: lead.Status, fieldErrs: map[int]string{}}
	for i := range d.inputs {
		in := textinput.New()
		in.CharLimit = 120
		d.inputs[i] = in
	}
	d.inputs[fieldScore].CharLimit = 3
	d.resetInputs()
	d.inputs[fieldName].Focus()
	a.detail = d
	a.panelErr = ""
	a.status = ""
}

func (a *App) closeDetail() {
	a.detail = nil
	a.panelErr = ""
}

// setLead refreshes the panel after a successful save or convert.
func (d *detailState) setLead(lead crm.Lead) {
	d.lead = lead
	d.status = lead.Status
	d.resetInputs()
}

func (d *detailState) resetInputs() {
	d.inputs[fieldName].SetValue(d.lead.Name)
	d.inputs[fieldCompany].SetValue(d.lead.Company)
	d.inputs[fieldEmail].SetValue(d.lead.Email)
	d.inputs[fieldScore].SetValue(strconv.Itoa(d.lead.Score))
}

func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := a.detail
	switch msg.String() {
	case "esc":
		a.closeDetail()
		return a, nil
	case "tab", "down":
		d.moveFocus(1)
		return a, nil
	case "shift+tab", "up":
		d.moveFocus(-1)
		return a, nil
	case "left", "right":
		if d.focus == fieldStatus {
			d.status = cycleStatus(d.status, msg.String() == "right")
			return a, nil
		}
	case "ctrl+s":
		return a.submitDetail()
	case "ctrl+o":
		a.saving = true
		a.panelErr = ""
		return a, a.convertLeadCmd(d.lead)
	}

	if d.focus == fieldStatus {
		return a, nil
	}
	var cmd tea.Cmd
	d.inputs[d.focus], cmd = d.inputs[d.focus].Update(msg)
	// typing in a field clears its stale validation error
	delete(d.fieldErrs, d.focus)
	return a, cmd
}

// submitDetail validates the edit buffers and, if clean, starts the
// simulated save.
func (a *App) submitDetail() (tea.Model, tea.Cmd) {
	d := a.detail
	updated, errs := d.editedLead()
	if len(errs) > 0 {
		d.fieldErrs = errs
		return a, nil
	}
	d.fieldErrs = map[int]string{}
	a.saving = true
	a.panelErr = ""
	return a, a.saveLeadCmd(updated)
}

// editedLead builds the lead from the edit buffers, reporting per-field
// validation errors.
func (d *detailState) editedLead() (crm.Lead, map[int]string) {
	errs := map[int]string{}

	lead := d.lead
	lead.Name = strings.TrimSpace(d.inputs[fieldName].Value())
	lead.Company = strings.TrimSpace(d.inputs[fieldCompany].Value())
	lead.Email = strings.TrimSpace(d.inputs[fieldEmail].Value())
	lead.Status = d.status

	if lead.Name == "" {
		errs[fieldName] = "name is required"
	}
	if !emailPattern.MatchString(lead.Email) {
		errs[fieldEmail] = "enter a valid email address"
	}
	score, err := strconv.Atoi(strings.TrimSpace(d.inputs[fieldScore].Value()))
	if err != nil || score < 0 || score > 100 {
		errs[fieldScore] = "score must be between 0 and 100"
	} else {
		lead.Score = score
	}
	return lead, errs
}

func (d *detailState) moveFocus(dir int) {
	if d.focus < fieldStatus {
		d.inputs[d.focus].Blur()
	}
	d.focus = (d.focus + dir + fieldCount) % fieldCount
	if d.focus < fieldStatus {
		d.inputs[d.focus].Focus()
	}
}

func cycleStatus(s crm.LeadStatus, forward bool) crm.LeadStatus {
	statuses := crm.LeadStatuses()
	for i, v := range statuses {
		if v == s {
			if forward {
				return statuses[(i+1)%len(statuses)]
			}
			return statuses[(i-1+len(statuses))%len(statuses)]
		}
	}
	return statuses[0]
}
