package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pipedeck/internal/crm"
)

func (a *App) View() string {
	if a.loading {
		return "\n  loading pipeline data..."
	}
	if a.loadErr != "" {
		return "\n  " + errStyle.Render(a.loadErr) + "\n\n  " + dimStyle.Render("press q to quit")
	}

	var body string
	if a.detail != nil {
		body = a.renderDetail()
	} else if a.state == viewLeads {
		body = a.renderLeadView()
	} else {
		body = a.renderOpportunityView()
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	if a.status != "" {
		b.WriteString(okStyle.Render(a.status) + "\n")
	}
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) renderTabs() string {
	leads := "Leads"
	opps := "Opportunities"
	if a.state == viewLeads {
		leads = activeChip.Render(leads)
		opps = inactiveChip.Render(opps)
	} else {
		leads = inactiveChip.Render(leads)
		opps = activeChip.Render(opps)
	}
	return titleStyle.Render("pipedeck") + "  " + leads + " " + opps
}

// ---------------------------------------------------------------------------
// Lead view
// ---------------------------------------------------------------------------

func (a *App) renderLeadView() string {
	var b strings.Builder

	b.WriteString(a.renderLeadStats())
	b.WriteString("\n\n")
	b.WriteString(a.renderSearchAndFilters())
	b.WriteString("\n\n")

	rows := a.visibleLeads()
	switch {
	case len(a.leads) == 0:
		b.WriteString(dimStyle.Render("No leads yet. New leads will appear here."))
	case len(rows) == 0:
		b.WriteString(a.renderNoResults())
	default:
		b.WriteString(a.renderLeadTable(rows))
	}
	return b.String()
}

func (a *App) renderLeadStats() string {
	stats := crm.ComputeLeadStats(a.leads)
	cards := []string{
		card("Total Leads", fmt.Sprintf("%d", stats.Total)),
		card("Qualified", fmt.Sprintf("%d", stats.ByStatus[crm.StatusQualified])),
		card("High Priority", fmt.Sprintf("%d", stats.HighPriority)),
		card("Avg Score", formatScore(stats.AverageScore)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (a *App) renderSearchAndFilters() string {
	var b strings.Builder
	if a.searching {
		b.WriteString(a.searchInput.View())
	} else if term := a.leadPrefs.SearchTerm; term != "" {
		b.WriteString("search: " + term + dimStyle.Render("  (/ to edit)"))
	} else {
		b.WriteString(dimStyle.Render("press / to search"))
	}
	b.WriteString("\n")

	counts := crm.CountLeads(a.leads, a.leadPrefs.SearchTerm)
	chips := []string{chip(fmt.Sprintf("all %d", counts.All), a.leadPrefs.StatusFilter == "all")}
	for _, s := range crm.LeadStatuses() {
		label := fmt.Sprintf("%s %d", s, counts.ByStatus[s])
		chips = append(chips, chip(label, a.leadPrefs.StatusFilter == string(s)))
	}
	b.WriteString(strings.Join(chips, " "))
	return b.String()
}

func (a *App) renderNoResults() string {
	msg := "No leads match the current filters."
	if hint := crm.SuggestSearch(a.leads, a.leadPrefs.SearchTerm); hint != "" {
		msg += " Did you mean " + titleStyle.Render(hint) + "?"
	}
	return dimStyle.Render(msg) + "\n" + dimStyle.Render("press c to clear filters")
}

func (a *App) renderLeadTable(rows []crm.Lead) string {
	var b strings.Builder
	header := fmt.Sprintf("  %-22s %-26s %-12s %7s  %s",
		sortHeader("NAME", "name", a.leadPrefs.SortBy, a.leadPrefs.SortOrder),
		sortHeader("COMPANY", "company", a.leadPrefs.SortBy, a.leadPrefs.SortOrder),
		"SOURCE",
		sortHeader("SCORE", "score", a.leadPrefs.SortBy, a.leadPrefs.SortOrder),
		"STATUS")
	b.WriteString(headerRowStyle.Render(header))
	b.WriteString("\n")

	for i, l := range rows {
		line := fmt.Sprintf("  %-22s %-26s %-12s %7s  %s",
			truncate(l.Name, 22), truncate(l.Company, 26), sourceGlyph(l.Source),
			formatScore(l.Score), badge(string(l.Status), statusColor(l.Status)))
		if i == a.leadCursor {
			line = cursorRowStyle.Render(fmt.Sprintf("> %-22s %-26s %-12s %7s  %s",
				truncate(l.Name, 22), truncate(l.Company, 26), sourceGlyph(l.Source),
				formatScore(l.Score), l.Status))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Opportunity view
// ---------------------------------------------------------------------------

func (a *App) renderOpportunityView() string {
	var b strings.Builder

	rows := a.visibleOpportunities()
	b.WriteString(a.renderOpportunityStats(rows))
	b.WriteString("\n\n")
	b.WriteString(a.renderOpportunityFilters(len(rows)))
	b.WriteString("\n\n")

	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("No opportunities match the current filters."))
		b.WriteString("\n" + dimStyle.Render("press c to clear filters"))
	} else {
		b.WriteString(a.renderOpportunityTable(rows))
	}
	return b.String()
}

func (a *App) renderOpportunityStats(rows []crm.Opportunity) string {
	stats := crm.ComputeOpportunityStats(rows)
	total := stats.TotalValue
	cards := []string{
		card("Opportunities", fmt.Sprintf("%d", stats.Total)),
		card("Pipeline Value", formatCurrency(a.ui.CurrencySymbol, &total)),
		card("Won", fmt.Sprintf("%d", stats.WonCount)),
		card("Win Rate", fmt.Sprintf("%.1f%%", stats.WinRate)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (a *App) renderOpportunityFilters(count int) string {
	stage := a.oppPrefs.Filters.Stage
	if stage == "" {
		stage = "all stages"
	}
	amount := amountRangeLabel(a.oppPrefs.Filters.AmountRange)
	return fmt.Sprintf("%s  %s  %s",
		chip("stage: "+stage, a.oppPrefs.Filters.Stage != ""),
		chip("amount: "+amount, a.oppPrefs.Filters.AmountRange != ""),
		dimStyle.Render(fmt.Sprintf("%d shown", count)))
}

func amountRangeLabel(bucket string) string {
	switch bucket {
	case "0-10000":
		return "under $10,000"
	case "10000-50000":
		return "$10,000 - $50,000"
	case "50000-100000":
		return "$50,000 - $100,000"
	case "100000+":
		return "over $100,000"
	default:
		return "all amounts"
	}
}

func (a *App) renderOpportunityTable(rows []crm.Opportunity) string {
	var b strings.Builder
	header := fmt.Sprintf("  %-38s %-14s %10s  %-24s %s",
		sortHeader("NAME", "name", a.oppPrefs.Sort.Field, a.oppPrefs.Sort.Direction),
		sortHeader("STAGE", "stage", a.oppPrefs.Sort.Field, a.oppPrefs.Sort.Direction),
		sortHeader("AMOUNT", "amount", a.oppPrefs.Sort.Field, a.oppPrefs.Sort.Direction),
		sortHeader("ACCOUNT", "accountName", a.oppPrefs.Sort.Field, a.oppPrefs.Sort.Direction),
		sortHeader("CREATED", "createdAt", a.oppPrefs.Sort.Field, a.oppPrefs.Sort.Direction))
	b.WriteString(headerRowStyle.Render(header))
	b.WriteString("\n")

	for i, o := range rows {
		line := fmt.Sprintf("  %-38s %-14s %10s  %-24s %s",
			truncate(o.Name, 38), badge(string(o.Stage), stageColor(o.Stage)),
			formatCurrency(a.ui.CurrencySymbol, o.Amount),
			truncate(o.AccountName, 24), formatDate(a.ui.DateFormat, o.CreatedAt))
		if i == a.oppCursor {
			line = cursorRowStyle.Render(fmt.Sprintf("> %-38s %-14s %10s  %-24s %s",
				truncate(o.Name, 38), o.Stage,
				formatCurrency(a.ui.CurrencySymbol, o.Amount),
				truncate(o.AccountName, 24), formatDate(a.ui.DateFormat, o.CreatedAt)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Detail panel
// ---------------------------------------------------------------------------

func (a *App) renderDetail() string {
	d := a.detail
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lead " + d.lead.ID))
	b.WriteString("\n\n")

	if a.panelErr != "" {
		b.WriteString(errStyle.Render(a.panelErr))
		b.WriteString("\n\n")
	}

	for i := 0; i < fieldStatus; i++ {
		marker := "  "
		if d.focus == i {
			marker = cursorRowStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%-8s %s\n", marker, fieldLabels[i], d.inputs[i].View()))
		if msg, ok := d.fieldErrs[i]; ok {
			b.WriteString("           " + errStyle.Render(msg) + "\n")
		}
	}

	marker := "  "
	if d.focus == fieldStatus {
		marker = cursorRowStyle.Render("> ")
	}
	b.WriteString(fmt.Sprintf("%s%-8s %s %s\n", marker, fieldLabels[fieldStatus],
		badge(string(d.status), statusColor(d.status)), dimStyle.Render("(←/→ to change)")))

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("source: ") + sourceGlyph(d.lead.Source))
	b.WriteString("\n\n")
	if a.saving {
		b.WriteString(okStyle.Render("saving..."))
	} else {
		b.WriteString(dimStyle.Render("ctrl+s save · ctrl+o convert to opportunity · esc close"))
	}

	return modalStyle.Render(b.String())
}

// ---------------------------------------------------------------------------
// Small render helpers
// ---------------------------------------------------------------------------

func card(label, value string) string {
	content := dimStyle.Render(label) + "\n" + lipgloss.NewStyle().Bold(true).Render(value)
	return cardStyle.Render(content)
}

func chip(label string, active bool) string {
	if active {
		return activeChip.Render(label)
	}
	return inactiveChip.Render(label)
}

func sortHeader(label, field, activeField, direction string) string {
	if field != activeField {
		return label
	}
	if direction == "asc" {
		return label + " ↑"
	}
	return label + " ↓"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
