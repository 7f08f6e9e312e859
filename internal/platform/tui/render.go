package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colonia/internal/sim"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	popupStyle  = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("11")).
			Padding(1, 2)
)

// createProjectTable creates the construction catalog table.
func (m *Model) createProjectTable() table.Model {
	columns := []table.Column{
		{Title: "Project", Width: 16},
		{Title: "Cost", Width: 7},
		{Title: "Upkeep", Width: 7},
		{Title: "Days", Width: 5},
		{Title: "Description", Width: 30},
	}
	if w := m.config.ScreenW - 50; w > 30 {
		columns[4].Width = min(w, 60)
	}

	projects := m.session.City.Projects()
	rows := make([]table.Row, len(projects))
	for i, p := range projects {
		rows[i] = table.Row{
			p.Name,
			fmt.Sprintf("%.0f", p.Cost),
			fmt.Sprintf("%.2f", p.Maintenance),
			fmt.Sprintf("%d", p.BuildTime),
			p.Description,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(4, m.config.ScreenH-16)), // Leave room for header, help, and margins
	)
	if cursor := m.projects.Cursor(); cursor > 0 && cursor < len(rows) {
		t.SetCursor(cursor)
	}

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// render draws the whole colony screen.
func (m Model) render() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(m.renderStats()), " ",
		boxStyle.Render(m.renderCapacities()),
	))
	b.WriteString("\n")

	switch {
	case m.over:
		b.WriteString(popupStyle.Render(badStyle.Render(
			m.printf("ui.game_over", m.printf(m.session.City.Current().Outcome().Key())))))
	case m.session.Popup() != nil:
		b.WriteString(m.renderPopup(m.session.Popup()))
	default:
		b.WriteString(m.renderPanel())
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keyMapper.Keys())))

	return b.String()
}

func (m Model) printf(key string, args ...any) string {
	return m.session.City.Printer().Sprintf(key, args...)
}

// renderHeader draws the city name, the date and the speed.
func (m Model) renderHeader() string {
	c := m.session.City
	speed := m.printf("ui.paused")
	if c.Speed() > 0 {
		speed = fmt.Sprintf("%s %s", m.printf("ui.speed"), strings.Repeat(">", c.Speed()))
	}
	return titleStyle.Render(c.Name()) + "  " + c.Date().Long() + "  " + dimStyle.Render(speed)
}

// renderStats draws the scalar totals.
func (m Model) renderStats() string {
	st := m.session.City.Current()
	delta := fmt.Sprintf("%+d", st.PopulationDelta)
	if st.PopulationDelta < 0 {
		delta = badStyle.Render(delta)
	} else if st.PopulationDelta > 0 {
		delta = goodStyle.Render(delta)
	}
	food := fmt.Sprintf("%+.2f", st.FoodProduction)
	if st.FoodProduction < 0 {
		food = badStyle.Render(food)
	}

	lines := []string{
		fmt.Sprintf("%-11s %d (%s)", m.printf("ui.population"), st.Population, delta),
		fmt.Sprintf("%-11s %.2f (-%.2f)", m.printf("ui.gold"), st.Gold, st.GoldUsage),
		fmt.Sprintf("%-11s %s", m.printf("ui.food"), food),
		fmt.Sprintf("%-11s %d / %d", m.printf("ui.land"), st.LandAreaUsed, st.LandArea),
	}
	return strings.Join(lines, "\n")
}

// renderCapacities draws usage against capacity for each power.
func (m Model) renderCapacities() string {
	st := m.session.City.Current()
	lines := []string{titleStyle.Render(m.printf("ui.capacities"))}
	for _, c := range []sim.Capacity{sim.Political, sim.Military, sim.Diplomatic} {
		used, total := st.UsageOf(c), st.CapacityOf(c)
		line := fmt.Sprintf("%-10s %s %d/%d", m.printf(c.Key()), bar(used, total), used, total)
		if used > total {
			line = badStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// bar draws one cell per point of capacity, filled for each point in use.
func bar(used, total int) string {
	cells := max(total, used)
	if cells == 0 {
		return "-"
	}
	return strings.Repeat("■", min(used, cells)) + strings.Repeat("□", cells-min(used, cells))
}

// renderPanel draws the active panel.
func (m Model) renderPanel() string {
	switch m.panel {
	case PanelConstructions:
		return m.renderConstructions()
	case PanelLaws:
		return m.renderLaws()
	case PanelEvents:
		return m.renderEvents()
	case PanelHelp:
		return m.renderHelp()
	default:
		return m.renderDashboard()
	}
}

// renderDashboard lists visible effects and the colony's buildings.
func (m Model) renderDashboard() string {
	var effects strings.Builder
	effects.WriteString(titleStyle.Render(m.printf("ui.effects")))
	for _, e := range m.session.City.Effects() {
		if e.Hidden() {
			continue
		}
		effects.WriteString("\n" + e.Name)
		if e.Description != "" {
			effects.WriteString("\n  " + dimStyle.Render(e.Description))
		}
	}

	var sites strings.Builder
	sites.WriteString(titleStyle.Render(m.printf("ui.constructions")))
	for i, con := range m.session.City.Constructions() {
		line := fmt.Sprintf("%-14s %-12s", con.Name, con.Status())
		if con.Active != nil && con.Active.Name != con.Name {
			line += " " + dimStyle.Render(con.Active.Name)
		}
		if i == m.site {
			line = selectedStyle.Render(line)
		}
		sites.WriteString("\n" + line)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(effects.String()), " ",
		boxStyle.Render(sites.String()),
	)
}

// renderConstructions shows the catalog table and the selected variant.
func (m Model) renderConstructions() string {
	var b strings.Builder
	b.WriteString(boxStyle.Render(m.projects.View()))
	if p := m.selectedProject(); p != nil && m.variant < len(p.Variants) {
		v := p.Variants[m.variant]
		b.WriteString(fmt.Sprintf("\n< %s > %s", titleStyle.Render(v.Name), dimStyle.Render(v.Description)))
	}
	return b.String()
}

// renderLaws lists the laws and their state.
func (m Model) renderLaws() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.printf("ui.laws")))
	if !m.session.City.Current().LawsEnabled {
		b.WriteString("\n" + dimStyle.Render(m.printf("ui.laws_locked")))
	}
	for i, l := range m.session.City.Laws() {
		line := fmt.Sprintf("%-20s %s %d for %d days", l.Name, m.printf(l.Capacity.Key()), l.Cost, l.CostDuration)
		if l.Enacted {
			line += " " + goodStyle.Render(m.printf("ui.enacted", l.EnactedOn.Short()))
		}
		if i == m.law {
			line = selectedStyle.Render(line)
		}
		b.WriteString("\n" + line)
		if i == m.law && l.Description != "" {
			b.WriteString("\n  " + dimStyle.Render(l.Description))
		}
	}
	return boxStyle.Render(b.String())
}

// renderEvents shows the lines read from the event log.
func (m Model) renderEvents() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.printf("ui.events")))
	if len(m.events) == 0 {
		b.WriteString("\n" + dimStyle.Render(m.printf("ui.no_events")))
	}
	for _, line := range m.events {
		b.WriteString("\n" + line)
	}
	return boxStyle.Render(b.String())
}

// renderHelp shows the help text of the project under the cursor.
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.printf("ui.help")))
	if p := m.selectedProject(); p != nil {
		b.WriteString("\n" + p.Name)
		text := p.Help
		if text == "" {
			text = p.Description
		}
		b.WriteString("\n" + lipgloss.NewStyle().Width(max(20, m.config.ScreenW-6)).Render(text))
	}
	return boxStyle.Render(b.String())
}

// renderPopup draws the decision modal.
func (m Model) renderPopup(p *sim.Popup) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(max(20, min(70, m.config.ScreenW-10))).Render(p.Description))
	b.WriteString("\n")
	for i, ch := range p.Choices {
		line := fmt.Sprintf("%d. %s", i+1, ch.Label)
		if i == m.choice {
			line = selectedStyle.Render(line)
			if ch.Hover != "" {
				line += " " + dimStyle.Render(ch.Hover)
			}
		}
		b.WriteString("\n" + line)
	}
	return popupStyle.Render(b.String())
}
