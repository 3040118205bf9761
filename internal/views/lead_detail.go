package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"leadscope/internal/models"
	"leadscope/internal/utils"
)

// renderDetail draws the expanded panel for one contact: identity,
// score breakdown, engagement context and the editable notes field.
func (m *LeadsModel) renderDetail(c *models.Contact) string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Overlay1))
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(utils.Colours.Text))

	line := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value)
	}

	lastEngaged := "never"
	if c.LastEngagedAt != nil {
		lastEngaged = utils.FormatRelativeTime(*c.LastEngagedAt, time.Now())
	}

	lastContact := "-"
	if c.LastContactDate != nil {
		lastContact = *c.LastContactDate
	}

	rows := []string{
		line("Email", c.Email),
		line("LinkedIn", c.LinkedInURL),
		line("Scores", fmt.Sprintf("firmographic %d · title %d · engagement %d · total %d",
			c.FirmographicScore, c.TitleScore, c.EngagementScore, c.TotalScore)),
		line("Engaged with", strings.Join(c.EngagedWith, ", ")),
		line("Last engaged", lastEngaged),
		line("Last contact", lastContact),
	}

	if m.editingNotes {
		rows = append(rows,
			labelStyle.Render("Notes (esc to save)"),
			m.notesInput.View(),
		)
	} else {
		rows = append(rows, line("Notes", c.Notes))
		rows = append(rows, labelStyle.Render("[n] edit notes  [c] copy context  [enter] collapse"))
	}

	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(utils.Colours.Surface1)).
		Padding(0, 1)

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(utils.Colours.Blue)).
		Render(fmt.Sprintf("%s — %s @ %s", c.Name, c.Title, c.CompanyName))

	return panelStyle.Render(title + "\n" + strings.Join(rows, "\n"))
}
