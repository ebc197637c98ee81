package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Tiliavir/productivity-journal/internal/report"
	"github.com/Tiliavir/productivity-journal/internal/summary"
	"github.com/Tiliavir/productivity-journal/internal/timecalc"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("69"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// bandColors colors the score by its band.
var bandColors = map[summary.Band]lipgloss.Color{
	summary.Excellent: lipgloss.Color("82"),
	summary.Good:      lipgloss.Color("69"),
	summary.Average:   lipgloss.Color("214"),
	summary.Low:       lipgloss.Color("196"),
}

func scoreStyle(score float64) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(bandColors[summary.BandFor(score)])
}

func (m *Model) View() string {
	if m.screen == screenAnalysis {
		return m.analysisView()
	}
	return m.journalView()
}

func (m *Model) journalView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Productivity Journal"))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	if len(m.state.Entries) == 0 {
		sb.WriteString(helpStyle.Render("No entries yet. Type a task and press Enter."))
	} else {
		var list strings.Builder
		for i, e := range m.state.Entries {
			if i > 0 {
				list.WriteString("\n")
			}
			fmt.Fprintf(&list, "%s  %s", timeStyle.Render(e.StartTime.Format("15:04")), e.Task)
			switch {
			case e.IsOpen():
				list.WriteString("  " + runningStyle.Render(timecalc.FormatDurationHHMMSS(m.now().Sub(e.StartTime))+" ●"))
			case e.Duration != nil:
				list.WriteString("  " + timecalc.FormatMinutes(*e.Duration))
			}
			if e.Category != nil {
				list.WriteString("  " + categoryStyle.Render(e.Category.Name))
			}
		}
		sb.WriteString(boxStyle.Render(list.String()))
	}

	sb.WriteString("\n\n")
	if m.status != "" {
		sb.WriteString(statusStyle.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("Add: Enter | Analyze: Ctrl+A | Quit: Ctrl+C"))
	return sb.String()
}

func (m *Model) analysisView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Day Analysis"))
	sb.WriteString("\n\n")

	a := m.analysis
	fmt.Fprintf(&sb, "Productivity score: %s (%s)\n\n",
		scoreStyle(a.OverallScore).Render(report.Percent(a.OverallScore)),
		summary.BandFor(a.OverallScore))

	if len(a.Breakdown) > 0 {
		nameWidth := 0
		for _, b := range a.Breakdown {
			nameWidth = max(nameWidth, len(b.Category.Name))
		}
		var rows strings.Builder
		for i, b := range a.Breakdown {
			if i > 0 {
				rows.WriteString("\n")
			}
			fmt.Fprintf(&rows, "%-*s  %8s  %3.0f%%",
				nameWidth, b.Category.Name, timecalc.FormatMinutes(b.TotalMinutes), b.Percentage)
		}
		sb.WriteString(boxStyle.Render(rows.String()))
		sb.WriteString("\n\n")
	}

	sb.WriteString(wordwrap.String(a.Summary, m.wrapWidth))
	sb.WriteString("\n\n")
	if m.status != "" {
		sb.WriteString(statusStyle.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("Copy summary: c | Back: Esc | Quit: Ctrl+C"))
	return sb.String()
}
