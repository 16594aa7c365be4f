package tui

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/chatcomplete/internal/history"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("12")).
			Padding(0, 1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	nickStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	statusLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("236"))
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	// tabs, status bar and input take three rows
	rows := max(m.height-3, 1)
	lines := m.buf.ActiveView().Lines
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for i := 0; i < rows-len(lines); i++ {
		b.WriteString("\n")
	}
	for _, l := range lines {
		b.WriteString(renderLine(l))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m *Model) renderTabs() string {
	active := m.buf.ActiveView()
	tabs := make([]string, 0, len(m.buf.Views()))
	for _, v := range m.buf.Views() {
		if v == active {
			tabs = append(tabs, activeTabStyle.Render(v.Name))
		} else {
			tabs = append(tabs, tabStyle.Render(v.Name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func renderLine(l history.Line) string {
	var b strings.Builder
	if !l.Time.IsZero() {
		b.WriteString(timeStyle.Render(l.Time.Format("15:04")) + " ")
	}
	if l.HasTag(history.TagStatus) || l.Prefix == "" {
		b.WriteString(statusLineStyle.Render("-- " + l.Text))
		return b.String()
	}
	b.WriteString(nickStyle.Render("<"+l.Prefix+">") + " " + l.Text)
	return b.String()
}

func (m *Model) renderStatusBar() string {
	v := m.buf.ActiveView()
	parts := []string{
		v.Name,
		humanize.Comma(int64(len(v.Lines))) + " lines",
	}

	var latest history.Line
	for i := len(v.Lines) - 1; i >= 0; i-- {
		if !v.Lines[i].Time.IsZero() {
			latest = v.Lines[i]
			break
		}
	}
	if !latest.Time.IsZero() {
		parts = append(parts, "last "+humanize.RelTime(latest.Time, m.now(), "ago", "from now"))
	}

	parts = append(parts, fmt.Sprintf("%s/%s", m.cfg.KeyBackward, m.cfg.KeyForward))
	if m.status != "" {
		parts = append(parts, m.status)
	}

	return barStyle.Width(max(m.width, 1)).Render(" " + strings.Join(parts, " │ "))
}
