package status

import (
	"fmt"
	"strings"

	"github.com/NikitaCOEUR/chatcomplete/internal/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	b.WriteString("\n\n")

	b.WriteString(renderConfig(data))
	b.WriteString("\n\n")

	b.WriteString(renderCompletion(data.Config))
	b.WriteString("\n\n")

	b.WriteString(renderLogs(data))

	return b.String()
}

func renderConfig(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration:") + "\n")

	if data.ConfigPath == "" {
		b.WriteString("   " + keyStyle.Render("File: ") + subtleStyle.Render("none, using built-in defaults") + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("File: ") + valueStyle.Render(data.ConfigPath) +
			subtleStyle.Render(fmt.Sprintf(" (%s)", data.ConfigSource)) + "\n")
		overrides := subtleStyle.Render("none")
		if len(data.Overrides) > 0 {
			overrides = valueStyle.Render(strings.Join(data.Overrides, ", "))
		}
		b.WriteString("   " + keyStyle.Render("Overrides: ") + overrides + "\n")
	}

	if len(data.Problems) == 0 {
		b.WriteString("   " + keyStyle.Render("Valid: ") + successStyle.Render("✓"))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Valid: ") + errorStyle.Render(fmt.Sprintf("✗ %d problem(s)", len(data.Problems))))
	for _, p := range data.Problems {
		b.WriteString("\n     " + warningStyle.Render(p.Field) + " " + subtleStyle.Render(p.Message))
	}
	return b.String()
}

func renderCompletion(cfg *config.Config) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔤 Completion:") + "\n")

	row := func(key, value string) {
		b.WriteString("   " + keyStyle.Render(key+": ") + valueStyle.Render(value) + "\n")
	}

	row("Word start", cfg.WordStart)
	row("Continuation", cfg.WordContinuation)

	raw := "no limit"
	if cfg.MaxRawLines > 0 {
		raw = humanize.Comma(int64(cfg.MaxRawLines))
	}
	row("Lines", fmt.Sprintf("%s (at most %s examined)", humanize.Comma(int64(cfg.Lines)), raw))

	if cfg.MessagesOnly {
		row("Messages only", fmt.Sprintf("yes (tag %q)", cfg.MessageTag))
	} else {
		row("Messages only", "no")
	}

	row("Keys", fmt.Sprintf("%s / %s (reverse)", cfg.KeyBackward, cfg.KeyForward))
	row("Fallback", fmt.Sprintf("%s / %s", orNone(cfg.FallbackBackward), orNone(cfg.FallbackForward)))

	notice := cfg.NoticeTemplate
	if strings.TrimSpace(notice) == "" {
		notice = "disabled"
	}
	b.WriteString("   " + keyStyle.Render("Notice: ") + subtleStyle.Render(truncateString(notice, 60)))

	return b.String()
}

func renderLogs(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("💬 Logs:") + "\n")

	if len(data.Logs) == 0 {
		b.WriteString("   " + subtleStyle.Render("No log files given"))
		return b.String()
	}

	for i, l := range data.Logs {
		if l.Err != "" {
			b.WriteString(fmt.Sprintf("   %d. %s %s\n", i+1, valueStyle.Render(l.Path), errorStyle.Render("✗")))
			b.WriteString("      " + subtleStyle.Render(l.Err) + "\n")
			continue
		}

		b.WriteString(fmt.Sprintf("   %d. %s %s %s\n",
			i+1,
			valueStyle.Render(l.Path),
			successStyle.Render("✓"),
			subtleStyle.Render("("+humanize.Bytes(uint64(l.Size))+")")))

		b.WriteString(fmt.Sprintf("      %s %s %s %s %s %s\n",
			keyStyle.Render("lines:"), valueStyle.Render(humanize.Comma(int64(l.Lines))),
			keyStyle.Render("messages:"), valueStyle.Render(humanize.Comma(int64(l.Messages))),
			keyStyle.Render("nicks:"), valueStyle.Render(humanize.Comma(int64(l.Nicks)))))

		latest := "unknown"
		if !l.Latest.IsZero() {
			latest = humanize.RelTime(l.Latest, data.Now, "ago", "from now")
		}
		b.WriteString(fmt.Sprintf("      %s %s %s %s\n",
			keyStyle.Render("eligible:"), valueStyle.Render(humanize.Comma(int64(l.Eligible))),
			keyStyle.Render("latest:"), valueStyle.Render(latest)))
	}

	// Remove trailing newline
	return strings.TrimSuffix(b.String(), "\n")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func truncateString(s string, maxLen int) string {
	if len([]rune(s)) > maxLen {
		return string([]rune(s)[:maxLen-3]) + "..."
	}
	return s
}
