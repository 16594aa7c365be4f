package tui

import (
	"fmt"

	"github.com/NikitaCOEUR/chatcomplete/internal/completion"
	"github.com/NikitaCOEUR/chatcomplete/internal/host"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case m.cfg.KeyBackward:
		m.trigger(completion.Backward)
		return m, nil
	case m.cfg.KeyForward:
		m.trigger(completion.Forward)
		return m, nil
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "alt+left":
		m.buf.CycleView(-1)
		m.status = ""
		return m, nil
	case "alt+right":
		m.buf.CycleView(1)
		m.status = ""
		return m, nil
	case "up":
		m.runCommand(host.CommandHistoryPrevious)
		return m, nil
	case "down":
		m.runCommand(host.CommandHistoryNext)
		return m, nil
	case "enter":
		if text := m.buf.Submit(); text != "" {
			m.log.Debug().Str("view", m.buf.ActiveView().Name).Msg("Sent line")
		}
		m.status = ""
		m.syncInput()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Anything the text input changed is the user's own edit
	if m.input.Value() != m.buf.InputText() || m.input.Position() != m.buf.CursorOffset() {
		m.buf.Edit(m.input.Value(), m.input.Position())
	}
	return m, cmd
}

func (m *Model) trigger(dir completion.Direction) {
	outcome, err := m.engine.Trigger(dir)
	m.syncInput()

	if err != nil {
		m.status = err.Error()
		m.log.Warn().Err(err).Str("direction", dir.String()).Msg("Completion failed")
		return
	}

	switch outcome {
	case completion.OutcomeStarted, completion.OutcomeAdvanced:
		st := m.engine.State()
		m.status = fmt.Sprintf("%s %d/%d", st.Partial, st.Index+1, len(st.Candidates))
	case completion.OutcomeNoMatches:
		m.status = m.buf.LastNotice()
	default:
		m.status = ""
	}
}

func (m *Model) runCommand(name string) {
	err := m.buf.InvokeFallback(name)
	m.syncInput()
	if err != nil {
		m.status = err.Error()
	}
}
