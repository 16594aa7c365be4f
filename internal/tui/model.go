// Package tui is a small terminal chat client built on Bubble Tea. It shows
// channel logs, keeps one edit line and binds the completion engine to keys.
package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/NikitaCOEUR/chatcomplete/internal/completion"
	"github.com/NikitaCOEUR/chatcomplete/internal/config"
	"github.com/NikitaCOEUR/chatcomplete/internal/history"
	"github.com/NikitaCOEUR/chatcomplete/internal/host"
	"github.com/NikitaCOEUR/chatcomplete/internal/logger"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the chat client
type Options struct {
	Config *config.Config
	// Logs are loaded as one view each, named after the file
	Logs []string
	Log  *logger.Logger
}

// Model is the Bubble Tea model of the chat client
type Model struct {
	cfg    *config.Config
	log    *logger.Logger
	buf    *host.Buffer
	engine *completion.Engine
	input  textinput.Model

	// view name -> log path
	paths    map[string]string
	follower *Follower

	status string
	width  int
	height int
	now    func() time.Time
}

// New loads the logs and builds an idle client
func New(opts Options) (*Model, error) {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}

	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}

	buf := host.New(host.Options{
		Nick:         cfg.Nick,
		MessagesOnly: cfg.MessagesOnly,
		MessageTag:   cfg.MessageTag,
	}, log)

	paths := make(map[string]string, len(opts.Logs))
	for _, path := range opts.Logs {
		lines, err := history.LoadFile(path)
		if err != nil {
			return nil, err
		}
		name := uniqueName(paths, filepath.Base(path))
		paths[name] = path
		buf.AddView(name, lines)
	}

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 0
	input.Focus()

	return &Model{
		cfg:    cfg,
		log:    log.Component("tui"),
		buf:    buf,
		engine: completion.NewEngine(buf, engineOpts, log),
		input:  input,
		paths:  paths,
		width:  80,
		height: 24,
		now:    time.Now,
	}, nil
}

// Follow makes the model reload views when their log file changes
func (m *Model) Follow(f *Follower) {
	m.follower = f
}

// Buffer returns the host the engine runs in
func (m *Model) Buffer() *host.Buffer {
	return m.buf
}

// Engine returns the completion engine
func (m *Model) Engine() *completion.Engine {
	return m.engine
}

// Status returns the status bar message
func (m *Model) Status() string {
	return m.status
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.follower != nil {
		cmds = append(cmds, m.follower.Wait())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 1)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case logReloadedMsg:
		m.handleReload(msg)
		if m.follower == nil {
			return m, nil
		}
		return m, m.follower.Wait()

	case followErrMsg:
		m.status = fmt.Sprintf("follow: %v", msg.err)
		m.log.Warn().Err(msg.err).Msg("Log follower failed")
		if m.follower == nil {
			return m, nil
		}
		return m, m.follower.Wait()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleReload(msg logReloadedMsg) {
	if msg.err != nil {
		m.status = fmt.Sprintf("reload %s: %v", msg.view, msg.err)
		m.log.Warn().Err(msg.err).Str("view", msg.view).Msg("Failed to reload log")
		return
	}
	if m.buf.ReplaceLines(msg.view, msg.lines) {
		m.log.Debug().Str("view", msg.view).Int("lines", len(msg.lines)).Msg("Reloaded log")
	}
}

// syncInput copies the host's edit line into the text input
func (m *Model) syncInput() {
	m.input.SetValue(m.buf.InputText())
	m.input.SetCursor(m.buf.CursorOffset())
}

func uniqueName(taken map[string]string, name string) string {
	if _, ok := taken[name]; !ok {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)", name, i)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
