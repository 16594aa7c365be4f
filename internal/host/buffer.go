// Package host provides an in-memory chat client that the completion engine
// can run inside: named views with line history, one edit line, and watches
// that fire whenever the edit line or the active view changes.
package host

import (
	"fmt"
	"sort"

	"github.com/NikitaCOEUR/chatcomplete/internal/cerrors"
	"github.com/NikitaCOEUR/chatcomplete/internal/completion"
	"github.com/NikitaCOEUR/chatcomplete/internal/history"
	"github.com/NikitaCOEUR/chatcomplete/internal/logger"
	"github.com/google/uuid"
)

// Built-in fallback commands
const (
	CommandHistoryPrevious = "history_previous"
	CommandHistoryNext     = "history_next"
)

// View is one channel: a name and its lines, oldest first
type View struct {
	Name  string
	Lines []history.Line
}

// Options configures a Buffer
type Options struct {
	// Nick prefixes lines added with Submit
	Nick         string
	MessagesOnly bool
	MessageTag   string
}

// Buffer implements completion.Host in memory
type Buffer struct {
	opts   Options
	log    *logger.Logger
	views  []*View
	active int

	input  []rune
	cursor int

	watches  map[completion.WatchHandle]func()
	commands map[string]func() error
	notices  []string

	// sent input lines, oldest first, and the recall position (-1 = not recalling)
	sent    []string
	recall  int
	pending string
}

var _ completion.Host = (*Buffer)(nil)

// New creates a buffer with a single empty view named "main"
func New(opts Options, log *logger.Logger) *Buffer {
	if log == nil {
		log = logger.Discard()
	}
	if opts.Nick == "" {
		opts.Nick = "you"
	}
	b := &Buffer{
		opts:     opts,
		log:      log.Component("host"),
		views:    []*View{{Name: "main"}},
		watches:  make(map[completion.WatchHandle]func()),
		commands: make(map[string]func() error),
		recall:   -1,
	}
	b.commands[CommandHistoryPrevious] = b.historyPrevious
	b.commands[CommandHistoryNext] = b.historyNext
	return b
}

// AddView appends a view, replacing the initial empty "main" view if unused
func (b *Buffer) AddView(name string, lines []history.Line) *View {
	v := &View{Name: name, Lines: lines}
	if len(b.views) == 1 && b.views[0].Name == "main" && len(b.views[0].Lines) == 0 {
		b.views[0] = v
		return v
	}
	b.views = append(b.views, v)
	return v
}

// Views returns the views in order
func (b *Buffer) Views() []*View {
	return b.views
}

// ActiveView returns the view completion reads from
func (b *Buffer) ActiveView() *View {
	return b.views[b.active]
}

// SwitchView activates the named view. Watches fire.
func (b *Buffer) SwitchView(name string) error {
	for i, v := range b.views {
		if v.Name == name {
			b.active = i
			b.fire()
			return nil
		}
	}
	return cerrors.NewNotFoundError("view", fmt.Sprintf("no view named %q", name))
}

// CycleView moves the active view by delta, wrapping around. Watches fire.
func (b *Buffer) CycleView(delta int) {
	n := len(b.views)
	b.active = ((b.active+delta)%n + n) % n
	b.fire()
}

// ReplaceLines swaps the lines of the named view, for example after its log
// file changed. Watches do not fire: new history does not end a completion.
func (b *Buffer) ReplaceLines(name string, lines []history.Line) bool {
	for _, v := range b.views {
		if v.Name == name {
			v.Lines = lines
			return true
		}
	}
	return false
}

// Edit sets the edit line and cursor as the user's own typing would. Watches fire.
// Typing ends any history recall in progress.
func (b *Buffer) Edit(text string, cursor int) {
	b.recall = -1
	b.setLine(text, cursor)
}

func (b *Buffer) setLine(text string, cursor int) {
	b.input = []rune(text)
	b.cursor = clampCursor(cursor, len(b.input))
	b.fire()
}

// Submit appends the edit line to the active view as a message from Nick,
// remembers it for history recall and clears the edit line. Watches fire.
func (b *Buffer) Submit() string {
	text := string(b.input)
	if text != "" {
		v := b.ActiveView()
		v.Lines = append(v.Lines, history.Line{
			Prefix: b.opts.Nick,
			Text:   text,
			Tags:   []string{b.messageTag()},
		})
		b.sent = append(b.sent, text)
	}
	b.recall = -1
	b.pending = ""
	b.input = nil
	b.cursor = 0
	b.fire()
	return text
}

// RegisterCommand makes name available as a fallback command
func (b *Buffer) RegisterCommand(name string, fn func() error) {
	b.commands[name] = fn
}

// Notices returns the notices shown so far
func (b *Buffer) Notices() []string {
	return b.notices
}

// LastNotice returns the most recent notice, or ""
func (b *Buffer) LastNotice() string {
	if len(b.notices) == 0 {
		return ""
	}
	return b.notices[len(b.notices)-1]
}

// WatchCount returns the number of registered watches
func (b *Buffer) WatchCount() int {
	return len(b.watches)
}

// InputText implements completion.Host
func (b *Buffer) InputText() string {
	return string(b.input)
}

// CursorOffset implements completion.Host
func (b *Buffer) CursorOffset() int {
	return b.cursor
}

// SetInputText implements completion.Host. Like a real client it cannot tell
// who wrote the line, so watches fire here too.
func (b *Buffer) SetInputText(text string) {
	b.input = []rune(text)
	b.cursor = clampCursor(b.cursor, len(b.input))
	b.fire()
}

// SetCursorOffset implements completion.Host. Watches fire.
func (b *Buffer) SetCursorOffset(offset int) {
	b.cursor = clampCursor(offset, len(b.input))
	b.fire()
}

// RecentMessages implements completion.Host
func (b *Buffer) RecentMessages(maxEligible, maxRaw int) []string {
	return history.Scan(b.ActiveView().Lines, history.ScanOptions{
		MaxEligible:  maxEligible,
		MaxRaw:       maxRaw,
		MessagesOnly: b.opts.MessagesOnly,
		MessageTag:   b.messageTag(),
	})
}

// WatchExternalEdit implements completion.Host
func (b *Buffer) WatchExternalEdit(fn func()) (completion.WatchHandle, error) {
	h := completion.WatchHandle(uuid.NewString())
	b.watches[h] = fn
	return h, nil
}

// CancelWatch implements completion.Host
func (b *Buffer) CancelWatch(h completion.WatchHandle) error {
	if _, ok := b.watches[h]; !ok {
		return cerrors.NewNotFoundError("watch", "unknown watch "+string(h))
	}
	delete(b.watches, h)
	return nil
}

// InvokeFallback implements completion.Host
func (b *Buffer) InvokeFallback(command string) error {
	fn, ok := b.commands[command]
	if !ok {
		return cerrors.NewNotFoundError("command", "unknown command "+command)
	}
	b.log.Debug().Str("command", command).Msg("Running fallback command")
	return fn()
}

// Notice implements completion.Host
func (b *Buffer) Notice(msg string) {
	b.log.Info().Str("view", b.ActiveView().Name).Msg(msg)
	b.notices = append(b.notices, msg)
}

// fire runs every watch. Handles are sorted so the order is stable, and the
// set is copied because callbacks usually cancel their own watch.
func (b *Buffer) fire() {
	if len(b.watches) == 0 {
		return
	}
	handles := make([]string, 0, len(b.watches))
	for h := range b.watches {
		handles = append(handles, string(h))
	}
	sort.Strings(handles)

	for _, h := range handles {
		if fn, ok := b.watches[completion.WatchHandle(h)]; ok {
			fn()
		}
	}
}

func (b *Buffer) messageTag() string {
	if b.opts.MessageTag == "" {
		return history.TagMessage
	}
	return b.opts.MessageTag
}

func (b *Buffer) historyPrevious() error {
	if len(b.sent) == 0 {
		return nil
	}
	switch {
	case b.recall == -1:
		b.pending = string(b.input)
		b.recall = len(b.sent) - 1
	case b.recall > 0:
		b.recall--
	}
	b.setLine(b.sent[b.recall], len([]rune(b.sent[b.recall])))
	return nil
}

func (b *Buffer) historyNext() error {
	if b.recall == -1 {
		return nil
	}
	b.recall++
	if b.recall >= len(b.sent) {
		b.recall = -1
		b.setLine(b.pending, len([]rune(b.pending)))
		return nil
	}
	b.setLine(b.sent[b.recall], len([]rune(b.sent[b.recall])))
	return nil
}

func clampCursor(c, n int) int {
	if c < 0 {
		return 0
	}
	if c > n {
		return n
	}
	return c
}
