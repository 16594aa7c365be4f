package completion

import (
	"fmt"
	"time"

	"github.com/NikitaCOEUR/chatcomplete/internal/cerrors"
	"github.com/NikitaCOEUR/chatcomplete/internal/logger"
)

// Outcome reports what a trigger did
type Outcome int

const (
	// OutcomeIgnored means there was no partial word and no fallback command
	OutcomeIgnored Outcome = iota
	// OutcomeFallback means there was no partial word and the fallback ran
	OutcomeFallback
	// OutcomeNoMatches means the partial word had no candidates
	OutcomeNoMatches
	// OutcomeStarted means a session started and the first candidate was inserted
	OutcomeStarted
	// OutcomeAdvanced means the active session moved to another candidate
	OutcomeAdvanced
	// OutcomeAborted means a host or pattern failure ended the trigger
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeFallback:
		return "fallback"
	case OutcomeNoMatches:
		return "no-matches"
	case OutcomeStarted:
		return "started"
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeAborted:
		return "aborted"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Options configures an Engine
type Options struct {
	WordStart    *Pattern
	Continuation *Pattern
	// MaxEligible is the number of message lines to collect
	MaxEligible int
	// MaxRaw bounds the number of lines examined
	MaxRaw           int
	FallbackBackward string
	FallbackForward  string
	// Notice is shown when there are no candidates; nil disables it
	Notice *Notice
}

func (o Options) fallback(dir Direction) string {
	if dir == Forward {
		return o.FallbackForward
	}
	return o.FallbackBackward
}

// State is a snapshot of the engine. The zero value is the idle state.
type State struct {
	Active     bool
	Partial    string
	Candidates []string
	Index      int
	Direction  Direction
	Span       Span
}

type session struct {
	partial    string
	candidates []string
	index      int
	direction  Direction
	span       Span
	watch      WatchHandle
	watching   bool
}

// Engine is the completion state machine for one input surface.
// A nil session is IDLE; a non-nil session is ACTIVE.
type Engine struct {
	host    Host
	opts    Options
	log     *logger.Logger
	session *session
}

// NewEngine creates an idle engine bound to host
func NewEngine(host Host, opts Options, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{host: host, opts: opts, log: log.Component("completion")}
}

// Active reports whether a session is in progress
func (e *Engine) Active() bool {
	return e.session != nil
}

// State returns a copy of the current session state
func (e *Engine) State() State {
	s := e.session
	if s == nil {
		return State{}
	}
	return State{
		Active:     true,
		Partial:    s.partial,
		Candidates: append([]string(nil), s.candidates...),
		Index:      s.index,
		Direction:  s.direction,
		Span:       s.span,
	}
}

// Trigger handles one invocation of the completion action. An idle engine
// starts a session; an active one moves to the next candidate in dir.
func (e *Engine) Trigger(dir Direction) (Outcome, error) {
	if e.session != nil {
		return e.advance(dir)
	}
	return e.start(dir)
}

func (e *Engine) start(dir Direction) (Outcome, error) {
	text := e.host.InputText()
	cursor := e.host.CursorOffset()

	partial, ok := ExtractPartial(text, cursor, e.opts.WordStart)
	if !ok {
		return e.runFallback(dir)
	}

	began := time.Now()
	lines := e.host.RecentMessages(e.opts.MaxEligible, e.opts.MaxRaw)
	candidates, err := FindMatches(partial, lines, e.opts.Continuation)
	if err != nil {
		return OutcomeAborted, fmt.Errorf("failed to match %q: %w", partial, err)
	}

	e.log.Debug().
		Str("partial", partial).
		Int("lines", len(lines)).
		Int("candidates", len(candidates)).
		Dur("took", time.Since(began)).
		Msg("Computed candidates")

	if len(candidates) == 0 {
		e.notifyNoMatches(partial, len(lines))
		return OutcomeNoMatches, nil
	}

	index := dir.initialIndex(len(candidates))
	e.session = &session{
		partial:    partial,
		candidates: candidates,
		index:      index,
		direction:  dir,
		// The first insertion replaces the typed partial with the whole word.
		span: Span{Start: cursor - runeLen(partial), Length: runeLen(partial)},
	}

	if err := e.insert(candidates[index]); err != nil {
		e.Reset()
		return OutcomeAborted, err
	}
	return OutcomeStarted, nil
}

func (e *Engine) advance(dir Direction) (Outcome, error) {
	s := e.session
	s.index = dir.step(s.index, len(s.candidates))
	s.direction = dir

	if err := e.insert(s.candidates[s.index]); err != nil {
		e.Reset()
		return OutcomeAborted, err
	}
	return OutcomeAdvanced, nil
}

// insert replaces the session span with candidate and re-arms the watch.
// The previous watch is cancelled first so the write does not end the session.
// When the watch cannot be armed the input is put back as it was.
func (e *Engine) insert(candidate string) error {
	s := e.session
	e.cancelWatch(s)

	prevText, prevCursor := e.host.InputText(), e.host.CursorOffset()
	text, cursor := ApplyReplacement(prevText, s.span.End(), s.span.Length, candidate)
	e.host.SetInputText(text)
	e.host.SetCursorOffset(cursor)
	s.span = Span{Start: cursor - runeLen(candidate), Length: runeLen(candidate)}

	e.log.Debug().
		Str("candidate", candidate).
		Int("index", s.index).
		Int("of", len(s.candidates)).
		Str("direction", s.direction.String()).
		Msg("Inserted candidate")

	h, err := e.host.WatchExternalEdit(func() { e.terminate(s) })
	if err != nil {
		e.host.SetInputText(prevText)
		e.host.SetCursorOffset(prevCursor)
		return cerrors.NewHostError("watch", err)
	}
	s.watch = h
	s.watching = true
	return nil
}

// terminate ends s if it is still the current session; watches that fire
// after their session ended are ignored.
func (e *Engine) terminate(s *session) {
	if e.session != s {
		return
	}
	e.log.Debug().Str("partial", s.partial).Msg("Input changed, ending completion")
	e.Reset()
}

// Reset ends the active session. The engine is idle afterwards even if the
// host fails to cancel the watch.
func (e *Engine) Reset() {
	s := e.session
	if s == nil {
		return
	}
	e.session = nil
	e.cancelWatch(s)
}

func (e *Engine) cancelWatch(s *session) {
	if !s.watching {
		return
	}
	s.watching = false
	if err := e.host.CancelWatch(s.watch); err != nil {
		e.log.Warn().Err(err).Str("watch", string(s.watch)).Msg("Failed to cancel input watch")
	}
}

func (e *Engine) runFallback(dir Direction) (Outcome, error) {
	cmd := e.opts.fallback(dir)
	if cmd == "" {
		return OutcomeIgnored, nil
	}
	e.log.Debug().Str("command", cmd).Str("direction", dir.String()).Msg("No partial word, running fallback")
	if err := e.host.InvokeFallback(cmd); err != nil {
		return OutcomeAborted, cerrors.NewHostError("fallback "+cmd, err)
	}
	return OutcomeFallback, nil
}

func (e *Engine) notifyNoMatches(partial string, lines int) {
	if e.opts.Notice == nil {
		return
	}
	msg, err := e.opts.Notice.Render(NoticeData{Partial: partial, Lines: lines})
	if err != nil {
		e.log.Warn().Err(err).Msg("Failed to render notice")
		return
	}
	e.host.Notice(msg)
}
