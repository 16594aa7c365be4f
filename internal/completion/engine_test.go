package completion_test

import (
	"errors"
	"testing"

	"github.com/NikitaCOEUR/chatcomplete/internal/completion"
	"github.com/NikitaCOEUR/chatcomplete/internal/history"
	"github.com/NikitaCOEUR/chatcomplete/internal/host"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultOptions(t *testing.T) completion.Options {
	t.Helper()
	notice, err := completion.ParseNotice(`No matches for {{ .Partial | quote }}`)
	require.NoError(t, err)
	return completion.Options{
		WordStart:        completion.MustCompilePattern(`\b\w+`),
		Continuation:     completion.MustCompilePattern(`\w+`),
		MaxEligible:      50,
		MaxRaw:           500,
		FallbackBackward: host.CommandHistoryPrevious,
		FallbackForward:  host.CommandHistoryNext,
		Notice:           notice,
	}
}

func messages(texts ...string) []history.Line {
	lines := make([]history.Line, 0, len(texts))
	for _, text := range texts {
		lines = append(lines, history.Line{Prefix: "alice", Text: text, Tags: []string{history.TagMessage}})
	}
	return lines
}

// newFixture builds a buffer whose history is oldest first
func newFixture(t *testing.T, lines ...string) (*host.Buffer, *completion.Engine) {
	t.Helper()
	buf := host.New(host.Options{MessagesOnly: true}, nil)
	buf.AddView("#go", messages(lines...))
	return buf, completion.NewEngine(buf, defaultOptions(t), nil)
}

func TestEngine_StartBackward(t *testing.T) {
	buf, engine := newFixture(t, "internet cafe", "international relations")
	buf.Edit("hey inter", 9)

	outcome, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, completion.OutcomeStarted, outcome)

	assert.Equal(t, "hey international", buf.InputText())
	assert.Equal(t, 17, buf.CursorOffset())

	state := engine.State()
	assert.True(t, state.Active)
	assert.Equal(t, "inter", state.Partial)
	assert.Equal(t, []string{"international", "internet"}, state.Candidates)
	assert.Equal(t, 0, state.Index)
	assert.Equal(t, completion.Span{Start: 4, Length: 13}, state.Span)
	assert.Equal(t, 1, buf.WatchCount())
}

func TestEngine_StartForward(t *testing.T) {
	buf, engine := newFixture(t, "internet cafe", "international relations")
	buf.Edit("hey inter", 9)

	_, err := engine.Trigger(completion.Forward)
	require.NoError(t, err)

	assert.Equal(t, "hey internet", buf.InputText())
	assert.Equal(t, 1, engine.State().Index)
}

func TestEngine_CycleReplacesPreviousCandidate(t *testing.T) {
	buf, engine := newFixture(t, "internet cafe", "international relations")
	buf.Edit("hey inter, ok?", 9)

	steps := []struct {
		dir  completion.Direction
		want string
	}{
		{completion.Backward, "hey international, ok?"},
		{completion.Backward, "hey internet, ok?"},
		{completion.Backward, "hey international, ok?"},
		{completion.Forward, "hey internet, ok?"},
		{completion.Forward, "hey international, ok?"},
	}

	for i, step := range steps {
		outcome, err := engine.Trigger(step.dir)
		require.NoError(t, err, "step %d", i)
		if i == 0 {
			assert.Equal(t, completion.OutcomeStarted, outcome)
		} else {
			assert.Equal(t, completion.OutcomeAdvanced, outcome)
		}
		assert.Equal(t, step.want, buf.InputText(), "step %d", i)
		assert.Equal(t, engine.State().Span.End(), buf.CursorOffset(), "step %d", i)
	}
	assert.Equal(t, 1, buf.WatchCount(), "old watches are cancelled before re-arming")
}

func TestEngine_CycleClosure(t *testing.T) {
	for _, dir := range []completion.Direction{completion.Backward, completion.Forward} {
		t.Run(dir.String(), func(t *testing.T) {
			buf, engine := newFixture(t, "gamma goat", "gopher golang", "go gold")
			buf.Edit("g", 1)

			_, err := engine.Trigger(dir)
			require.NoError(t, err)
			start := engine.State()
			n := len(start.Candidates)
			require.Greater(t, n, 1)

			for i := 0; i < n; i++ {
				_, err := engine.Trigger(dir)
				require.NoError(t, err)
			}
			assert.Equal(t, start.Index, engine.State().Index)
			assert.Equal(t, start.Candidates[start.Index], buf.InputText())
		})
	}
}

func TestEngine_ExternalEditTerminates(t *testing.T) {
	buf, engine := newFixture(t, "internet cafe")
	buf.Edit("hey inter", 9)

	_, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	require.True(t, engine.Active())

	buf.Edit("hey internet!", 13)

	assert.False(t, engine.Active())
	assert.Equal(t, 0, buf.WatchCount())
}

func TestEngine_ViewSwitchTerminates(t *testing.T) {
	buf, engine := newFixture(t, "internet cafe")
	buf.AddView("#other", messages("interesting"))
	buf.Edit("inter", 5)

	_, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)

	require.NoError(t, buf.SwitchView("#other"))
	assert.False(t, engine.Active())

	// A new trigger starts over from the new view's history
	buf.Edit("inter", 5)
	_, err = engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, "interesting", buf.InputText())
}

func TestEngine_EmptyLineRunsFallback(t *testing.T) {
	buf, engine := newFixture(t, "internet cafe")
	buf.Edit("earlier message", 15)
	buf.Submit()

	outcome, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, completion.OutcomeFallback, outcome)
	assert.False(t, engine.Active())
	assert.Equal(t, "earlier message", buf.InputText(), "history_previous recalled the sent line")

	// With the caret at line start there is no partial word either
	buf.SetCursorOffset(0)
	outcome, err = engine.Trigger(completion.Forward)
	require.NoError(t, err)
	assert.Equal(t, completion.OutcomeFallback, outcome)
	assert.Equal(t, "", buf.InputText(), "history_next went back to the empty line")
}

func TestEngine_EmptyLineWithoutHistoryLeavesBufferAlone(t *testing.T) {
	buf, engine := newFixture(t, "internet cafe")

	var ran []string
	buf.RegisterCommand("noop", func() error { ran = append(ran, "noop"); return nil })
	opts := defaultOptions(t)
	opts.FallbackBackward = "noop"
	engine = completion.NewEngine(buf, opts, nil)

	outcome, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, completion.OutcomeFallback, outcome)
	assert.Equal(t, []string{"noop"}, ran)
	assert.Equal(t, "", buf.InputText())
	assert.Equal(t, completion.State{}, engine.State())
}

func TestEngine_NoFallbackConfigured(t *testing.T) {
	buf, _ := newFixture(t)
	opts := defaultOptions(t)
	opts.FallbackBackward = ""
	engine := completion.NewEngine(buf, opts, nil)

	outcome, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, completion.OutcomeIgnored, outcome)
}

func TestEngine_NoMatches(t *testing.T) {
	buf, engine := newFixture(t, "internet cafe", "international relations")
	buf.Edit("try xyz123", 10)

	outcome, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, completion.OutcomeNoMatches, outcome)
	assert.False(t, engine.Active())
	assert.Equal(t, "try xyz123", buf.InputText())
	assert.Equal(t, 10, buf.CursorOffset())
	assert.Equal(t, 0, buf.WatchCount())
	assert.Equal(t, `No matches for "xyz123"`, buf.LastNotice())
}

func TestEngine_NoticeDisabled(t *testing.T) {
	buf, _ := newFixture(t, "internet cafe")
	opts := defaultOptions(t)
	opts.Notice = nil
	engine := completion.NewEngine(buf, opts, nil)
	buf.Edit("zzz", 3)

	outcome, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, completion.OutcomeNoMatches, outcome)
	assert.Empty(t, buf.Notices())
}

func TestEngine_StatusLinesAreSkipped(t *testing.T) {
	buf := host.New(host.Options{MessagesOnly: true}, nil)
	buf.AddView("#go", []history.Line{
		{Text: "interloper has joined", Tags: []string{history.TagStatus}},
		{Text: "internet cafe", Tags: []string{history.TagMessage}},
	})
	engine := completion.NewEngine(buf, defaultOptions(t), nil)
	buf.Edit("inter", 5)

	_, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, []string{"internet"}, engine.State().Candidates)
}

func TestEngine_RoundTripRestoresIdleState(t *testing.T) {
	buf, engine := newFixture(t, "internet cafe", "international relations", "interval tree")
	before := engine.State()

	buf.Edit("the inter", 9)
	_, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	for i := 0; i < len(engine.State().Candidates); i++ {
		_, err := engine.Trigger(completion.Backward)
		require.NoError(t, err)
	}

	buf.Edit(buf.InputText()+" ", buf.CursorOffset()+1)

	if diff := cmp.Diff(before, engine.State()); diff != "" {
		t.Errorf("state after termination differs from idle state (-before +after):\n%s", diff)
	}
	assert.Equal(t, 0, buf.WatchCount())
}

func TestEngine_ResetIsIdempotent(t *testing.T) {
	_, engine := newFixture(t)
	engine.Reset()
	engine.Reset()
	assert.False(t, engine.Active())
}

// failingHost wraps a Buffer and fails selected calls
type failingHost struct {
	*host.Buffer
	watchErr  error
	cancelErr error
}

func (h *failingHost) WatchExternalEdit(fn func()) (completion.WatchHandle, error) {
	if h.watchErr != nil {
		return "", h.watchErr
	}
	return h.Buffer.WatchExternalEdit(fn)
}

func (h *failingHost) CancelWatch(w completion.WatchHandle) error {
	if h.cancelErr != nil {
		return h.cancelErr
	}
	return h.Buffer.CancelWatch(w)
}

func TestEngine_WatchFailureAbortsToIdle(t *testing.T) {
	buf, _ := newFixture(t, "internet cafe")
	h := &failingHost{Buffer: buf, watchErr: errors.New("no hooks left")}
	engine := completion.NewEngine(h, defaultOptions(t), nil)
	buf.Edit("hey inter", 9)

	outcome, err := engine.Trigger(completion.Backward)
	require.Error(t, err)
	assert.Equal(t, completion.OutcomeAborted, outcome)
	assert.False(t, engine.Active())
	assert.Equal(t, "hey inter", buf.InputText())
	assert.Equal(t, 9, buf.CursorOffset())

	// The next trigger starts a fresh session from the untouched input
	h.watchErr = nil
	outcome, err = engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, completion.OutcomeStarted, outcome)
	assert.Equal(t, "hey internet", buf.InputText())
}

func TestEngine_WatchFailureOnAdvanceKeepsCurrentCandidate(t *testing.T) {
	buf, _ := newFixture(t, "internet interval")
	h := &failingHost{Buffer: buf}
	engine := completion.NewEngine(h, defaultOptions(t), nil)
	buf.Edit("inter", 5)

	_, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	first := buf.InputText()

	h.watchErr = errors.New("no hooks left")
	outcome, err := engine.Trigger(completion.Backward)
	require.Error(t, err)
	assert.Equal(t, completion.OutcomeAborted, outcome)
	assert.False(t, engine.Active())
	assert.Equal(t, first, buf.InputText())
	assert.Equal(t, len(first), buf.CursorOffset())
}

func TestEngine_HashPrefixedWordStart(t *testing.T) {
	buf, _ := newFixture(t, "join #golang now")
	opts := defaultOptions(t)
	opts.WordStart = completion.MustCompilePattern(`#\w+`)
	engine := completion.NewEngine(buf, opts, nil)
	buf.Edit("see #go", 7)

	outcome, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)
	assert.Equal(t, completion.OutcomeStarted, outcome)
	assert.Equal(t, "see #golang", buf.InputText())
	assert.Equal(t, 11, buf.CursorOffset())
}

func TestEngine_CancelFailureStillResets(t *testing.T) {
	buf, _ := newFixture(t, "internet cafe")
	h := &failingHost{Buffer: buf}
	engine := completion.NewEngine(h, defaultOptions(t), nil)
	buf.Edit("inter", 5)

	_, err := engine.Trigger(completion.Backward)
	require.NoError(t, err)

	h.cancelErr = errors.New("hook vanished")
	engine.Reset()
	assert.False(t, engine.Active())
	assert.Equal(t, completion.State{}, engine.State())
}

func TestEngine_UnknownFallbackCommand(t *testing.T) {
	buf, _ := newFixture(t)
	opts := defaultOptions(t)
	opts.FallbackBackward = "does_not_exist"
	engine := completion.NewEngine(buf, opts, nil)

	outcome, err := engine.Trigger(completion.Backward)
	require.Error(t, err)
	assert.Equal(t, completion.OutcomeAborted, outcome)
	assert.False(t, engine.Active())
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, completion.Forward, completion.ParseDirection("reverse"))
	assert.Equal(t, completion.Backward, completion.ParseDirection(""))
	assert.Equal(t, completion.Backward, completion.ParseDirection("anything"))
	assert.Equal(t, "forward", completion.Forward.String())
	assert.Equal(t, "backward", completion.Backward.String())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "started", completion.OutcomeStarted.String())
	assert.Equal(t, "no-matches", completion.OutcomeNoMatches.String())
	assert.Equal(t, "Outcome(42)", completion.Outcome(42).String())
}
