package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/NikitaCOEUR/chatcomplete/internal/completion"
	"github.com/NikitaCOEUR/chatcomplete/internal/logger"
	"github.com/NikitaCOEUR/chatcomplete/internal/timing"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	ConfigPath string
	LogLevel   string
	Logs       []string
	// View selects the log to complete from; the first one by default
	View  string
	Input string
	// Cursor is a rune offset into Input; negative means the end
	Cursor  int
	Steps   int
	Reverse bool
	Verbose bool
	Out     io.Writer
}

// CompleteResult is the edit line after the last step
type CompleteResult struct {
	Text     string
	Cursor   int
	Outcomes []completion.Outcome
	State    completion.State
	Notice   string
}

// Complete runs the completion action Steps times on Input and prints the
// resulting line and cursor
func Complete(params CompleteParams) (*CompleteResult, error) {
	out := params.Out
	if out == nil {
		out = os.Stdout
	}
	log := logger.New(params.LogLevel, os.Stderr)
	timer := timing.NewTimer()

	info, err := loadConfig(params.ConfigPath, log)
	if err != nil {
		return nil, err
	}
	opts, err := info.Config.EngineOptions()
	if err != nil {
		return nil, err
	}

	timer.Mark("config")

	buf, err := loadBuffer(info.Config, params.Logs, log)
	if err != nil {
		return nil, err
	}
	if params.View != "" {
		if err := buf.SwitchView(params.View); err != nil {
			return nil, err
		}
	}

	timer.Mark("logs")

	cursor := params.Cursor
	if cursor < 0 {
		cursor = len([]rune(params.Input))
	}
	buf.Edit(params.Input, cursor)

	engine := completion.NewEngine(buf, opts, log)
	dir := completion.Backward
	if params.Reverse {
		dir = completion.Forward
	}

	result := &CompleteResult{}
	for i := 0; i < max(params.Steps, 1); i++ {
		outcome, err := engine.Trigger(dir)
		if err != nil {
			return nil, err
		}
		result.Outcomes = append(result.Outcomes, outcome)

		if params.Verbose {
			fmt.Fprintf(out, "%d. %-10s %q cursor=%d\n", i+1, outcome, buf.InputText(), buf.CursorOffset())
		}
		if outcome != completion.OutcomeStarted && outcome != completion.OutcomeAdvanced {
			break
		}
	}

	timer.Mark("complete")
	log.Debug().Str("timings", timer.Summary()).Int("steps", len(result.Outcomes)).Msg("Done")

	result.Text = buf.InputText()
	result.Cursor = buf.CursorOffset()
	result.State = engine.State()
	if result.Outcomes[len(result.Outcomes)-1] == completion.OutcomeNoMatches {
		result.Notice = buf.LastNotice()
		// the host already logged it when info is enabled
		if result.Notice != "" && !log.Enabled("info") {
			fmt.Fprintln(os.Stderr, result.Notice)
		}
	}

	fmt.Fprintln(out, result.Text)
	fmt.Fprintln(out, result.Cursor)
	return result, nil
}
