package completion

// WatchHandle identifies a registered external-edit watch
type WatchHandle string

// Host is the chat client the engine runs inside. All calls happen on the
// host's event loop; the engine never calls it concurrently.
type Host interface {
	// InputText returns the current edit line
	InputText() string
	// CursorOffset returns the caret position as a rune offset
	CursorOffset() int
	// SetInputText replaces the edit line
	SetInputText(text string)
	// SetCursorOffset moves the caret
	SetCursorOffset(offset int)
	// RecentMessages returns up to maxEligible message lines, newest first,
	// examining at most maxRaw lines of the active view
	RecentMessages(maxEligible, maxRaw int) []string
	// WatchExternalEdit calls fn whenever the edit line, the cursor or the
	// active view changes, until the watch is cancelled
	WatchExternalEdit(fn func()) (WatchHandle, error)
	// CancelWatch removes a watch registered with WatchExternalEdit
	CancelWatch(h WatchHandle) error
	// InvokeFallback runs a host command by name
	InvokeFallback(command string) error
	// Notice shows an informational message to the user
	Notice(msg string)
}

// Direction selects which way a trigger walks the candidate list
type Direction int

const (
	// Backward is the default trigger: newest candidate first, then older ones
	Backward Direction = iota
	// Forward is the reverse trigger: oldest candidate first, then newer ones
	Forward
)

// ParseDirection maps the command argument to a direction; "reverse" selects
// Forward and anything else Backward
func ParseDirection(arg string) Direction {
	if arg == "reverse" {
		return Forward
	}
	return Backward
}

func (d Direction) String() string {
	if d == Forward {
		return "forward"
	}
	return "backward"
}

func (d Direction) initialIndex(n int) int {
	if d == Forward {
		return n - 1
	}
	return 0
}

func (d Direction) step(index, n int) int {
	if d == Forward {
		return (index - 1 + n) % n
	}
	return (index + 1) % n
}
