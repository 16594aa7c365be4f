// Package history holds channel lines and selects the recent messages that
// completion candidates are drawn from.
package history

import "time"

// Tags assigned by the log parsers
const (
	TagMessage = "message"
	TagStatus  = "status"
)

// Line is one line of a channel buffer
type Line struct {
	Time   time.Time
	Prefix string
	Text   string
	Tags   []string
}

// HasTag reports whether the line carries tag
func (l Line) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScanOptions bounds a Scan
type ScanOptions struct {
	// MaxEligible is the number of eligible lines to collect
	MaxEligible int
	// MaxRaw is the number of lines to examine; <= 0 means no bound
	MaxRaw int
	// MessagesOnly skips lines without MessageTag
	MessagesOnly bool
	MessageTag   string
}

// Scan walks lines (oldest first, as buffers store them) from the newest end
// and returns the text of up to MaxEligible eligible lines, newest first.
// Skipped lines still count toward MaxRaw.
func Scan(lines []Line, opts ScanOptions) []string {
	if opts.MaxEligible <= 0 {
		return nil
	}

	tag := opts.MessageTag
	if tag == "" {
		tag = TagMessage
	}

	out := make([]string, 0, min(opts.MaxEligible, len(lines)))
	examined := 0
	for i := len(lines) - 1; i >= 0; i-- {
		if len(out) >= opts.MaxEligible {
			break
		}
		if opts.MaxRaw > 0 && examined >= opts.MaxRaw {
			break
		}
		examined++

		line := lines[i]
		if opts.MessagesOnly && !line.HasTag(tag) {
			continue
		}
		out = append(out, line.Text)
	}
	return out
}
