// Package timing measures the phases of a command run.
package timing

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one measured step
type Phase struct {
	Name     string
	Duration time.Duration
}

// Timer splits a run into consecutive phases
type Timer struct {
	now    func() time.Time
	start  time.Time
	last   time.Time
	phases []Phase
}

// NewTimer starts a timer
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	t := now()
	return &Timer{now: now, start: t, last: t}
}

// Mark ends the current phase under name and starts the next one
func (t *Timer) Mark(name string) time.Duration {
	now := t.now()
	d := now.Sub(t.last)
	t.last = now
	t.phases = append(t.phases, Phase{Name: name, Duration: d})
	return d
}

// Phases returns the marked phases in order
func (t *Timer) Phases() []Phase {
	return t.phases
}

// Elapsed returns the time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

// Summary formats the phases, e.g. "config 0.120ms, logs 1.500ms (total 1.620ms)"
func (t *Timer) Summary() string {
	parts := make([]string, 0, len(t.phases))
	for _, p := range t.phases {
		parts = append(parts, fmt.Sprintf("%s %s", p.Name, millis(p.Duration)))
	}
	total := "total " + millis(t.Elapsed())
	if len(parts) == 0 {
		return total
	}
	return strings.Join(parts, ", ") + " (" + total + ")"
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
