package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances by step on every reading
func fakeClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestTimer_Phases(t *testing.T) {
	timer := newTimer(fakeClock(2 * time.Millisecond))

	assert.Equal(t, 2*time.Millisecond, timer.Mark("config"))
	assert.Equal(t, 2*time.Millisecond, timer.Mark("logs"))

	assert.Equal(t, []Phase{
		{Name: "config", Duration: 2 * time.Millisecond},
		{Name: "logs", Duration: 2 * time.Millisecond},
	}, timer.Phases())
}

func TestTimer_Summary(t *testing.T) {
	timer := newTimer(fakeClock(1500 * time.Microsecond))
	timer.Mark("config")
	timer.Mark("complete")

	assert.Equal(t, "config 1.500ms, complete 1.500ms (total 4.500ms)", timer.Summary())
}

func TestTimer_SummaryWithoutPhases(t *testing.T) {
	timer := newTimer(fakeClock(time.Millisecond))
	assert.Equal(t, "total 1.000ms", timer.Summary())
}

func TestTimer_Real(t *testing.T) {
	timer := NewTimer()
	time.Sleep(5 * time.Millisecond)
	timer.Mark("sleep")

	assert.GreaterOrEqual(t, timer.Phases()[0].Duration, 5*time.Millisecond)
	assert.GreaterOrEqual(t, timer.Elapsed(), 5*time.Millisecond)
}
