package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func msg(text string) Line    { return Line{Text: text, Tags: []string{TagMessage}} }
func status(text string) Line { return Line{Text: text, Tags: []string{TagStatus}} }

func TestLine_HasTag(t *testing.T) {
	l := Line{Tags: []string{"irc_privmsg", "notify_message"}}
	assert.True(t, l.HasTag("irc_privmsg"))
	assert.False(t, l.HasTag("irc_join"))
	assert.False(t, Line{}.HasTag(TagMessage))
}

func TestScan(t *testing.T) {
	lines := []Line{
		msg("oldest"),
		status("alice has joined"),
		msg("middle"),
		status("bob has quit"),
		msg("newest"),
	}

	tests := []struct {
		name string
		opts ScanOptions
		want []string
	}{
		{
			name: "newest first with filter",
			opts: ScanOptions{MaxEligible: 10, MaxRaw: 100, MessagesOnly: true},
			want: []string{"newest", "middle", "oldest"},
		},
		{
			name: "without filter every line is eligible",
			opts: ScanOptions{MaxEligible: 10, MaxRaw: 100},
			want: []string{"newest", "bob has quit", "middle", "alice has joined", "oldest"},
		},
		{
			name: "stops at max eligible",
			opts: ScanOptions{MaxEligible: 2, MaxRaw: 100, MessagesOnly: true},
			want: []string{"newest", "middle"},
		},
		{
			name: "skipped lines count toward max raw",
			opts: ScanOptions{MaxEligible: 10, MaxRaw: 3, MessagesOnly: true},
			want: []string{"newest", "middle"},
		},
		{
			name: "non-positive max raw is unbounded",
			opts: ScanOptions{MaxEligible: 10, MaxRaw: 0, MessagesOnly: true},
			want: []string{"newest", "middle", "oldest"},
		},
		{
			name: "zero eligible returns nothing",
			opts: ScanOptions{MaxEligible: 0, MaxRaw: 100},
			want: nil,
		},
		{
			name: "custom tag",
			opts: ScanOptions{MaxEligible: 10, MessagesOnly: true, MessageTag: TagStatus},
			want: []string{"bob has quit", "alice has joined"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(lines, tt.opts)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_EmptyHistory(t *testing.T) {
	assert.Empty(t, Scan(nil, ScanOptions{MaxEligible: 50, MaxRaw: 500}))
}
