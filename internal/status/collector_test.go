package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/NikitaCOEUR/chatcomplete/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	log := filepath.Join(dir, "chan.log")
	require.NoError(t, os.WriteFile(log, []byte(
		"2024-05-01 10:00:00\t-->\talice has joined\n"+
			"2024-05-01 10:01:00\talice\thello everyone\n"+
			"2024-05-01 10:02:00\tbob\thi alice\n"+
			"2024-05-01 10:03:00\talice\thow is it going\n"), 0644))

	cfg := config.Defaults()
	cfg.Lines = 2
	info := &config.Info{Source: config.SourceFlag, Path: "custom.yml", Config: cfg, Overrides: []string{"lines"}}

	data := Collect(info, []string{log, filepath.Join(dir, "missing.log")})

	assert.Empty(t, data.Problems)
	assert.Equal(t, []string{"lines"}, data.Overrides)
	require.Len(t, data.Logs, 2)

	got := data.Logs[0]
	assert.Empty(t, got.Err)
	assert.Equal(t, 4, got.Lines)
	assert.Equal(t, 3, got.Messages)
	assert.Equal(t, 2, got.Nicks)
	assert.Equal(t, 2, got.Eligible)
	assert.Equal(t, 3, got.Latest.Minute())
	assert.Greater(t, got.Size, int64(0))

	assert.NotEmpty(t, data.Logs[1].Err)
}

func TestCollect_InvalidConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.WordStart = "("
	cfg.KeyForward = cfg.KeyBackward

	data := Collect(&config.Info{Config: cfg}, nil)

	require.Len(t, data.Problems, 2)
	assert.Equal(t, "word_start", data.Problems[0].Field)
	assert.Equal(t, "key_forward", data.Problems[1].Field)
	assert.Empty(t, data.Logs)
}
