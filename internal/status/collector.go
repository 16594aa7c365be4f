// Package status collects and renders a summary of the effective
// configuration and of the channel logs completion reads from.
package status

import (
	"os"
	"time"

	"github.com/NikitaCOEUR/chatcomplete/internal/config"
	"github.com/NikitaCOEUR/chatcomplete/internal/history"
	"github.com/NikitaCOEUR/chatcomplete/pkg/version"
)

// Collect gathers status information for info and the given log files.
// Unreadable logs are reported in their LogInfo rather than failing.
func Collect(info *config.Info, logs []string) *Data {
	data := &Data{
		Version:      version.Version,
		Now:          time.Now(),
		ConfigPath:   info.Path,
		ConfigSource: info.Source,
		Config:       info.Config,
		Overrides:    info.Overrides,
		Logs:         make([]LogInfo, 0, len(logs)),
	}

	if err := info.Config.Validate(); err != nil {
		data.Problems = config.ToValidationErrors(err)
	}

	for _, path := range logs {
		data.Logs = append(data.Logs, collectLog(path, info.Config))
	}
	return data
}

func collectLog(path string, cfg *config.Config) LogInfo {
	li := LogInfo{Path: path}

	if st, err := os.Stat(path); err == nil {
		li.Size = st.Size()
	}

	lines, err := history.LoadFile(path)
	if err != nil {
		li.Err = err.Error()
		return li
	}

	tag := cfg.MessageTag
	if tag == "" {
		tag = history.TagMessage
	}

	nicks := make(map[string]struct{})
	li.Lines = len(lines)
	for _, l := range lines {
		if l.HasTag(tag) {
			li.Messages++
			if l.Prefix != "" {
				nicks[l.Prefix] = struct{}{}
			}
		}
		if l.Time.After(li.Latest) {
			li.Latest = l.Time
		}
	}
	li.Nicks = len(nicks)

	li.Eligible = len(history.Scan(lines, history.ScanOptions{
		MaxEligible:  cfg.Lines,
		MaxRaw:       cfg.MaxRawLines,
		MessagesOnly: cfg.MessagesOnly,
		MessageTag:   tag,
	}))
	return li
}
