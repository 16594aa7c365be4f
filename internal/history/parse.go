package history

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/NikitaCOEUR/chatcomplete/internal/cerrors"
	"github.com/tidwall/gjson"
)

// Format is a channel log format
type Format int

const (
	// FormatAuto sniffs the format from the first non-empty line
	FormatAuto Format = iota
	// FormatText is a plain chat log: "<nick> text" lines, or
	// tab-separated "date<TAB>prefix<TAB>text" lines
	FormatText
	// FormatJSONL is one JSON object per line with message, prefix, tags, time
	FormatJSONL
)

// timeLayout is the date format of tab-separated logs
const timeLayout = "2006-01-02 15:04:05"

// statusPrefixes mark join/part/network lines in tab-separated logs
var statusPrefixes = map[string]bool{
	"-->": true,
	"<--": true,
	"--":  true,
	"=!=": true,
	"*":   true,
	" *":  true,
}

// FormatForPath picks a format from the file extension
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson", ".json":
		return FormatJSONL
	case ".log", ".txt":
		return FormatText
	}
	return FormatAuto
}

// LoadFile reads a channel log from disk
func LoadFile(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cerrors.NewNotFoundError(path, "log file not found: "+path)
		}
		return nil, cerrors.NewHistoryError(path, 0, "failed to open log", err)
	}
	defer f.Close()

	lines, err := ParseLog(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// ParseLog parses a channel log, oldest line first
func ParseLog(r io.Reader, format Format) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		raw := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}

		if format == FormatAuto {
			format = FormatText
			if strings.HasPrefix(strings.TrimSpace(raw), "{") {
				format = FormatJSONL
			}
		}

		switch format {
		case FormatJSONL:
			line, ok, err := parseJSONLine(raw)
			if err != nil {
				return nil, cerrors.NewHistoryError("", n, fmt.Sprintf("line %d", n), err)
			}
			if ok {
				lines = append(lines, line)
			}
		default:
			lines = append(lines, parseTextLine(raw))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, cerrors.NewHistoryError("", n, "failed to read log", err)
	}
	return lines, nil
}

func parseJSONLine(raw string) (Line, bool, error) {
	if !gjson.Valid(raw) {
		return Line{}, false, fmt.Errorf("invalid JSON")
	}
	doc := gjson.Parse(raw)

	msg := doc.Get("message")
	if !msg.Exists() {
		return Line{}, false, nil
	}

	line := Line{
		Prefix: doc.Get("prefix").String(),
		Text:   msg.String(),
	}
	for _, tag := range doc.Get("tags").Array() {
		line.Tags = append(line.Tags, tag.String())
	}
	if ts := doc.Get("time"); ts.Exists() {
		if t, err := time.Parse(time.RFC3339, ts.String()); err == nil {
			line.Time = t
		}
	}
	return line, true, nil
}

func parseTextLine(raw string) Line {
	if parts := strings.SplitN(raw, "\t", 3); len(parts) == 3 {
		line := Line{Prefix: parts[1], Text: parts[2]}
		if t, err := time.ParseInLocation(timeLayout, parts[0], time.Local); err == nil {
			line.Time = t
		}
		if statusPrefixes[parts[1]] || parts[1] == "" {
			line.Tags = []string{TagStatus}
		} else {
			line.Tags = []string{TagMessage}
		}
		return line
	}

	if strings.HasPrefix(raw, "<") {
		if end := strings.Index(raw, ">"); end > 1 {
			return Line{
				Prefix: raw[1:end],
				Text:   strings.TrimPrefix(raw[end+1:], " "),
				Tags:   []string{TagMessage},
			}
		}
	}

	return Line{Text: raw, Tags: []string{TagStatus}}
}
