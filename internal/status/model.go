package status

import (
	"time"

	"github.com/NikitaCOEUR/chatcomplete/internal/config"
)

// Data holds everything the status command displays
type Data struct {
	Version string
	// Now is the reference time for relative timestamps
	Now time.Time

	ConfigPath   string
	ConfigSource config.Source
	Config       *config.Config
	// Overrides are the keys the config file changes from the defaults
	Overrides []string
	// Problems are the validation errors of the effective configuration
	Problems []config.ValidationError

	Logs []LogInfo
}

// LogInfo summarises one channel log
type LogInfo struct {
	Path string
	Size int64
	// Err is set when the log could not be read
	Err string

	Lines    int
	Messages int
	Nicks    int
	// Eligible is the number of lines completion would read with the current config
	Eligible int
	Latest   time.Time
}
