package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/chatcomplete/internal/logger"
	"github.com/NikitaCOEUR/chatcomplete/internal/tui"
)

// ChatParams contains parameters for the Chat command
type ChatParams struct {
	ConfigPath string
	LogLevel   string
	// LogFile receives log output; the terminal belongs to the client
	LogFile  string
	Logs     []string
	NoFollow bool
}

// Chat starts the interactive chat client
func Chat(params ChatParams) error {
	log := logger.Discard()
	if params.LogFile != "" {
		f, err := os.OpenFile(params.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log = logger.New(params.LogLevel, f)
	}

	info, err := loadConfig(params.ConfigPath, log)
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Config: info.Config,
		Logs:   params.Logs,
		Log:    log,
	}, !params.NoFollow)
}
