package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/chatcomplete/internal/config"
	"github.com/NikitaCOEUR/chatcomplete/internal/history"
	"github.com/NikitaCOEUR/chatcomplete/internal/host"
	"github.com/NikitaCOEUR/chatcomplete/internal/logger"
)

// schemaComment points YAML language servers at the published schema
const schemaComment = "# yaml-language-server: $schema=" + config.SchemaID + "\n"

// loadConfig loads the effective configuration and rejects invalid settings
func loadConfig(explicit string, log *logger.Logger) (*config.Info, error) {
	info, err := config.LoadEffective(explicit)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("path", info.Path).
		Str("source", string(info.Source)).
		Msg("Loaded configuration")

	if err := info.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return info, nil
}

// loadBuffer creates an in-memory host with one view per log file
func loadBuffer(cfg *config.Config, logs []string, log *logger.Logger) (*host.Buffer, error) {
	buf := host.New(host.Options{
		Nick:         cfg.Nick,
		MessagesOnly: cfg.MessagesOnly,
		MessageTag:   cfg.MessageTag,
	}, log)

	for _, path := range logs {
		lines, err := history.LoadFile(path)
		if err != nil {
			return nil, err
		}
		buf.AddView(filepath.Base(path), lines)
		log.Debug().Str("path", path).Int("lines", len(lines)).Msg("Loaded log")
	}
	return buf, nil
}

// defaultConfigPath returns the file init and edit work on
func defaultConfigPath(global bool) (string, error) {
	if global {
		dir, err := config.GetGlobalConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "config.yml"), nil
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return filepath.Join(currentDir, config.AppName+".yml"), nil
}

func writeSampleConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	content := append([]byte(schemaComment), config.SampleConfig()...)
	return os.WriteFile(path, content, 0644)
}
