// Package config loads chatcomplete settings: embedded defaults overlaid by an
// optional YAML, TOML or JSON file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/chatcomplete/internal/cerrors"
	"github.com/NikitaCOEUR/chatcomplete/internal/completion"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed defaults.yml
var defaultsYAML []byte

// SupportedConfigNames contains the config file names looked up in the
// global config directory, in order of preference
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// AppName names the config directory under $XDG_CONFIG_HOME
const AppName = "chatcomplete"

// Config holds every setting. Field tags drive both koanf and the JSON Schema.
type Config struct {
	WordStart        string `koanf:"word_start" json:"word_start,omitempty" jsonschema:"minLength=1,description=Regex matching the partial word that ends at the cursor"`
	WordContinuation string `koanf:"word_continuation" json:"word_continuation,omitempty" jsonschema:"minLength=1,description=Regex matching what follows the partial word in history"`
	Lines            int    `koanf:"lines" json:"lines,omitempty" jsonschema:"minimum=1,default=50,description=Number of message lines to look through"`
	MaxRawLines      int    `koanf:"max_raw_lines" json:"max_raw_lines,omitempty" jsonschema:"minimum=0,default=500,description=Lines examined at most including status lines (0 means no limit)"`
	MessagesOnly     bool   `koanf:"messages_only" json:"messages_only,omitempty" jsonschema:"default=true,description=Skip lines that are not chat messages"`
	MessageTag       string `koanf:"message_tag" json:"message_tag,omitempty" jsonschema:"description=Tag marking a chat message"`
	FallbackBackward string `koanf:"fallback_backward" json:"fallback_backward,omitempty" jsonschema:"description=Command run by the default trigger when there is no word before the cursor"`
	FallbackForward  string `koanf:"fallback_forward" json:"fallback_forward,omitempty" jsonschema:"description=Command run by the reverse trigger when there is no word before the cursor"`
	NoticeTemplate   string `koanf:"notice_template" json:"notice_template,omitempty" jsonschema:"description=Template shown when nothing matches (empty disables)"`
	KeyBackward      string `koanf:"key_backward" json:"key_backward,omitempty" jsonschema:"description=Chat key for the default trigger"`
	KeyForward       string `koanf:"key_forward" json:"key_forward,omitempty" jsonschema:"description=Chat key for the reverse trigger"`
	Nick             string `koanf:"nick" json:"nick,omitempty" jsonschema:"description=Nick used for lines sent from the chat client"`
}

// Loader loads configuration files on top of the embedded defaults
type Loader struct {
	overrides []string
}

// New creates a new config loader
func New() *Loader {
	return &Loader{}
}

// SampleConfig returns the commented default configuration
func SampleConfig() []byte {
	return defaultsYAML
}

// Defaults returns the embedded default configuration
func Defaults() *Config {
	cfg, err := New().Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads the defaults and then path, if not empty
func (l *Loader) Load(path string) (*Config, error) {
	k := koanf.New(".")
	var overrides []string

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, cerrors.NewConfigurationError(path, "unsupported config file", err)
		}
		fk := koanf.New(".")
		if err := fk.Load(file.Provider(path), parser); err != nil {
			return nil, cerrors.NewConfigurationError(path, "failed to load config", err)
		}
		if err := k.Merge(fk); err != nil {
			return nil, cerrors.NewConfigurationError(path, "failed to merge config", err)
		}
		overrides = fk.Keys()
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, cerrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}

	l.overrides = overrides
	return cfg, nil
}

// Overrides returns the sorted keys set by the last loaded file
func (l *Loader) Overrides() []string {
	return l.overrides
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// GetGlobalConfigDir returns $XDG_CONFIG_HOME/chatcomplete (~/.config by default)
func GetGlobalConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppName), nil
}

// FindGlobalConfig returns the first supported config file in the global
// config directory, or "" when there is none
func FindGlobalConfig() string {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// EngineOptions compiles the patterns and notice template for the completion engine
func (c *Config) EngineOptions() (completion.Options, error) {
	wordStart, err := completion.CompilePattern(c.WordStart)
	if err != nil {
		return completion.Options{}, cerrors.NewPatternError("word_start", c.WordStart, err)
	}
	continuation, err := completion.CompilePattern(c.WordContinuation)
	if err != nil {
		return completion.Options{}, cerrors.NewPatternError("word_continuation", c.WordContinuation, err)
	}
	notice, err := completion.ParseNotice(c.NoticeTemplate)
	if err != nil {
		return completion.Options{}, cerrors.NewConfigurationError("", "invalid notice_template", err)
	}

	return completion.Options{
		WordStart:        wordStart,
		Continuation:     continuation,
		MaxEligible:      c.Lines,
		MaxRaw:           c.MaxRawLines,
		FallbackBackward: c.FallbackBackward,
		FallbackForward:  c.FallbackForward,
		Notice:           notice,
	}, nil
}
