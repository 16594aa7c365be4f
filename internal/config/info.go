package config

import (
	"os"

	"github.com/NikitaCOEUR/chatcomplete/internal/cerrors"
)

// Source says where the effective configuration came from
type Source string

const (
	SourceDefaults Source = "defaults"
	SourceGlobal   Source = "global"
	SourceFlag     Source = "flag"
)

// Info describes the resolved configuration file
type Info struct {
	Path   string
	Source Source
	Config *Config
	// Overrides lists the keys the file sets on top of the defaults
	Overrides []string
}

// Resolve picks the config file: explicit (from --config) must exist;
// otherwise the global file is used when present, else only the defaults.
func Resolve(explicit string) (string, Source, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", "", cerrors.NewNotFoundError(explicit, "config file not found: "+explicit)
		}
		return explicit, SourceFlag, nil
	}
	if path := FindGlobalConfig(); path != "" {
		return path, SourceGlobal, nil
	}
	return "", SourceDefaults, nil
}

// LoadEffective resolves and loads the configuration
func LoadEffective(explicit string) (*Info, error) {
	path, source, err := Resolve(explicit)
	if err != nil {
		return nil, err
	}
	l := New()
	cfg, err := l.Load(path)
	if err != nil {
		return nil, err
	}
	return &Info{Path: path, Source: source, Config: cfg, Overrides: l.Overrides()}, nil
}
