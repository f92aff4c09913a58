package config

import (
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
)

// Config is the resolved client configuration.
type Config struct {
	// APIURL is an explicit backend base URL. It wins over Docker.
	APIURL string `yaml:"apiUrl,omitempty" json:"apiUrl,omitempty"`
	// Docker selects the in-compose backend address when APIURL is empty.
	Docker bool `yaml:"docker" json:"docker"`
	// Timeout is the HTTP timeout in seconds.
	Timeout   int    `yaml:"timeout" json:"timeout"`
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	Tracing   bool   `yaml:"tracing" json:"tracing"`

	// Operations overrides catalog entries, keyed "entity.name".
	Operations map[string]clinic.Operation `yaml:"operations,omitempty" json:"operations,omitempty"`

	// ConfigFile is an explicit config file to load instead of the local one.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records the keys present in a loaded file, so that an
	// explicit false can be told apart from an absent boolean.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// Config sources.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceDotEnv  = "dotenv"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)
