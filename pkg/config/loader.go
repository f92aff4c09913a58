package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "clinicctl"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".clinicrc.yaml", ".clinicrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches dir for .clinicrc.yaml or .clinicrc.yml.
// Returns empty string if not found.
func FindLocalConfig(dir string) string {
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a Config from a YAML file. The file is validated
// against the schema before it is decoded.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(path, data)
}

// ParseConfig decodes YAML config data. path is only used in errors.
func ParseConfig(path string, data []byte) (*Config, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, yamlError(path, err)
	}

	cfg := &Config{
		Sources:   make(map[string]string),
		SetFields: make(map[string]bool),
	}
	if doc == nil {
		return cfg, nil
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, &ConfigError{Path: path, Message: "top level must be a mapping"}
	}

	if err := ValidateDocument(doc); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, yamlError(path, err)
	}
	for key := range doc.(map[string]any) {
		cfg.SetFields[key] = true
	}
	return cfg, nil
}

// yamlError converts a yaml.v3 error, whose message starts with
// "yaml: line N:", into a ConfigError carrying the line.
func yamlError(path string, err error) error {
	msg := err.Error()
	cerr := &ConfigError{Path: path, Message: msg}
	if rest, ok := strings.CutPrefix(msg, "yaml: line "); ok {
		if num, tail, ok := strings.Cut(rest, ":"); ok {
			if line, convErr := strconv.Atoi(num); convErr == nil {
				cerr.Line = line
				cerr.Message = strings.TrimSpace(tail)
			}
		}
	}
	return cerr
}

// ConfigError represents a configuration file error with location info.
type ConfigError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s (line %d, column %d): %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("%s (line %d): %s", e.Path, e.Line, e.Message)
	default:
		return e.Path + ": " + e.Message
	}
}

// LoadOptions controls LoadAll.
type LoadOptions struct {
	// Dir is searched for the local config and .env files. Defaults to the
	// working directory.
	Dir string
	// ConfigFile replaces the local config file when set.
	ConfigFile string
	// SkipGlobal ignores the global config file.
	SkipGlobal bool
}

// LoadAll loads configuration from every source but flags and merges them.
// Precedence: env > .env > local (or explicit) config > global config > defaults.
// Missing files are skipped; malformed ones are errors.
func LoadAll(opts LoadOptions) (*Config, error) {
	cfg := NewDefault()

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	if !opts.SkipGlobal {
		if path := FindGlobalConfig(); path != "" {
			global, err := LoadConfigFile(path)
			if err != nil {
				return nil, err
			}
			MergeConfig(cfg, global, SourceGlobal)
		}
	}

	explicit := opts.ConfigFile
	if explicit == "" {
		explicit = os.Getenv(EnvConfig)
	}
	if explicit != "" {
		file, err := LoadConfigFile(explicit)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", explicit)
			}
			return nil, err
		}
		MergeConfig(cfg, file, SourceFile)
		cfg.ConfigFile = explicit
	} else if path := FindLocalConfig(dir); path != "" {
		local, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, local, SourceLocal)
	}

	if err := LoadDotEnv(cfg, filepath.Join(dir, DotEnvFile)); err != nil {
		return nil, err
	}
	LoadEnvConfig(cfg)

	return cfg, nil
}
