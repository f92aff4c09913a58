package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvAPIURL    = "CLINIC_API_URL"
	EnvDocker    = "CLINIC_DOCKER_ENV"
	EnvTimeout   = "CLINIC_TIMEOUT"
	EnvLogLevel  = "CLINIC_LOG_LEVEL"
	EnvLogFormat = "CLINIC_LOG_FORMAT"
	EnvTracing   = "CLINIC_TRACING"
	EnvConfig    = "CLINIC_CONFIG"

	// Names used by the web front-end's build environment.
	EnvLegacyAPIURL = "VITE_API_URL"
	EnvLegacyDocker = "VITE_DOCKER_ENV"
)

// DotEnvFile is the .env file read from the working directory.
const DotEnvFile = ".env"

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment.
func LoadEnvConfig(cfg *Config) {
	applyEnv(cfg, os.LookupEnv, SourceEnv)
}

// LoadDotEnv applies the variables of a .env file. Variables set to a
// non-blank value in the process environment are skipped, so the real
// environment still wins. CLINIC_CONFIG is only read from the real
// environment: the config file is chosen before .env is loaded.
// A missing file is not an error.
func LoadDotEnv(cfg *Config, path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &ConfigError{Path: path, Message: err.Error()}
	}
	lookup := func(key string) (string, bool) {
		if key == EnvConfig {
			return "", false
		}
		if v, set := os.LookupEnv(key); set && strings.TrimSpace(v) != "" {
			return "", false
		}
		v, ok := vars[key]
		return v, ok
	}
	applyEnv(cfg, lookup, SourceDotEnv)
	return nil
}

// applyEnv reads each setting through lookup. The CLINIC_* name is
// preferred over its legacy VITE_* equivalent.
func applyEnv(cfg *Config, lookup func(string) (string, bool), source string) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}
	get := func(names ...string) (string, bool) {
		for _, name := range names {
			if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v), true
			}
		}
		return "", false
	}

	if v, ok := get(EnvAPIURL, EnvLegacyAPIURL); ok {
		cfg.APIURL = v
		cfg.Sources["apiUrl"] = source
	}
	if v, ok := get(EnvDocker, EnvLegacyDocker); ok {
		cfg.Docker = parseBool(v)
		cfg.Sources["docker"] = source
	}
	if v, ok := get(EnvTimeout); ok {
		if timeout, err := strconv.Atoi(v); err == nil {
			cfg.Timeout = timeout
			cfg.Sources["timeout"] = source
		}
	}
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = source
	}
	if v, ok := get(EnvLogFormat); ok {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = source
	}
	if v, ok := get(EnvTracing); ok {
		cfg.Tracing = parseBool(v)
		cfg.Sources["tracing"] = source
	}
	if v, ok := get(EnvConfig); ok {
		cfg.ConfigFile = v
		cfg.Sources["configFile"] = source
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
