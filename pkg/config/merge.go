package config

import (
	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/clinic"
)

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *Config, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	if source.APIURL != "" {
		target.APIURL = source.APIURL
		target.Sources["apiUrl"] = sourceType
	}
	if boolIsSet(source, "docker") {
		target.Docker = source.Docker
		target.Sources["docker"] = sourceType
	}
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}
	if source.LogLevel != "" {
		target.LogLevel = source.LogLevel
		target.Sources["logLevel"] = sourceType
	}
	if source.LogFormat != "" {
		target.LogFormat = source.LogFormat
		target.Sources["logFormat"] = sourceType
	}
	if boolIsSet(source, "tracing") {
		target.Tracing = source.Tracing
		target.Sources["tracing"] = sourceType
	}
	if source.ConfigFile != "" {
		target.ConfigFile = source.ConfigFile
		target.Sources["configFile"] = sourceType
	}
	if len(source.Operations) > 0 {
		if target.Operations == nil {
			target.Operations = make(map[string]clinic.Operation, len(source.Operations))
		}
		for key, op := range source.Operations {
			target.Operations[key] = op
			target.Sources["operations."+key] = sourceType
		}
	}
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config. Without SetFields only true counts
// as set.
func boolIsSet(cfg *Config, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "docker":
		return cfg.Docker
	case "tracing":
		return cfg.Tracing
	}
	return false
}
