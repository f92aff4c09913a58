// Package config resolves clinicctl settings.
//
// Values are layered with the following precedence, highest first:
//
//  1. Command-line flags
//  2. Environment variables (CLINIC_*, then the legacy VITE_* names)
//  3. A .env file in the working directory
//  4. Local config file (.clinicrc.yaml in the working directory)
//  5. Global config file ($XDG_CONFIG_HOME/clinicctl/config.yaml)
//  6. Defaults
//
// Config files are checked against an embedded JSON schema before they are
// merged. Config.Sources records which layer supplied each value.
package config
