// Package config loads and validates Spyglass client configuration.
//
// Configuration is read from a YAML file, filled with defaults, and
// optionally overridden by SPYGLASS_* environment variables. Library
// users that never touch files can build a configuration from the
// environment alone with FromEnv.
//
// The loading sequence of LoadConfigWithEnvOverrides is:
//
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
//
// A Watcher can reload the file on change for long-lived processes.
package config
