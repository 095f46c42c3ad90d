// Package config defines the application configuration and its loading
// rules. Values come from an optional YAML file and from environment
// variables with the ARCANA_ prefix; environment variables take precedence.
// The loaded configuration is validated before use.
package config
