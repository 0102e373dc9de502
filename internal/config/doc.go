// Package config loads and validates the application configuration from
// environment variables and an optional YAML file.
package config
