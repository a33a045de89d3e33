// Package config loads application configuration from environment variables.
//
// Configuration is read once at process start via Load(), then checked with
// Validate(), which reports every failure at once using errors.Join. There
// are no ambient globals: the loaded Config is passed explicitly to the
// components that need it.
package config
