// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, config file, .env file, environment
// variables). The result is an immutable Config value that is handed to the
// components that need it instead of being read ad hoc from process state.
package config
