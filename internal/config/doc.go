// Package config loads and validates the server configuration.
//
// Values are gathered from environment variables, command-line flags, and
// an optional JSON file, then merged in that order with earlier sources
// taking precedence. The merged result is validated before the application
// starts; a missing DSN, sign key, or token duration aborts startup.
package config
