// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Upstream credentials may also be supplied via the DB_CLIENT_ID and
// DB_API_KEY environment variables, which take precedence over the file.
package config
