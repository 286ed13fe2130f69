// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port and the API key protecting the
// discovery endpoints. The start command reads it through core/config.
package server
