// Package config provides configuration management for the table importer.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: S3/MinIO credentials and the manifest bucket
//   - Database: run history connection (sqlite or mysql)
//   - Log: Logging level and format
//   - Importer: data directory, file/sheet patterns and naming formats
//   - Manifest: output format and publication prefix
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings, err := cfg.Importer.Compile()
package config
