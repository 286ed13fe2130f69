// Package database handles database connections.
//
// It wraps GORM to open either MySQL (shared history for a team) or SQLite
// (local history file, in-memory for tests) based on the application's
// configuration. The manifest feature stores discovery runs through it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
