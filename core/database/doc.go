// Package database handles connections to the grid's catalog database.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// properly configure MySQL connections based on the application's
// configuration: DSN construction with encoded credentials, connection and
// I/O timeouts, pool limits, and an initial ping so a dead catalog fails at
// startup rather than mid-run.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Catalog connection failed", zap.Error(err))
//	}
package database
