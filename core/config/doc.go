// Package config provides configuration management for the warden.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults taken from struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Storage: object store endpoint, credentials and resource buckets
//   - Database: MySQL catalog connection details
//   - Log: logging level and format
//   - Reconcile: worker counts, replica expectations and repair defaults
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Endpoint)
package config
