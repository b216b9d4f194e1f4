// Package config provides configuration management for the Locale Manager.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: MySQL or SQLite connection details
//   - Storage: S3/MinIO credentials and the hand-off bucket
//   - Log: Logging level and format
//   - Translation: Cloud Translation API key, endpoint and batch size
//   - Localization: source locale, target locales, parallelism and cache TTL
//
// Every key maps to an environment variable, e.g. localization.target_langs
// is read from LOCALIZATION_TARGET_LANGS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
