// Package database handles database connections and schema inspection.
//
// It wraps GORM and configures either a MySQL connection or a local SQLite
// file from the application's configuration. Error translation is enabled
// so unique index violations surface as gorm.ErrDuplicatedKey on both drivers.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table. The store uses it to verify
// that the localization table matches the expected model before writing.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "localization_records")
package database
