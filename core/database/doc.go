// Package database handles connections to the key-mapping database.
//
// It provides a thin wrapper around GORM that configures MySQL for
// deployments and SQLite for tests and small single-user installs. The
// database stores the import runs and the source-key to catalog-id rows
// owned by the keymap package; it never touches the target catalog's own
// storage, which is reached exclusively through its HTTP API.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
package database
