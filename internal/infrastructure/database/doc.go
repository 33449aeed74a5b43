// Package database provides SQLite connectivity for Cuepad Core.
//
// The database holds the press history journal. It is not required for
// playback: the binary starts without it when the file cannot be opened.
//
// This package manages:
//   - Connection setup with WAL mode and a busy timeout
//   - Versioned schema migrations registered by the migrations package
//   - Transactions via WithTx
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
