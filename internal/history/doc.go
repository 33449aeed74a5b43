// Package history journals pad presses to SQLite.
//
// The journal is an audit log for the operator ("what was pressed during the
// set"), not scheduler state: nothing in playback reads it back.
//
//	repo := history.NewSQLiteRepository(db.DB)
//	journal := history.NewJournal(repo, 0)
//	board.AddObserver(journal)
//	go journal.Run(ctx)
package history
