// Package history stores a record of every parse run in SQLite.
//
// Each record carries the session id, the root file, when the run started,
// how long it took, its diagnostic counts and the files it visited. Records
// are listed newest first and pruned by age.
//
// Two drivers are supported and selected by HistoryConfig.Driver:
//
//   - "sqlite": modernc.org/sqlite, pure Go (default)
//   - "sqlite3": github.com/mattn/go-sqlite3, requires cgo
//
// Basic usage:
//
//	store, err := history.Open(&cfg.History)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	_, result, _ := lang.Run(path, sessCfg)
//	err = store.Save(ctx, history.NewRecord(result))
//
// The database runs in WAL mode with the configured busy timeout so that a
// watch process and a one-shot check can share it.
package history
