// Package watch re-parses a policy tree when any of its files change.
//
// A Watcher parses the root once, follows every file the session opened,
// and parses again after a debounced change. The followed set is replaced
// after every parse, so files pulled in by a new include are picked up and
// files no longer included are dropped.
//
//	w, err := watch.New(watch.Options{
//		Root:      "site.pol",
//		Debounce:  250 * time.Millisecond,
//		Schedule:  "*/15 * * * *",
//		OnOutcome: func(o watch.Outcome) { fmt.Println(o) },
//	})
//	if err != nil {
//		return err
//	}
//	return w.Run(ctx)
//
// The building blocks are exported on their own: FileWatcher wraps
// fsnotify, Debouncer coalesces event bursts and Scheduler runs cron jobs.
package watch
