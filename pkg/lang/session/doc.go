// Package session runs one parse of a policy file and every file it
// includes.
//
// A session owns a Context: the scanning engine, the include chain, the
// registry of file identities already opened, and the warning and error
// counters. The grammar receives the Context and drives it:
//
//	result, err := session.Run("site.pol", doc, grammar, nil)
//	if errors.Is(err, session.ErrParseFailed) {
//	    for _, d := range result.Diagnostics {
//	        fmt.Fprintln(os.Stderr, d.Format())
//	    }
//	}
//
// # Includes
//
// Context.Include resolves a relative include against the directory of the
// file being scanned and expands it as a glob. Matches are opened in
// ascending order. A file is identified by device and inode, so a file
// reached a second time, through any path or symlink, is skipped with a
// warning. This is what stops include loops.
//
// When the engine exhausts the active buffer the grammar calls
// Context.IncludeDone, which closes that file and resumes the file that
// included it, or reports Finished once the root file is done.
//
// # Diagnostics
//
// Warnf and Errorf record a diagnostic at the current file and line and
// log it through the session logger. Warnings never fail a parse; a single
// error does. Messages are limited to Config.MaxMessageLength bytes.
//
// # Concurrency
//
// Sessions share no state and may run in parallel. A Context must only be
// used by the goroutine running its session.
package session
