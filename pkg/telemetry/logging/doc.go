// Package logging provides structured logging for polc.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with session ids and file names
//   - Configurable log levels (debug, info, warn, error)
//
// Library packages take a *slog.Logger; Logger.Slog hands one over.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logger.Info("Policy checked",
//	    "root", "policies/site.pol",
//	    "files", 12,
//	)
//
//	ctx = logging.WithRoot(ctx, "policies/site.pol")
//	logger.WithContext(ctx).Info("Re-parsing")  // includes root automatically
//
//	result, err := session.Run(path, doc, grammar, &session.Config{Logger: logger.Slog()})
package logging
