// Package health serves liveness and readiness probes for long-running
// polc processes.
//
// "polc watch" registers a "parse" check, failing until the most recent
// parse of the watched tree succeeded, and a "history" check that pings
// the history database when recording is enabled. The probes share the
// metrics listener:
//
//   - /healthz: 200 while the process is up
//   - /readyz: 200 when every check passes, 503 otherwise
//   - /version: build information
//
// Usage:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("history", store.Ping)
//	health.Register(mux, checker, Version, GitCommit, BuildDate)
package health
