package history

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the history tables. Timestamps are Unix milliseconds so
// both drivers read them back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    root TEXT NOT NULL,
    started_at INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    warnings INTEGER NOT NULL,
    errors INTEGER NOT NULL,
    success BOOLEAN NOT NULL,
    files TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_root ON runs(root);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);
`

const (
	insertSchemaVersion = `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`
	getSchemaVersion    = `SELECT MAX(version) FROM schema_version`

	insertRun = `
		INSERT INTO runs (id, session_id, root, started_at, duration_ms, warnings, errors, success, files)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectRuns = `
		SELECT id, session_id, root, started_at, duration_ms, warnings, errors, success, files
		FROM runs`

	countRuns = `SELECT COUNT(*) FROM runs`

	deleteRunsBefore = `DELETE FROM runs WHERE started_at < ?`
)
