package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	_ "modernc.org/sqlite"          // registers "sqlite"

	"clockwork-hq/polc/pkg/config"
)

// DefaultListLimit is used by List when Query.Limit is not positive.
const DefaultListLimit = 20

// Recorder receives history metrics. *metrics.Collector implements it.
type Recorder interface {
	RecordHistoryWrite(err error)
	RecordPruned(n int64)
}

type noopRecorder struct{}

func (noopRecorder) RecordHistoryWrite(error) {}
func (noopRecorder) RecordPruned(int64)       {}

// Query filters List results.
type Query struct {
	// Root restricts results to runs of this root file.
	Root string

	// Limit caps the number of results. Default: DefaultListLimit
	Limit int
}

// Store persists parse records in SQLite.
type Store struct {
	db       *sql.DB
	config   *config.HistoryConfig
	logger   *slog.Logger
	recorder Recorder
}

// Open opens (creating if needed) the history database described by cfg
// and initializes its schema. logger may be nil.
func Open(cfg *config.HistoryConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "history")

	if cfg.Path == "" {
		return nil, newStorageError(cfg.Driver, "open", errors.New("database path cannot be empty"))
	}
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, newStorageError(cfg.Driver, "open", err)
		}
	}

	dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, newStorageError(cfg.Driver, "open", err)
	}

	maxConns := cfg.MaxOpenConns
	if maxConns < 1 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	s := &Store{
		db:       db,
		config:   cfg,
		logger:   logger,
		recorder: noopRecorder{},
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("history store opened",
		"path", cfg.Path,
		"driver", cfg.Driver,
		"max_open_conns", maxConns,
	)

	return s, nil
}

// dataSourceName builds a DSN that applies WAL mode and the busy timeout
// on every pooled connection. The two drivers spell pragmas differently.
func dataSourceName(cfg *config.HistoryConfig) (string, error) {
	busy := cfg.BusyTimeout.Milliseconds()
	switch cfg.Driver {
	case "sqlite":
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)", cfg.Path, busy), nil
	case "sqlite3":
		return fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", cfg.Path, busy), nil
	default:
		return "", newStorageError(cfg.Driver, "open", fmt.Errorf("unsupported driver %q", cfg.Driver))
	}
}

// initialize creates the schema and checks its version.
func (s *Store) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return newStorageError(s.config.Driver, "create_schema", err)
	}

	if _, err := s.db.Exec(insertSchemaVersion, SchemaVersion); err != nil {
		return newStorageError(s.config.Driver, "insert_schema_version", err)
	}

	var version int
	if err := s.db.QueryRow(getSchemaVersion).Scan(&version); err != nil {
		return newStorageError(s.config.Driver, "get_schema_version", err)
	}
	if version != SchemaVersion {
		return newStorageError(s.config.Driver, "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	return nil
}

// SetRecorder directs write and prune counts to r.
func (s *Store) SetRecorder(r Recorder) {
	if r == nil {
		r = noopRecorder{}
	}
	s.recorder = r
}

// Save inserts a record.
func (s *Store) Save(ctx context.Context, record *Record) error {
	err := s.save(ctx, record)
	s.recorder.RecordHistoryWrite(err)
	return err
}

func (s *Store) save(ctx context.Context, record *Record) error {
	files, err := json.Marshal(record.Files)
	if err != nil {
		return newStorageError(s.config.Driver, "save", err)
	}

	_, err = s.db.ExecContext(ctx, insertRun,
		record.ID, record.SessionID, record.Root,
		record.StartedAt.UnixMilli(), record.DurationMS,
		int64(record.Warnings), int64(record.Errors), record.Success,
		string(files),
	)
	if err != nil {
		return newStorageError(s.config.Driver, "save", err)
	}

	s.logger.Debug("parse run recorded", "id", record.ID, "root", record.Root)
	return nil
}

// Get returns the record with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+" WHERE id = ?", id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, newStorageError(s.config.Driver, "get", err)
	}
	return record, nil
}

// List returns records newest first.
func (s *Store) List(ctx context.Context, q Query) ([]*Record, error) {
	var (
		where []string
		args  []any
	)
	if q.Root != "" {
		where = append(where, "root = ?")
		args = append(args, q.Root)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := selectRuns
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY started_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newStorageError(s.config.Driver, "list", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, newStorageError(s.config.Driver, "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError(s.config.Driver, "list", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, countRuns).Scan(&n); err != nil {
		return 0, newStorageError(s.config.Driver, "count", err)
	}
	return n, nil
}

// PruneBefore deletes records that started before cutoff and returns how
// many were removed.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, deleteRunsBefore, cutoff.UnixMilli())
	if err != nil {
		return 0, newStorageError(s.config.Driver, "prune", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, newStorageError(s.config.Driver, "prune", err)
	}

	s.recorder.RecordPruned(n)
	return n, nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return newStorageError(s.config.Driver, "ping", err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return newStorageError(s.config.Driver, "close", err)
	}
	s.logger.Debug("history store closed")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record    Record
		startedAt int64
		files     string
	)
	err := row.Scan(
		&record.ID, &record.SessionID, &record.Root,
		&startedAt, &record.DurationMS,
		&record.Warnings, &record.Errors, &record.Success,
		&files,
	)
	if err != nil {
		return nil, err
	}

	record.StartedAt = time.UnixMilli(startedAt)
	if err := json.Unmarshal([]byte(files), &record.Files); err != nil {
		return nil, fmt.Errorf("decode files of %s: %w", record.ID, err)
	}
	return &record, nil
}
