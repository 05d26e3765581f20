package history

import (
	"time"

	"clockwork-hq/polc/pkg/lang/session"

	"github.com/google/uuid"
)

// Record is one stored parse run.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	SessionID string    `json:"session_id" yaml:"session_id"`
	Root      string    `json:"root" yaml:"root"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// DurationMS is the session wall time in milliseconds.
	DurationMS int64    `json:"duration_ms" yaml:"duration_ms"`
	Warnings   uint     `json:"warnings" yaml:"warnings"`
	Errors     uint     `json:"errors" yaml:"errors"`
	Success    bool     `json:"success" yaml:"success"`
	Files      []string `json:"files" yaml:"files"`
}

// Duration returns the session wall time.
func (r *Record) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// NewRecord builds a record for a finished session with a fresh id.
func NewRecord(result *session.Result) *Record {
	files := make([]string, len(result.Files))
	copy(files, result.Files)

	return &Record{
		ID:         uuid.NewString(),
		SessionID:  result.SessionID,
		Root:       result.Root,
		StartedAt:  result.Started,
		DurationMS: result.Duration.Milliseconds(),
		Warnings:   result.Warnings,
		Errors:     result.Errors,
		Success:    result.Success(),
		Files:      files,
	}
}
