package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// SessionIDKey is the context key for parse session ids.
	SessionIDKey contextKey = "session_id"

	// RootKey is the context key for the root policy file of a parse.
	RootKey contextKey = "root"

	// FileKey is the context key for the file being processed.
	FileKey contextKey = "file"

	// CommandKey is the context key for the CLI command being run.
	CommandKey contextKey = "command"
)

// WithSessionID adds a parse session id to the context.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

// GetSessionID retrieves the parse session id from the context.
func GetSessionID(ctx context.Context) string {
	return stringValue(ctx, SessionIDKey)
}

// WithRoot adds the root policy file to the context.
func WithRoot(ctx context.Context, root string) context.Context {
	return context.WithValue(ctx, RootKey, root)
}

// GetRoot retrieves the root policy file from the context.
func GetRoot(ctx context.Context) string {
	return stringValue(ctx, RootKey)
}

// WithFile adds the file being processed to the context.
func WithFile(ctx context.Context, file string) context.Context {
	return context.WithValue(ctx, FileKey, file)
}

// GetFile retrieves the file being processed from the context.
func GetFile(ctx context.Context) string {
	return stringValue(ctx, FileKey)
}

// WithCommand adds the CLI command name to the context.
func WithCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, CommandKey, command)
}

// GetCommand retrieves the CLI command name from the context.
func GetCommand(ctx context.Context) string {
	return stringValue(ctx, CommandKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any
	for _, key := range []contextKey{CommandKey, RootKey, FileKey, SessionIDKey} {
		if v := stringValue(ctx, key); v != "" {
			fields = append(fields, string(key), v)
		}
	}
	return fields
}
