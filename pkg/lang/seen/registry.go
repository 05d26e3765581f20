package seen

import (
	"errors"
	"fmt"
	"io"
)

// ErrNothingOpen is returned when a close is requested but every registered
// file has already been closed.
var ErrNothingOpen = errors.New("no open file to close")

// OrderError is returned by CloseLatest when the most recently opened file
// is not the one the caller expected to close. Includes must be closed in
// the reverse order they were opened.
type OrderError struct {
	Want Identity // identity the caller asked to close
	Got  Identity // identity of the most recent open entry
}

// Error implements the error interface.
func (e *OrderError) Error() string {
	return fmt.Sprintf("include closed out of order: expected %s, most recent open is %s", e.Want, e.Got)
}

// Entry is one file opened during a session.
// The handle is dropped once the file is closed but the entry stays, so the
// identity keeps blocking re-inclusion for the rest of the session.
type Entry struct {
	Identity Identity
	handle   io.Closer
}

// IsOpen reports whether the entry still holds an open handle.
func (e *Entry) IsOpen() bool {
	return e.handle != nil
}

// Registry records every file identity opened during a parse session.
// It is not safe for concurrent use; one registry belongs to one session.
type Registry struct {
	entries []*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make([]*Entry, 0),
	}
}

// IsSeen returns true if a file with the same device and inode was registered.
func (r *Registry) IsSeen(id Identity) bool {
	for _, e := range r.entries {
		if e.Identity == id {
			return true
		}
	}
	return false
}

// Register records an opened file. Callers check IsSeen first.
func (r *Registry) Register(id Identity, handle io.Closer) {
	r.entries = append(r.entries, &Entry{Identity: id, handle: handle})
}

// CloseOne closes the most recently registered entry that is still open.
func (r *Registry) CloseOne() error {
	e := r.latestOpen()
	if e == nil {
		return ErrNothingOpen
	}
	return r.close(e)
}

// CloseLatest closes the most recently registered open entry, provided it
// has identity id. Nothing is closed when the identities differ.
func (r *Registry) CloseLatest(id Identity) error {
	e := r.latestOpen()
	if e == nil {
		return ErrNothingOpen
	}
	if e.Identity != id {
		return &OrderError{Want: id, Got: e.Identity}
	}
	return r.close(e)
}

// CloseAll closes every entry that is still open and returns how many it closed.
func (r *Registry) CloseAll() int {
	n := 0
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].IsOpen() {
			_ = r.close(r.entries[i])
			n++
		}
	}
	return n
}

// Len returns the number of registered identities, open or closed.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Open returns the number of entries still holding an open handle.
func (r *Registry) Open() int {
	n := 0
	for _, e := range r.entries {
		if e.IsOpen() {
			n++
		}
	}
	return n
}

func (r *Registry) latestOpen() *Entry {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].IsOpen() {
			return r.entries[i]
		}
	}
	return nil
}

func (r *Registry) close(e *Entry) error {
	h := e.handle
	e.handle = nil
	return h.Close()
}
