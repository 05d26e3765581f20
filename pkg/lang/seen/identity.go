package seen

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ErrNotRegular is returned by IdentityOf when the path exists but is not a
// regular file (directory, device, fifo, socket).
var ErrNotRegular = errors.New("not a regular file")

// Identity is the (device, inode) pair of a regular file. On a POSIX
// filesystem the pair is unique, so it names the file no matter which path
// (symlink, relative, absolute) was used to reach it. Both fields are
// compared because an include can reach across filesystems.
type Identity struct {
	Dev uint64
	Ino uint64
}

// String returns "dev:ino".
func (id Identity) String() string {
	return fmt.Sprintf("%d:%d", id.Dev, id.Ino)
}

// StatError is returned by IdentityOf when the path cannot be inspected.
type StatError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *StatError) Error() string {
	return fmt.Sprintf("can't stat %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying OS error.
func (e *StatError) Unwrap() error {
	return e.Err
}

// IdentityOf stats path (following symlinks) and returns its identity.
func IdentityOf(path string) (Identity, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return Identity{}, &StatError{Path: path, Err: err}
	}

	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return Identity{}, fmt.Errorf("can't open %s: %w", path, ErrNotRegular)
	}

	return Identity{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, nil
}

// FS is the filesystem boundary used by the include controller.
type FS interface {
	// Identify returns the identity of the regular file at path.
	Identify(path string) (Identity, error)

	// Open opens path for reading.
	Open(path string) (io.ReadCloser, error)
}

// OS is the FS backed by the host filesystem.
type OS struct{}

// Identify implements FS.
func (OS) Identify(path string) (Identity, error) {
	return IdentityOf(path)
}

// Open implements FS.
func (OS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
