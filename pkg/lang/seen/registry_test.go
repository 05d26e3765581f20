package seen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type countingCloser struct {
	closes int
}

func (c *countingCloser) Close() error {
	c.closes++
	return nil
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x;\n"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIdentityOf_RegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pol")
	writeFile(t, path)

	id, err := IdentityOf(path)
	if err != nil {
		t.Fatalf("IdentityOf() error = %v", err)
	}
	if id.Ino == 0 {
		t.Error("IdentityOf() returned zero inode")
	}
}

func TestIdentityOf_Missing(t *testing.T) {
	_, err := IdentityOf(filepath.Join(t.TempDir(), "missing.pol"))

	var statErr *StatError
	if !errors.As(err, &statErr) {
		t.Fatalf("IdentityOf() error = %v, want *StatError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("errors.Is(err, os.ErrNotExist) = false for %v", err)
	}
}

func TestIdentityOf_Directory(t *testing.T) {
	_, err := IdentityOf(t.TempDir())
	if !errors.Is(err, ErrNotRegular) {
		t.Fatalf("IdentityOf(dir) error = %v, want ErrNotRegular", err)
	}
}

func TestIdentityOf_SymlinkSharesIdentity(t *testing.T) {
	dir := t.TempDir()
	realPath := filepath.Join(dir, "realPath.pol")
	link := filepath.Join(dir, "link.pol")
	writeFile(t, realPath)
	if err := os.Symlink(realPath, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	a, err := IdentityOf(realPath)
	if err != nil {
		t.Fatal(err)
	}
	b, err := IdentityOf(link)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("identity of symlink = %v, want %v", b, a)
	}
}

func TestIdentityOf_SymlinkToDirectory(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "sub.pol")
	if err := os.Symlink(t.TempDir(), link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	if _, err := IdentityOf(link); !errors.Is(err, ErrNotRegular) {
		t.Errorf("IdentityOf(symlink to dir) error = %v, want ErrNotRegular", err)
	}
}

func TestRegistry_IsSeen(t *testing.T) {
	r := NewRegistry()
	a := Identity{Dev: 1, Ino: 10}

	if r.IsSeen(a) {
		t.Fatal("IsSeen() on empty registry = true")
	}

	r.Register(a, &countingCloser{})

	if !r.IsSeen(a) {
		t.Error("IsSeen() after Register = false")
	}
	// Same inode on a different device is a different file.
	if r.IsSeen(Identity{Dev: 2, Ino: 10}) {
		t.Error("IsSeen() matched on inode alone")
	}
	if r.IsSeen(Identity{Dev: 1, Ino: 11}) {
		t.Error("IsSeen() matched on device alone")
	}
}

func TestRegistry_CloseOne_LIFO(t *testing.T) {
	r := NewRegistry()
	first, second := &countingCloser{}, &countingCloser{}
	r.Register(Identity{Dev: 1, Ino: 1}, first)
	r.Register(Identity{Dev: 1, Ino: 2}, second)

	if err := r.CloseOne(); err != nil {
		t.Fatalf("CloseOne() error = %v", err)
	}
	if second.closes != 1 || first.closes != 0 {
		t.Errorf("after first CloseOne: second=%d first=%d, want 1 0", second.closes, first.closes)
	}

	if err := r.CloseOne(); err != nil {
		t.Fatalf("CloseOne() error = %v", err)
	}
	if first.closes != 1 {
		t.Errorf("first.closes = %d, want 1", first.closes)
	}

	if err := r.CloseOne(); !errors.Is(err, ErrNothingOpen) {
		t.Errorf("CloseOne() on drained registry = %v, want ErrNothingOpen", err)
	}

	// Closed entries still block re-inclusion.
	if !r.IsSeen(Identity{Dev: 1, Ino: 1}) {
		t.Error("closed entry no longer seen")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_CloseLatest(t *testing.T) {
	r := NewRegistry()
	a, b := Identity{Dev: 1, Ino: 1}, Identity{Dev: 1, Ino: 2}
	ca, cb := &countingCloser{}, &countingCloser{}
	r.Register(a, ca)
	r.Register(b, cb)

	err := r.CloseLatest(a)
	var orderErr *OrderError
	if !errors.As(err, &orderErr) {
		t.Fatalf("CloseLatest(a) error = %v, want *OrderError", err)
	}
	if orderErr.Got != b || orderErr.Want != a {
		t.Errorf("OrderError = %+v", orderErr)
	}
	if ca.closes+cb.closes != 0 {
		t.Error("CloseLatest closed a handle on mismatch")
	}

	if err := r.CloseLatest(b); err != nil {
		t.Fatalf("CloseLatest(b) error = %v", err)
	}
	if err := r.CloseLatest(a); err != nil {
		t.Fatalf("CloseLatest(a) error = %v", err)
	}
	if ca.closes != 1 || cb.closes != 1 {
		t.Errorf("closes = %d,%d, want 1,1", ca.closes, cb.closes)
	}
}

func TestRegistry_CloseAll(t *testing.T) {
	r := NewRegistry()
	handles := []*countingCloser{{}, {}, {}}
	for i, h := range handles {
		r.Register(Identity{Dev: 1, Ino: uint64(i + 1)}, h)
	}
	_ = r.CloseOne()

	if got := r.Open(); got != 2 {
		t.Fatalf("Open() = %d, want 2", got)
	}
	if n := r.CloseAll(); n != 2 {
		t.Errorf("CloseAll() = %d, want 2", n)
	}
	if n := r.CloseAll(); n != 0 {
		t.Errorf("second CloseAll() = %d, want 0", n)
	}
	for i, h := range handles {
		if h.closes != 1 {
			t.Errorf("handle %d closed %d times, want 1", i, h.closes)
		}
	}
}
