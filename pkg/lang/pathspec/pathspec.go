// Package pathspec resolves include arguments against the file that
// contains the include directive.
package pathspec

import "path/filepath"

// Resolve turns a requested include path into a path relative to the
// directory of current. An empty current (the root file of a session) or an
// absolute request is returned unchanged.
func Resolve(current, requested string) string {
	if current == "" || filepath.IsAbs(requested) {
		return requested
	}
	return filepath.Dir(current) + "/" + requested
}
