package glob

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Outcome classifies the result of expanding an include argument.
type Outcome int

const (
	// NoMatch means the pattern matched nothing, or had no metacharacters
	// and named no existing file. The caller includes the argument literally.
	NoMatch Outcome = iota
	// Matched means Paths holds one or more concrete paths.
	Matched
	// NoSpace means the expansion exceeded the configured match limit.
	NoSpace
	// Aborted means the pattern could not be expanded (malformed pattern).
	Aborted
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no_match"
	case Matched:
		return "matched"
	case NoSpace:
		return "no_space"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Expansion is the result of Expand.
type Expansion struct {
	Outcome Outcome
	Paths   []string // ascending; set only when Outcome is Matched
	Err     error    // underlying error for Aborted
}

// Expander expands shell-style patterns (*, ?, [...]) into file paths.
type Expander struct {
	// MaxMatches bounds the number of paths one pattern may produce.
	// Zero means no limit.
	MaxMatches int

	// Mark appends a trailing separator to matches that are directories.
	Mark bool
}

// New creates an expander with the given match limit that marks directories.
func New(maxMatches int) *Expander {
	return &Expander{
		MaxMatches: maxMatches,
		Mark:       true,
	}
}

// Expand expands pattern. Paths in a Matched expansion are sorted ascending.
func (e *Expander) Expand(pattern string) Expansion {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return Expansion{Outcome: Aborted, Err: err}
	}

	if len(matches) == 0 {
		return Expansion{Outcome: NoMatch}
	}

	if e.MaxMatches > 0 && len(matches) > e.MaxMatches {
		return Expansion{Outcome: NoSpace}
	}

	if e.Mark {
		for i, m := range matches {
			if strings.HasSuffix(m, string(filepath.Separator)) {
				continue
			}
			if info, err := os.Stat(m); err == nil && info.IsDir() {
				matches[i] = m + string(filepath.Separator)
			}
		}
	}

	slices.Sort(matches)
	return Expansion{Outcome: Matched, Paths: matches}
}

// HasMeta reports whether pattern contains any glob metacharacters.
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[\`)
}

// PushOrder returns paths in the order they must be pushed onto the scanner
// buffer stack: descending. The last path pushed is scanned first, so the
// files end up scanned in ascending order.
func PushOrder(paths []string) []string {
	ordered := slices.Clone(paths)
	slices.Reverse(ordered)
	return ordered
}
