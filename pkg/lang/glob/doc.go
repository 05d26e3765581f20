// Package glob expands include arguments that may be shell-style patterns.
//
// Expansion is lexicographically sorted. Includes that match several files
// are pushed onto the scanner's buffer stack in reverse (see PushOrder), so
// that the stack pops them back out in ascending order:
//
//	include "conf.d/*.pol"   # conf.d/a.pol, conf.d/b.pol, conf.d/c.pol
//
//	push c.pol, push b.pol, push a.pol  ->  scan a.pol, b.pol, c.pol
//
// A pattern that matches nothing is reported as NoMatch rather than an error.
// The caller then treats the argument as a literal file name.
package glob
