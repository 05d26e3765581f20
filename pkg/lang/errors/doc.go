// Package errors provides the diagnostic types recorded by a parse session.
//
// Every warning and error raised while resolving includes or parsing is kept
// as an *Error carrying its type, severity and the file and line that were
// current when it was raised.
//
// # Error Types
//
// ErrorTypeStat, ErrorTypeNotRegular, ErrorTypeOpen: an include target could
// not be used. The target is skipped and the parse continues.
//
// ErrorTypeAlreadySeen: a warning. The target was opened earlier in the same
// session (same device and inode) and is skipped to break include loops.
//
// ErrorTypeGlobNoSpace, ErrorTypeGlobAborted: glob expansion of an include
// argument failed. Nothing is included for that directive.
//
// ErrorTypeFormat: the diagnostic message itself could not be rendered.
//
// ErrorTypeSyntax: the grammar rejected the input.
//
// # Error Format
//
// Diagnostics render the way the scanner-based tools always have:
//
//	policies/site.pol:12: warning: skipping policies/base.pol (already seen)
//
// With AddContextToError the surrounding source lines are included:
//
//	policies/site.pol:12: error: syntax error: unexpected '}'
//	  |
//	  11 |   package "nginx" {
//	-> 12 |   }}
//	  13 |
//	  |
package errors
