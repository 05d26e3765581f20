// Package grammar provides the default statement grammar for policy files.
//
// The grammar reads tokens from the session's scanning engine and builds an
// *ast.Document. It recognizes include directives and hands them to the
// session's include controller, so a document always reflects the root file
// and everything it pulls in:
//
//	include "conf.d/*.pol";
//
//	package "nginx" {
//	    version 1.24;
//	    include "nginx/*.pol";
//	}
//
// Syntax errors are returned as *errors.Error values of type syntax, with the
// location of the offending token.
package grammar
