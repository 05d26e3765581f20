// Package lang parses the polc policy language.
//
// Policy files are sequences of statements. A statement is a keyword, some
// arguments, and either a ';' or a block of nested statements. Files pull
// in other files with include directives, which take glob patterns:
//
//	# site.pol
//	include "conf.d/*.pol";
//
//	package "nginx" {
//	    version 1.24;
//	    service running;
//	}
//
// # Architecture
//
// The package is organized into subpackages:
//
// - ast: the parsed document
// - scanner: the tokenizer and its stack of input buffers
// - grammar: the default statement grammar
// - session: the parse session and its include controller
// - seen, pathspec, glob: file identity, include path resolution and glob expansion
// - errors: diagnostics with location and source context
//
// # Basic Usage
//
//	doc, err := lang.ParseFile("policies/site.pol", nil)
//	if err != nil {
//	    var perr *session.ParseError
//	    if errors.As(err, &perr) {
//	        for _, d := range perr.Diagnostics {
//	            fmt.Fprintln(os.Stderr, d.Format())
//	        }
//	    }
//	    os.Exit(1)
//	}
//	for _, stmt := range doc.Statements {
//	    fmt.Println(stmt)
//	}
//
// # Includes
//
// A relative include is resolved against the directory of the file that
// contains it. Glob matches are read in ascending order. Each file is read
// at most once per parse: a file reached again, by any path or symlink, is
// skipped with a warning, so include loops end on their own.
//
// Warnings never fail a parse. Any error does, and the error returned is a
// *session.ParseError carrying every diagnostic.
package lang
