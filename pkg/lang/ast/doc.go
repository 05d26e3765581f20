// Package ast defines the in-memory representation built by the default
// statement grammar.
//
// A Document holds the statements of a root policy file together with the
// statements of everything it includes, in the order they were scanned.
// Every Statement keeps its source Location so diagnostics can point back at
// the file and line that produced it.
//
// # Basic Usage
//
//	doc, err := lang.ParseFile("policies/site.pol")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ast.Walk(doc, func(stmt *ast.Statement) bool {
//	    fmt.Println(stmt.Location, stmt)
//	    return true
//	})
package ast
