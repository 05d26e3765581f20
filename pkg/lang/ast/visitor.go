package ast

// Walk visits every statement of the document depth-first, in source order.
// Returning false from fn skips the statement's body.
func Walk(doc *Document, fn func(*Statement) bool) {
	for _, stmt := range doc.Statements {
		walkStatement(stmt, fn)
	}
}

func walkStatement(stmt *Statement, fn func(*Statement) bool) {
	if !fn(stmt) {
		return
	}
	for _, child := range stmt.Body {
		walkStatement(child, fn)
	}
}

// Count returns the total number of statements in the document, nested ones included.
func Count(doc *Document) int {
	n := 0
	Walk(doc, func(*Statement) bool {
		n++
		return true
	})
	return n
}
