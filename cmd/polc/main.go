// polc parses policy configuration trees: a root file and every file it
// pulls in through include directives, with glob expansion and loop
// protection.
//
// Usage:
//
//	# Check one or more trees and print diagnostics
//	polc check site.pol
//
//	# Treat warnings as failures and record the run
//	polc check --strict --record site.pol
//
//	# Print the parsed document
//	polc dump --format yaml site.pol
//
//	# Re-check whenever a file of the tree changes
//	polc watch --metrics-addr 127.0.0.1:9464 site.pol
//
//	# Inspect recorded runs
//	polc history list --limit 10
package main

func main() {
	Execute()
}
