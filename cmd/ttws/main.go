// ttws is the command-line front end for the solver: it decodes windmill
// puzzle codes, solves them, and renders the results.
package main

import "github.com/barrycohen/ttws/cmd/ttws/cmd"

func main() {
	cmd.Execute()
}
