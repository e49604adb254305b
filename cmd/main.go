// cmd/main.go
package main

import cmd "github.com/mwiater/benchpct/cmd/benchpct"

// main starts the benchpct CLI application by delegating to the
// cobra root command defined in the benchpct package.
func main() {
	cmd.Execute()
}
