// main.go
//
// Database bootstrap tool: reset the schema, load the fixture content and
// create admin users.

package main

import "github.com/thruflo/awraamba/cmd/awraamba-db/commands"

func main() {
	commands.Execute()
}
