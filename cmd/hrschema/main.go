package main

import "hrschema/cmd/hrschema/commands"

func main() {
	commands.Execute()
}
