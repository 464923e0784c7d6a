package main

import "github.com/forgeworks/agent-hooks/commands"

func main() {
	commands.Execute()
}
