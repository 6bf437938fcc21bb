package main

import "github.com/agentpane/agentpane/cmd"

func main() {
	cmd.Execute()
}
