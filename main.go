package main

import "github.com/agentic-research/stacsmith/cmd"

func main() {
	cmd.Execute()
}
