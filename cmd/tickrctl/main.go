package main

import (
	"os"

	"tickr/cmd/tickrctl/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
