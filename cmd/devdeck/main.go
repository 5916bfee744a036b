package main

import (
	"os"

	"devdeck/cmd/devdeck/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
