package main

import (
	"os"

	"proxylens/cmd/proxylens/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
