package main

import (
	"os"

	"github.com/gameradar/radar/cmd/radar/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
