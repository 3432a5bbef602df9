package main

import (
	"os"

	"github.com/zoobzio/vista/cmd/vista/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
