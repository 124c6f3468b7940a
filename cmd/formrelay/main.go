package main

import (
	"os"

	"github.com/dmitrymomot/formrelay/cmd/formrelay/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
