package main

import (
	"os"

	"github.com/mbartelt/cellvol/cmd/cellvol/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
