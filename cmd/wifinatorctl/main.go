package main

import (
	"os"

	"github.com/techlib/wifinator/cmd/wifinatorctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
