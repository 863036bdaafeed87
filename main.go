package main

import (
	"os"

	"github.com/applytrack/applytrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
