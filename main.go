package main

import (
	"os"

	"github.com/bitrise-io/bitrise-code-assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
