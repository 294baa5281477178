package main

import (
	"os"

	"github.com/kubev2v/action-agent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
