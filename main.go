package main

import (
	"errors"
	"log"
	"os"

	"github.com/heseber/gutenberg-org-to-epub/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrUsage) {
			os.Exit(2)
		}
		log.Fatalf("Error executing command: %v", err)
	}
}
