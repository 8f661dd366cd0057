// Package main implements the apidogctl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ennam/apidogctl/internal/commands"
)

var (
	// version is set at build time
	version = "0.1.0"
	// buildDate is set at build time
	buildDate = "unknown"
)

func main() {
	opts := &commands.Options{
		Version:   version,
		BuildDate: buildDate,
	}

	if err := commands.NewRootCommand(opts).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
