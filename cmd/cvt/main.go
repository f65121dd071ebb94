package main

import (
	"fmt"
	"os"

	"canvas-tasks/internal/cli"
	"canvas-tasks/internal/config"
)

func main() {
	root := cli.NewRootCommand(config.NewLoader(), cli.NewDefaultApp)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
