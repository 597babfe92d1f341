// Package main is the entry point for siga-starschema.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/siga-starschema/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
