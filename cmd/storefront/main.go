// Package main is the entry point for the storefront server.
package main

import (
	"os"

	"github.com/mstepanov/storefront/cmd/storefront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
