// Package main is the entry point for the sfc CLI client.
package main

import (
	"github.com/mstepanov/storefront/cmd/sfc/cmd"
)

func main() {
	cmd.Execute()
}
