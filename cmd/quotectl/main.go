// Package main is the entry point for the quotectl operator CLI.
package main

import (
	"os"

	"github.com/Simplici0/sanquote/cmd/quotectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
