// Package main is the entry point for the jcraft CLI tool.
package main

import (
	"github.com/jcraft-dev/jcraft/internal/cmd"
)

func main() {
	cmd.Execute()
}
