// Package main provides the CLI entrypoint for builder-generator.
//
// builder-generator is a go generate tool that:
//   - Parses a Go package and finds struct types marked //builder:generate
//   - Classifies each field as required, or optional when declared Option[T]
//   - Generates a companion builder with fluent setters and a Build method
//     that reports the first required field left unset
//
// Typical use, next to the struct declaration:
//
//	//go:generate go run builder-generator/cmd/builder-generator
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
