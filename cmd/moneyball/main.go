// Package main is the entry point for the Moneyball match prediction client.
// It exposes two frontends over the same page views: a server-rendered web
// frontend (serve) and a terminal frontend (tui).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
