// Package main implements the scheduler daemon: it loads its configuration,
// configures logging, and idles until SIGINT or SIGTERM asks it to stop.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
