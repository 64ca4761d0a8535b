// Command plannerctl inspects and maintains planner storage from the shell.
// It reads the same configuration as the API server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
