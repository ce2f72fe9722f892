// Command gofd is a small front end over the finite-domain solver. It ships
// a couple of built-in models to exercise the search driver from the shell.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
