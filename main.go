// ABOUTME: Entry point for the neurostudy CLI
// ABOUTME: Terminal client that turns textbook pages into study material

package main

import (
	"fmt"
	"os"

	"github.com/Zubimendi/neurostudy/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
