package main

import (
	"fmt"
	"os"

	"github.com/rocketscienceinc/tictactoe/internal/cmd"
)

// main - is the entry point of the application.
func main() {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
		os.Exit(1)
	}
}
