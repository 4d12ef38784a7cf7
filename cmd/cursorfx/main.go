package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/lixenwraith/cursorfx/observability"
)

func main() {
	// Restore the terminal even if something outside the frame loop panics
	defer func() {
		if r := recover(); r != nil {
			emergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCURSORFX CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			observability.Sync()
			os.Exit(1)
		}
	}()

	root, _ := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}
