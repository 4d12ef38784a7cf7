package main

import (
	"io"
	"os"
)

// resetSequences leaves mouse reporting and the alternate screen, restores the cursor and attributes
var resetSequences = []string{
	"\x1b[?1003l", "\x1b[?1002l", "\x1b[?1000l", "\x1b[?1006l",
	"\x1b[?1004l",
	"\x1b[?25h",
	"\x1b[?1049l",
	"\x1b[0m",
	"\x1b[?7h",
}

// emergencyReset puts the terminal back into a usable state after a crash
// Best-effort: every error is ignored
func emergencyReset(w io.Writer) {
	for _, seq := range resetSequences {
		io.WriteString(w, seq)
	}
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
	resetTerminalMode()
}
