//go:build !linux

package main

// resetTerminalMode is a no-op where termios ioctls differ; tcell restores the mode on Fini
func resetTerminalMode() {}
