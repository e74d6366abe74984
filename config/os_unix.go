//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

// EnableColorOutput checks if colorized output is possible. NO_COLOR
// environment variable disables it.
func EnableColorOutput(stream *os.File) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return term.IsTerminal(int(stream.Fd()))
}
