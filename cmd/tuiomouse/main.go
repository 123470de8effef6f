// Package main starts the tuiomouse TUIO-to-mouse bridge.
package main

import (
	"os"

	"github.com/rs/zerolog"
)

// main is the entrypoint for tuiomouse. The only argument is an optional UDP port.
func main() {
	if err := run(os.Args[1:]); err != nil {
		logFatal(err)
	}
}

// logFatal prints and exits for startup failures.
func logFatal(err error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	logger.Error().Err(err).Msg("fatal")
	os.Exit(1)
}
