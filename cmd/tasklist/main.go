// Package main provides the entry point for the tasklist CLI.
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := Execute(); err != nil {
		fatal(err)
		os.Exit(1)
	}
}

func fatal(err error) {
	log.Error().Err(err).Msg("tasklist failed")
}
