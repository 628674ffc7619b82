package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("nexmark_gen failed")
	}
}
