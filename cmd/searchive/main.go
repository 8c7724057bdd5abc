package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"searchive/internal/config"
	"searchive/internal/serve"
	"searchive/internal/site"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, reading env vars from system")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	command := "run"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "run":
		err = site.Run(cfg)
	case "clean":
		err = site.Clean(cfg)
	case "convert":
		err = site.Convert(cfg)
	case "build":
		err = site.Build(cfg)
	case "serve":
		err = serve.Run(cfg)
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [run|clean|convert|build|serve]\n", os.Args[0])
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("run failed")
	}
}
