package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/nutridash/nutridash-server/dashboardservice"
	"github.com/nutridash/nutridash-server/internal/config"
)

func main() {
	// Optional build-target flag override (sheets | local)
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (sheets, local)")
	envFile := flag.String("env-file", ".env", "Environment file to load if present")
	flag.Parse()

	// Missing .env is fine; deployments set variables directly.
	if err := godotenv.Load(*envFile); err == nil {
		log.Info().Str("file", *envFile).Msg("Environment file loaded")
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *buildTarget != "" {
		cfg.BuildTarget = *buildTarget
		cfg.StoreDriver = "auto"
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid build-target override")
		}
	}

	if err := dashboardservice.Run(cfg); err != nil {
		os.Exit(1)
	}
}
