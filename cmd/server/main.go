package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"prism/config"
	"prism/internal/beacons"
	"prism/internal/caches"
	"prism/internal/database"
	"prism/internal/feedback"
	"prism/internal/keys"
	"prism/internal/listings"
	"prism/internal/messages"
	"prism/internal/orgs"
	"prism/internal/tribes"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.Migrate(
		&keys.User{}, &keys.PreKey{}, &keys.SignedPreKey{},
		&messages.EncryptedMessage{},
		&orgs.Organization{},
		&beacons.Beacon{},
		&caches.Cache{},
		&listings.Listing{},
		&tribes.Post{}, &tribes.Reaction{},
		&feedback.Feedback{}, &feedback.AdminApplication{},
	); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	server, err := InitializeServer(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
