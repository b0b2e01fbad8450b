//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"prism/config"
	"prism/internal/api"
	"prism/internal/beacons"
	"prism/internal/caches"
	"prism/internal/database"
	"prism/internal/email"
	"prism/internal/feedback"
	"prism/internal/keys"
	"prism/internal/listings"
	"prism/internal/messages"
	"prism/internal/orgs"
	"prism/internal/tribes"
)

var AppSet = wire.NewSet(
	keys.Set,
	messages.Set,
	orgs.Set,
	beacons.Set,
	caches.Set,
	listings.Set,
	tribes.Set,
	feedback.Set,
	email.Set,
	api.Set,
)

func InitializeServer(cfg *config.Config, db *database.Database) (*api.Server, error) {
	wire.Build(AppSet)
	return nil, nil
}
