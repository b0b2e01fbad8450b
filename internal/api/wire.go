package api

import (
	"github.com/google/wire"
	"github.com/rs/zerolog/log"

	"prism/config"
	"prism/internal/ratelimit"
	"prism/pkg/jwt"
)

func ProvideJWT(cfg *config.Config) *jwt.JWT {
	return jwt.NewJWT(cfg.JWTSecret, adminTokenTTLSeconds)
}

// ProvideLimiter prefers the shared Redis limiter when an address is
// configured and falls back to the in-process one otherwise.
func ProvideLimiter(cfg *config.Config) (ratelimit.Limiter, error) {
	if cfg.RedisAddr != "" {
		return ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, nil)
	}
	log.Warn().Msg("REDIS_ADDR not set, using in-memory rate limiter")
	return ratelimit.NewMemoryLimiter(ratelimit.MemoryConfig{}), nil
}

var Set = wire.NewSet(
	ProvideJWT,
	ProvideLimiter,
	wire.Struct(new(Handlers), "*"),
	NewServer,
)
