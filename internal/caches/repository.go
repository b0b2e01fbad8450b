package caches

import (
	"context"
	"time"

	"prism/internal/database"
)

type Repository interface {
	Create(ctx context.Context, cache *Cache) error
	Active(ctx context.Context) ([]Cache, error)
}

type postgresRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, cache *Cache) error {
	return r.db.WithContext(ctx).Create(cache).Error
}

func (r *postgresRepository) Active(ctx context.Context) ([]Cache, error) {
	var out []Cache
	err := r.db.WithContext(ctx).
		Where("expires_at > ?", time.Now().UTC()).
		Find(&out).Error
	return out, err
}
