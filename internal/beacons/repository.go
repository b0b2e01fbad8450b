package beacons

import (
	"context"
	"time"

	"prism/internal/database"
)

type Repository interface {
	Create(ctx context.Context, beacon *Beacon) error
	// ActiveByTopic returns unexpired beacons for a topic, newest first,
	// optionally narrowed to a geohash cell prefix.
	ActiveByTopic(ctx context.Context, topic, geohashPrefix string) ([]Beacon, error)
}

type postgresRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, beacon *Beacon) error {
	return r.db.WithContext(ctx).Create(beacon).Error
}

func (r *postgresRepository) ActiveByTopic(ctx context.Context, topic, geohashPrefix string) ([]Beacon, error) {
	q := r.db.WithContext(ctx).
		Where("topic = ? AND expires_at > ?", topic, time.Now().UTC())
	if geohashPrefix != "" {
		q = q.Where("geohash LIKE ?", geohashPrefix+"%")
	}

	var out []Beacon
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}
