package listings

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"prism/infrastructure"
	"prism/internal/database"
)

type Filter struct {
	ListingType string
	Category    string
}

type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	// Open returns unfulfilled, unexpired listings matching the filter.
	Open(ctx context.Context, filter Filter) ([]Listing, error)
	// Recent is Open limited to the newest n listings.
	Recent(ctx context.Context, filter Filter, n int) ([]Listing, error)
	GetForCreator(ctx context.Context, id, creatorHash string) (*Listing, error)
	MarkFulfilled(ctx context.Context, id string, at time.Time) error
}

type postgresRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, listing *Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *postgresRepository) open(ctx context.Context, filter Filter) *gorm.DB {
	q := r.db.WithContext(ctx).
		Where("is_fulfilled = ? AND expires_at > ?", false, time.Now().UTC())
	if filter.ListingType != "" {
		q = q.Where("listing_type = ?", filter.ListingType)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	return q
}

func (r *postgresRepository) Open(ctx context.Context, filter Filter) ([]Listing, error) {
	var out []Listing
	err := r.open(ctx, filter).Find(&out).Error
	return out, err
}

func (r *postgresRepository) Recent(ctx context.Context, filter Filter, n int) ([]Listing, error) {
	var out []Listing
	err := r.open(ctx, filter).Order("created_at DESC").Limit(n).Find(&out).Error
	return out, err
}

func (r *postgresRepository) GetForCreator(ctx context.Context, id, creatorHash string) (*Listing, error) {
	var listing Listing
	err := r.db.WithContext(ctx).
		Where("id = ? AND creator_hash = ?", id, creatorHash).
		First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

func (r *postgresRepository) MarkFulfilled(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Listing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_fulfilled": true, "fulfilled_at": at}).Error
}
