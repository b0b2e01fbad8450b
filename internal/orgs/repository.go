package orgs

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prism/infrastructure"
	"prism/internal/database"
)

type Filter struct {
	OrgType  string
	SafeOnly bool
	Search   string
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Organization, error)
	Get(ctx context.Context, id string) (*Organization, error)
	// Upsert inserts or refreshes a directory entry; used by the seed loader.
	Upsert(ctx context.Context, org *Organization) error
}

type postgresRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) List(ctx context.Context, filter Filter) ([]Organization, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if filter.OrgType != "" {
		q = q.Where("org_type = ?", filter.OrgType)
	}
	if filter.SafeOnly {
		q = q.Where("is_safe_space = ?", true)
	}
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var out []Organization
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (r *postgresRepository) Get(ctx context.Context, id string) (*Organization, error) {
	var org Organization
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&org).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (r *postgresRepository) Upsert(ctx context.Context, org *Organization) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "org_type", "latitude", "longitude",
			"address", "phone", "website", "hours", "tags",
			"is_safe_space", "is_verified", "is_active",
		}),
	}).Create(org).Error
}
