package feedback

import (
	"context"

	"prism/internal/database"
)

type Repository interface {
	Create(ctx context.Context, fb *Feedback) error
	// Recent returns the newest n submissions for the community bridge.
	Recent(ctx context.Context, n int) ([]Feedback, error)
	MarkEmailSent(ctx context.Context, id string) error

	CreateApplication(ctx context.Context, app *AdminApplication) error
	MarkApplicationEmailSent(ctx context.Context, id uint) error
}

type postgresRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, fb *Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *postgresRepository) Recent(ctx context.Context, n int) ([]Feedback, error) {
	var out []Feedback
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(n).Find(&out).Error
	return out, err
}

func (r *postgresRepository) MarkEmailSent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&Feedback{}).
		Where("id = ?", id).
		Update("email_sent", true).Error
}

func (r *postgresRepository) CreateApplication(ctx context.Context, app *AdminApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *postgresRepository) MarkApplicationEmailSent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&AdminApplication{}).
		Where("id = ?", id).
		Update("email_sent", true).Error
}
