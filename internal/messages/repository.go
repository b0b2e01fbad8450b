package messages

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"prism/infrastructure"
	"prism/internal/database"
)

type Repository interface {
	Create(ctx context.Context, msg *EncryptedMessage) error
	// PendingFor returns undelivered, unexpired messages oldest first.
	PendingFor(ctx context.Context, recipientHash string) ([]EncryptedMessage, error)
	// GetForRecipient fetches a message only if recipientHash owns it.
	GetForRecipient(ctx context.Context, id, recipientHash string) (*EncryptedMessage, error)
	MarkDelivered(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type postgresRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, msg *EncryptedMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *postgresRepository) PendingFor(ctx context.Context, recipientHash string) ([]EncryptedMessage, error) {
	var msgs []EncryptedMessage
	err := r.db.WithContext(ctx).
		Where("recipient_hash = ? AND is_delivered = ? AND expires_at > ?",
			recipientHash, false, time.Now().UTC()).
		Order("created_at ASC").
		Find(&msgs).Error
	return msgs, err
}

func (r *postgresRepository) GetForRecipient(ctx context.Context, id, recipientHash string) (*EncryptedMessage, error) {
	var msg EncryptedMessage
	err := r.db.WithContext(ctx).
		Where("id = ? AND recipient_hash = ?", id, recipientHash).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.ErrNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (r *postgresRepository) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&EncryptedMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_delivered": true, "delivered_at": at}).Error
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&EncryptedMessage{}, "id = ?", id).Error
}
