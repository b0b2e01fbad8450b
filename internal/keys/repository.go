package keys

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"prism/infrastructure"
	"prism/internal/database"
)

type Repository interface {
	// CreateUser persists the user, its signed pre-key and the initial
	// pre-key batch atomically. Returns ErrUserAlreadyExists on a duplicate
	// user hash.
	CreateUser(ctx context.Context, user *User, signed *SignedPreKey, preKeys []PreKey) error
	GetUser(ctx context.Context, userHash string) (*User, error)
	ActiveSignedPreKey(ctx context.Context, userHash string) (*SignedPreKey, error)

	// ClaimPreKey selects the unused pre-key with the lowest key_id and
	// marks it used in the same transaction. Returns (nil, nil) when the
	// pool is exhausted. Two concurrent claims never observe the same row.
	ClaimPreKey(ctx context.Context, userHash string) (*PreKey, error)

	// UpsertPreKeys replaces key material by (user, key_id), resetting
	// is_used for replaced slots, and inserts unseen ids.
	UpsertPreKeys(ctx context.Context, userHash string, preKeys []PreKey) (int, error)

	// RotateSignedPreKey deactivates the current signed pre-key and
	// activates the replacement in one transaction.
	RotateSignedPreKey(ctx context.Context, userHash string, signed *SignedPreKey) error

	// UnusedPreKeyCount is the authoritative pre_keys_available value,
	// derived on read instead of cached.
	UnusedPreKeyCount(ctx context.Context, userHash string) (int64, error)

	TouchLastSeen(ctx context.Context, userHash string) error
}

type postgresRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User, signed *SignedPreKey, preKeys []PreKey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return infrastructure.ErrUserAlreadyExists
			}
			return err
		}

		signed.UserHash = user.UserHash
		signed.IsActive = true
		if err := tx.Create(signed).Error; err != nil {
			return err
		}

		for i := range preKeys {
			preKeys[i].UserHash = user.UserHash
		}
		if len(preKeys) > 0 {
			if err := tx.CreateInBatches(preKeys, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *postgresRepository) GetUser(ctx context.Context, userHash string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "user_hash = ?", userHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresRepository) ActiveSignedPreKey(ctx context.Context, userHash string) (*SignedPreKey, error) {
	var signed SignedPreKey
	err := r.db.WithContext(ctx).
		Where("user_hash = ? AND is_active = ?", userHash, true).
		First(&signed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.ErrSignedPreKeyMissing
		}
		return nil, err
	}
	return &signed, nil
}

func (r *postgresRepository) ClaimPreKey(ctx context.Context, userHash string) (*PreKey, error) {
	var claimed *PreKey
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var preKey PreKey
		// SKIP LOCKED serializes concurrent claims without blocking: a row
		// already claimed in a parallel transaction is invisible here, so the
		// same one-time key can never be issued twice.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("user_hash = ? AND is_used = ?", userHash, false).
			Order("key_id ASC").
			First(&preKey).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Model(&preKey).Update("is_used", true).Error; err != nil {
			return err
		}
		preKey.IsUsed = true
		claimed = &preKey
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

func (r *postgresRepository) UpsertPreKeys(ctx context.Context, userHash string, preKeys []PreKey) (int, error) {
	if len(preKeys) == 0 {
		return 0, nil
	}
	for i := range preKeys {
		preKeys[i].ID = 0
		preKeys[i].UserHash = userHash
		preKeys[i].IsUsed = false
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_hash"}, {Name: "key_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"public_key", "is_used"}),
		}).CreateInBatches(preKeys, 100).Error
	})
	if err != nil {
		return 0, err
	}
	return len(preKeys), nil
}

func (r *postgresRepository) RotateSignedPreKey(ctx context.Context, userHash string, signed *SignedPreKey) error {
	signed.UserHash = userHash
	signed.IsActive = true
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&SignedPreKey{}).
			Where("user_hash = ? AND is_active = ?", userHash, true).
			Update("is_active", false).Error
		if err != nil {
			return err
		}
		return tx.Create(signed).Error
	})
}

func (r *postgresRepository) UnusedPreKeyCount(ctx context.Context, userHash string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PreKey{}).
		Where("user_hash = ? AND is_used = ?", userHash, false).
		Count(&count).Error
	return count, err
}

func (r *postgresRepository) TouchLastSeen(ctx context.Context, userHash string) error {
	return r.db.WithContext(ctx).Model(&User{}).
		Where("user_hash = ?", userHash).
		Update("last_seen", time.Now().UTC()).Error
}
