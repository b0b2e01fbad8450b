package tribes

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"prism/infrastructure"
	"prism/internal/database"
)

type ReactionCount struct {
	PostID       uint
	ReactionType string
	Count        int
}

type Repository interface {
	CreatePost(ctx context.Context, post *Post) error
	// ListPosts returns visible posts of a tribe, newest first.
	ListPosts(ctx context.Context, tribeID string) ([]Post, error)
	GetPost(ctx context.Context, id uint) (*Post, error)
	// GetVisiblePost is GetPost restricted to non-deleted posts.
	GetVisiblePost(ctx context.Context, id uint) (*Post, error)
	SoftDeletePost(ctx context.Context, id uint, deletedBy, reason string, at time.Time) error
	// ToggleReaction adds the reaction if absent, removes it if present.
	// The returned bool is true when the reaction was added.
	ToggleReaction(ctx context.Context, postID uint, userHash, reactionType string) (bool, error)
	CountReactions(ctx context.Context, postIDs []uint) ([]ReactionCount, error)
}

type postgresRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreatePost(ctx context.Context, post *Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postgresRepository) ListPosts(ctx context.Context, tribeID string) ([]Post, error) {
	var posts []Post
	err := r.db.WithContext(ctx).
		Where("tribe_id = ? AND is_deleted = ?", tribeID, false).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postgresRepository) GetPost(ctx context.Context, id uint) (*Post, error) {
	var post Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postgresRepository) GetVisiblePost(ctx context.Context, id uint) (*Post, error) {
	var post Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, infrastructure.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postgresRepository) SoftDeletePost(ctx context.Context, id uint, deletedBy, reason string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Post{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted":     true,
			"deleted_by":     deletedBy,
			"deleted_reason": reason,
			"deleted_at":     at,
		}).Error
}

func (r *postgresRepository) ToggleReaction(ctx context.Context, postID uint, userHash, reactionType string) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Reaction
		err := tx.Where("post_id = ? AND user_hash = ? AND reaction_type = ?",
			postID, userHash, reactionType).First(&existing).Error
		if err == nil {
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		added = true
		return tx.Create(&Reaction{
			PostID:       postID,
			UserHash:     userHash,
			ReactionType: reactionType,
		}).Error
	})
	return added, err
}

func (r *postgresRepository) CountReactions(ctx context.Context, postIDs []uint) ([]ReactionCount, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var counts []ReactionCount
	err := r.db.WithContext(ctx).Model(&Reaction{}).
		Select("post_id, reaction_type, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id, reaction_type").
		Scan(&counts).Error
	return counts, err
}
