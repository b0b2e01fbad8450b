package tribes

import "time"

var ReactionTypes = map[string]bool{
	"heart":     true,
	"support":   true,
	"celebrate": true,
}

// Post is an anonymous message inside a tribe. The author hash is derived
// server-side and never maps back to a registered user.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TribeID    string    `gorm:"size:100;not null;index:idx_tribe_created" json:"tribe_id"`
	AuthorHash string    `gorm:"size:100;not null" json:"author_hash"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"index:idx_tribe_created" json:"created_at"`
	UpdatedAt  time.Time `json:"-"`

	// Moderation. Posts are soft-deleted so the audit trail survives.
	IsDeleted     bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedBy     string     `gorm:"size:255" json:"-"`
	DeletedReason string     `gorm:"type:text" json:"-"`
	DeletedAt     *time.Time `json:"-"`
}

func (Post) TableName() string { return "prism_tribe_posts" }

type Reaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PostID       uint      `gorm:"not null;uniqueIndex:idx_reaction_once;index:idx_reaction_post_type" json:"post_id"`
	UserHash     string    `gorm:"size:100;not null;uniqueIndex:idx_reaction_once" json:"user_hash"`
	ReactionType string    `gorm:"size:20;not null;uniqueIndex:idx_reaction_once;index:idx_reaction_post_type" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`

	Post Post `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Reaction) TableName() string { return "prism_tribe_reactions" }

const maxContentLen = 2000
