package caches

import "time"

var IconTypes = map[string]bool{
	"heart":   true,
	"coffee":  true,
	"history": true,
	"warning": true,
	"star":    true,
}

// Cache is an encrypted location drop: a community note pinned to a fuzzy
// coordinate, decryptable only with the community key. The icon hint is the
// only cleartext metadata.
type Cache struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	Latitude   float64   `gorm:"not null" json:"latitude"`
	Longitude  float64   `gorm:"not null" json:"longitude"`
	Ciphertext string    `gorm:"type:text;not null" json:"ciphertext"`
	IconType   string    `gorm:"size:10;not null;default:heart" json:"icon_type"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `gorm:"index" json:"expires_at"`
}

func (Cache) TableName() string { return "prism_caches" }

func (c Cache) Coordinates() (float64, float64) {
	return c.Latitude, c.Longitude
}

const lifetime = 30 * 24 * time.Hour

const searchRadiusMeters = 5000
