package listings

import "time"

var ListingTypes = map[string]bool{
	"offer":   true,
	"request": true,
}

var Categories = map[string]bool{
	"food":      true,
	"clothing":  true,
	"housing":   true,
	"transport": true,
	"emotional": true,
	"medical":   true,
	"tech":      true,
	"other":     true,
}

// Listing is a mutual-aid offer or request. Strictly resource sharing;
// contact details are an encrypted blob only the connecting party decrypts.
type Listing struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	CreatorHash   string     `gorm:"size:64;not null;index" json:"-"`
	ListingType   string     `gorm:"size:10;not null;index:idx_listing_type_open" json:"listing_type"`
	Category      string     `gorm:"size:20;not null;index" json:"category"`
	Title         string     `gorm:"size:100;not null" json:"title"`
	Description   string     `gorm:"size:500;not null" json:"description"`
	Latitude      float64    `gorm:"not null" json:"latitude"`
	Longitude     float64    `gorm:"not null" json:"longitude"`
	ContactCipher string     `gorm:"type:text" json:"contact_cipher,omitempty"`
	IsFulfilled   bool       `gorm:"not null;default:false;index:idx_listing_type_open" json:"is_fulfilled"`
	FulfilledAt   *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     time.Time  `gorm:"index" json:"expires_at"`
}

func (Listing) TableName() string { return "prism_mutual_aid" }

func (l Listing) Coordinates() (float64, float64) {
	return l.Latitude, l.Longitude
}

const (
	lifetime           = 7 * 24 * time.Hour
	searchRadiusMeters = 20000
	recentLimit        = 20
)
