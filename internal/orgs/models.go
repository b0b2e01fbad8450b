package orgs

import (
	"time"

	"github.com/lib/pq"
)

var Types = []string{
	"nonprofit", "healthcare", "community", "housing",
	"business_food", "business_retail", "business_service",
	"legal", "education", "religious",
}

// Organization is a directory entry: community centers, clinics, services
// and businesses, curated rather than user-generated.
type Organization struct {
	ID          string         `gorm:"primaryKey;size:64" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	OrgType     string         `gorm:"size:20;index" json:"org_type"`
	Latitude    float64        `gorm:"not null" json:"latitude"`
	Longitude   float64        `gorm:"not null" json:"longitude"`
	Address     string         `gorm:"size:500" json:"address"`
	Phone       string         `gorm:"size:20" json:"phone"`
	Website     string         `json:"website"`
	Hours       string         `gorm:"size:500" json:"hours"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	IsSafeSpace bool           `gorm:"not null;default:false" json:"is_safe_space"`
	IsVerified  bool           `gorm:"not null;default:false" json:"is_verified"`
	IsActive    bool           `gorm:"not null;default:true;index" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Organization) TableName() string { return "prism_organizations" }

func (o Organization) Coordinates() (float64, float64) {
	return o.Latitude, o.Longitude
}

// ListItem is the lightweight shape returned by list views.
type ListItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	OrgType     string   `json:"org_type"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	IsSafeSpace bool     `json:"is_safe_space"`
	IsVerified  bool     `json:"is_verified"`
	Distance    *float64 `json:"distance,omitempty"`
}

func toListItem(o Organization) ListItem {
	return ListItem{
		ID:          o.ID,
		Name:        o.Name,
		OrgType:     o.OrgType,
		Latitude:    o.Latitude,
		Longitude:   o.Longitude,
		IsSafeSpace: o.IsSafeSpace,
		IsVerified:  o.IsVerified,
	}
}
