package feedback

import "time"

var FeedbackTypes = map[string]string{
	"bug":            "Bug Report",
	"feature":        "Feature Request",
	"org_submission": "Organization Submission",
}

var Statuses = map[string]bool{
	"pending":     true,
	"in_progress": true,
	"completed":   true,
	"rejected":    true,
}

// Feedback is an anonymous community submission. Org submissions carry the
// candidate organization's details for admin review before seeding.
type Feedback struct {
	ID           string `gorm:"primaryKey;size:64" json:"id"`
	FeedbackType string `gorm:"size:20;not null" json:"feedback_type"`
	Content      string `gorm:"type:text" json:"content"`

	OrgName        string   `gorm:"size:255" json:"org_name,omitempty"`
	OrgDescription string   `gorm:"type:text" json:"org_description,omitempty"`
	OrgType        string   `gorm:"size:50" json:"org_type,omitempty"`
	OrgAddress     string   `gorm:"type:text" json:"org_address,omitempty"`
	OrgPhone       string   `gorm:"size:50" json:"org_phone,omitempty"`
	OrgWebsite     string   `gorm:"size:255" json:"org_website,omitempty"`
	OrgHours       string   `gorm:"type:text" json:"org_hours,omitempty"`
	OrgLatitude    *float64 `json:"org_latitude,omitempty"`
	OrgLongitude   *float64 `json:"org_longitude,omitempty"`
	OrgIsSafeSpace bool     `gorm:"not null;default:false" json:"org_is_safe_space"`

	Status        string `gorm:"size:20;not null;default:pending" json:"status"`
	AdminResponse string `gorm:"type:text" json:"admin_response,omitempty"`
	AdminNotes    string `gorm:"type:text" json:"-"`

	EmailSent bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Feedback) TableName() string { return "prism_feedback" }

// AdminApplication is a request to become a local community moderator.
type AdminApplication struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255;not null" json:"name"`
	Email        string `gorm:"size:254;not null" json:"email"`
	Location     string `gorm:"size:255;not null" json:"location"`
	Experience   string `gorm:"type:text;not null" json:"experience"`
	Motivation   string `gorm:"type:text;not null" json:"motivation"`
	Availability string `gorm:"type:text;not null" json:"availability"`
	References   string `gorm:"type:text" json:"references,omitempty"`

	Status     string     `gorm:"size:20;not null;default:pending" json:"status"`
	AdminNotes string     `gorm:"type:text" json:"-"`
	ReviewedAt *time.Time `json:"-"`

	EmailSent bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdminApplication) TableName() string { return "prism_admin_applications" }

const bridgeLimit = 50
