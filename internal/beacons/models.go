package beacons

import "time"

var Topics = map[string]bool{
	"trans_fem":     true,
	"trans_masc":    true,
	"nonbinary":     true,
	"bipoc_queer":   true,
	"queer_parents": true,
	"newly_out":     true,
	"queer_gamers":  true,
	"queer_faith":   true,
	"queer_sober":   true,
	"general":       true,
}

// Beacon is an anonymous, topic-scoped broadcast. The broadcast hash is
// derived client-side from the identity key and is not linkable back to a
// user; location is at most a coarse geohash.
type Beacon struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	Topic         string    `gorm:"size:30;not null;index:idx_beacon_topic_exp" json:"topic"`
	BroadcastHash string    `gorm:"size:64;not null" json:"broadcast_hash"`
	Geohash       string    `gorm:"size:6;index" json:"geohash"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `gorm:"index:idx_beacon_topic_exp" json:"expires_at"`
}

func (Beacon) TableName() string { return "prism_beacons" }

const lifetime = 24 * time.Hour

// Geohash filtering compares the first 4 characters, roughly a 20x20km cell.
const geohashPrefixLen = 4
