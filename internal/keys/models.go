package keys

import "time"

// User is the zero-knowledge account record: no name, no email, only the
// hash of the long-term identity key. The hash is the primary key and is
// never reused or linked to a real-world identity.
type User struct {
	UserHash       string    `gorm:"primaryKey;size:64" json:"user_hash"`
	RegistrationID int       `gorm:"not null" json:"registration_id"`
	IdentityKey    string    `gorm:"type:text;not null" json:"identity_key"`
	CreatedAt      time.Time `json:"created_at"`
	LastSeen       time.Time `json:"last_seen"`
}

func (User) TableName() string { return "prism_users" }

// PreKey is a single-use public key. is_used only ever goes false -> true;
// the one exception is an explicit re-upload of the same key_id, which
// replaces the key material and makes the slot usable again.
type PreKey struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserHash  string    `gorm:"size:64;not null;uniqueIndex:idx_prekey_user_key;index:idx_prekey_user_unused" json:"-"`
	KeyID     int       `gorm:"not null;uniqueIndex:idx_prekey_user_key" json:"key_id"`
	PublicKey string    `gorm:"type:text;not null" json:"public_key"`
	IsUsed    bool      `gorm:"not null;default:false;index:idx_prekey_user_unused" json:"-"`
	CreatedAt time.Time `json:"-"`

	User *User `gorm:"foreignKey:UserHash;references:UserHash;constraint:OnDelete:CASCADE" json:"-"`
}

func (PreKey) TableName() string { return "prism_pre_keys" }

// SignedPreKey is the medium-term key endorsed by the identity key. At most
// one active row exists per user; rotation deactivates and inserts in a
// single transaction.
type SignedPreKey struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserHash  string    `gorm:"size:64;not null;index:idx_spk_user_active" json:"-"`
	KeyID     int       `gorm:"not null" json:"key_id"`
	PublicKey string    `gorm:"type:text;not null" json:"public_key"`
	Signature string    `gorm:"type:text;not null" json:"signature"`
	IsActive  bool      `gorm:"not null;default:true;index:idx_spk_user_active" json:"-"`
	CreatedAt time.Time `json:"-"`

	User *User `gorm:"foreignKey:UserHash;references:UserHash;constraint:OnDelete:CASCADE" json:"-"`
}

func (SignedPreKey) TableName() string { return "prism_signed_pre_keys" }
