package messages

import "time"

// EncryptedMessage is an opaque ciphertext held until the recipient picks
// it up. The server never sees plaintext; sender and recipient are user
// hashes, not accounts.
type EncryptedMessage struct {
	ID            string     `gorm:"primaryKey;size:64" json:"id"`
	SenderHash    string     `gorm:"size:64;not null" json:"sender_hash"`
	RecipientHash string     `gorm:"size:64;not null;index:idx_msg_recipient_pending" json:"recipient_hash"`
	Ciphertext    string     `gorm:"type:text;not null" json:"ciphertext"`
	IsDelivered   bool       `gorm:"not null;default:false;index:idx_msg_recipient_pending" json:"-"`
	DeliveredAt   *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     time.Time  `gorm:"index" json:"-"`
}

func (EncryptedMessage) TableName() string { return "prism_messages" }

// Messages not picked up within a week are gone.
const retention = 7 * 24 * time.Hour
