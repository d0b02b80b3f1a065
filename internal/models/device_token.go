package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceToken registers one push-capable device for a user. Tokens are
// upserted on registration so re-registering the same device is a no-op.
type DeviceToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"size:512;not null;uniqueIndex" json:"token"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
