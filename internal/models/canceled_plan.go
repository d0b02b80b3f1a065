package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CanceledPlan is an immutable snapshot taken when a plan is deleted or a
// member leaves voluntarily. MemberCount is the accepted-member count at
// that moment, excluding the owner. OriginalPlanID may dangle once the
// plan row is gone; it is intentionally not a foreign key.
type CanceledPlan struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string          `gorm:"size:255;not null" json:"name"`
	Cost             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	RenewalFrequency string          `gorm:"size:20;not null" json:"renewal_frequency"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	MemberCount      int             `gorm:"not null;default:0" json:"member_count"`
	WasOwner         bool            `gorm:"not null;default:false" json:"was_owner"`
	OriginalPlanID   uuid.UUID       `gorm:"type:uuid" json:"original_plan_id"`
	CanceledAt       time.Time       `gorm:"not null;index;autoCreateTime" json:"canceled_at"`
}
