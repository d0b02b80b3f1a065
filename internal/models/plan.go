package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Renewal frequencies accepted on a plan. Anything else falls back to
// monthly when the next renewal date is computed.
const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)

// Plan is a tracked recurring subscription. Cost is the price of the whole
// subscription, not a per-member share. The owner always counts as one
// member but never has a PlanMember row.
type Plan struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string          `gorm:"size:255;not null" json:"name"`
	Cost             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost"`
	RenewalFrequency string          `gorm:"size:20;not null;default:'monthly'" json:"renewal_frequency"`
	MaxMembers       int             `gorm:"not null;default:1" json:"max_members"`
	CurrentMembers   int             `gorm:"not null;default:1" json:"current_members"`
	StartDate        time.Time       `gorm:"not null" json:"start_date"`
	NextRenewalDate  time.Time       `gorm:"not null" json:"next_renewal_date"`
	LogoURL          *string         `gorm:"type:text" json:"logo_url"`
	OwnerID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner            User            `gorm:"foreignKey:OwnerID" json:"-"`
	Members          []PlanMember    `gorm:"foreignKey:PlanID" json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// AcceptedMembers returns the loaded member rows with status ACCEPTED.
// The owner is not included; callers add 1 where the owner counts.
func (p *Plan) AcceptedMembers() []PlanMember {
	accepted := make([]PlanMember, 0, len(p.Members))
	for _, m := range p.Members {
		if m.Status == MemberStatusAccepted {
			accepted = append(accepted, m)
		}
	}
	return accepted
}
