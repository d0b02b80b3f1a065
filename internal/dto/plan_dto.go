package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePlanRequest struct {
	Name             string `json:"name"`
	Cost             string `json:"cost"`
	RenewalFrequency string `json:"renewal_frequency"`
	MaxMembers       int    `json:"max_members"`
	StartDate        string `json:"start_date"`
}

type UpdatePlanRequest struct {
	Name             string  `json:"name"`
	Cost             string  `json:"cost"`
	RenewalFrequency string  `json:"renewal_frequency"`
	MaxMembers       int     `json:"max_members"`
	StartDate        string  `json:"start_date"`
	LogoURL          *string `json:"logo_url"`
}

// PatchPlanRequest carries optional fields; nil means "leave unchanged".
type PatchPlanRequest struct {
	Name       *string `json:"name"`
	Cost       *string `json:"cost"`
	MaxMembers *int    `json:"max_members"`
	LogoURL    *string `json:"logo_url"`
}

// PlanResponse is a plan annotated with the caller-specific fields the
// dashboard renders: the caller's share, days until renewal and whether
// they own it.
type PlanResponse struct {
	ID               uuid.UUID        `json:"id"`
	Name             string           `json:"name"`
	Cost             decimal.Decimal  `json:"cost"`
	RenewalFrequency string           `json:"renewal_frequency"`
	MaxMembers       int              `json:"max_members"`
	CurrentMembers   int              `json:"current_members"`
	StartDate        time.Time        `json:"start_date"`
	NextRenewalDate  time.Time        `json:"next_renewal_date"`
	RenewsIn         int              `json:"renews_in"`
	RenewalDate      string           `json:"renewal_date"`
	IsOwner          bool             `json:"is_owner"`
	YourShare        decimal.Decimal  `json:"your_share"`
	LogoURL          *string          `json:"logo_url"`
	Owner            UserResponse     `json:"owner"`
	Members          []MemberResponse `json:"members,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

type MemberResponse struct {
	ID     uuid.UUID    `json:"id"`
	PlanID uuid.UUID    `json:"plan_id"`
	Status string       `json:"status"`
	User   UserResponse `json:"user"`
}

type InviteMemberRequest struct {
	Email string `json:"email"`
}

// Invitation actions.
const (
	InvitationActionAccept  = "ACCEPT"
	InvitationActionDecline = "DECLINE"
)

type InvitationActionRequest struct {
	Action string `json:"action"`
}

// InvitationResponse is a pending/processed invitation seen by the
// invitee, carrying enough plan context to decide on it.
type InvitationResponse struct {
	ID        uuid.UUID    `json:"id"`
	PlanID    uuid.UUID    `json:"plan_id"`
	Status    string       `json:"status"`
	Plan      PlanResponse `json:"plan"`
	CreatedAt time.Time    `json:"created_at"`
}
