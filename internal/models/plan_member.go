package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership status values. ACCEPTED is the single canonical "active"
// status; there is no separate ACTIVE value.
const (
	MemberStatusPending  = "PENDING"
	MemberStatusAccepted = "ACCEPTED"
	MemberStatusDeclined = "DECLINED"
)

// PlanMember joins a user to a plan. At most one row may exist per
// (plan, user) pair; a declined row must be deleted before re-inviting.
type PlanMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PlanID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_plan_members_plan_user" json:"plan_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_plan_members_plan_user" json:"user_id"`
	Status    string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Plan      Plan      `gorm:"foreignKey:PlanID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
