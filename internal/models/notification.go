package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification types emitted by the membership lifecycle.
const (
	NotificationPlanInvitation         = "PLAN_INVITATION"
	NotificationPlanInvitationResponse = "PLAN_INVITATION_RESPONSE"
	NotificationPlanUpdate             = "PLAN_UPDATE"
	NotificationRenewal                = "RENEWAL"
	NotificationPayment                = "PAYMENT"
)

// Notification is an in-app message for one user. Metadata is a small
// structured bag (planId, inviterId, memberId, status, ...) queried by
// plan id when a plan's rows are cascaded away.
type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Type      string         `gorm:"size:50;not null" json:"type"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	IsRead    bool           `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time      `json:"created_at"`
}
