package services

import (
	"fmt"

	"github.com/klypp-app/klypp-backend/internal/costshare"
	"github.com/klypp-app/klypp-backend/internal/dto"
	"github.com/klypp-app/klypp-backend/internal/models"
)

// atCapacity reports whether a plan with the given accepted member rows
// has no seat left. The owner occupies one seat without a row.
func atCapacity(acceptedMembers, maxMembers int) bool {
	return costshare.MemberCount(acceptedMembers) >= maxMembers
}

// canRespond checks that an invitation is still open. PENDING is the only
// state a response transitions out of; a second accept or decline fails.
func canRespond(status string) error {
	if status != models.MemberStatusPending {
		return ErrInvitationProcessed
	}
	return nil
}

// responseStatus maps an invitation action onto the terminal status it
// produces.
func responseStatus(action string) (string, error) {
	switch action {
	case dto.InvitationActionAccept:
		return models.MemberStatusAccepted, nil
	case dto.InvitationActionDecline:
		return models.MemberStatusDeclined, nil
	default:
		return "", fmt.Errorf("%w: action must be ACCEPT or DECLINE", ErrInvalidInput)
	}
}
