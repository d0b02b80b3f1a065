package services

import "errors"

// Domain errors surfaced to handlers. Validation and authorization are
// checked before any mutation, so returning one of these implies no side
// effects happened.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotAuthorized       = errors.New("not authorized for this resource")
	ErrNotPlanOwner        = errors.New("only the plan owner can perform this action")
	ErrUserNotFound        = errors.New("user not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrInvitationNotFound  = errors.New("invitation not found")
	ErrPlanFull            = errors.New("maximum members limit reached")
	ErrAlreadyMember       = errors.New("user is already a member")
	ErrInvitationProcessed = errors.New("invitation already processed")
)
