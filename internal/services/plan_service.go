package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/klypp-app/klypp-backend/internal/dto"
	"github.com/klypp-app/klypp-backend/internal/logo"
	"github.com/klypp-app/klypp-backend/internal/models"
	"github.com/klypp-app/klypp-backend/internal/renewal"
)

// PlanService implements plan CRUD and the membership lifecycle:
// PENDING -> ACCEPTED | DECLINED, and removal of accepted members by
// leaving or being removed. Every multi-row mutation runs in one
// transaction; notifications are dispatched only after commit.
type PlanService struct {
	db            *gorm.DB
	notifications *NotificationService
	logos         *logo.Client
}

func NewPlanService(db *gorm.DB, notifications *NotificationService, logos *logo.Client) *PlanService {
	return &PlanService{db: db, notifications: notifications, logos: logos}
}

// Create stores a new plan owned by the caller. The owner is the first
// member, so current_members starts at 1. The logo lookup is best
// effort; the plan is created without one when it fails.
func (s *PlanService) Create(ownerID uuid.UUID, req *dto.CreatePlanRequest) (*models.Plan, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	cost, err := decimal.NewFromString(req.Cost)
	if err != nil || cost.IsNegative() {
		return nil, fmt.Errorf("%w: cost must be a non-negative decimal number", ErrInvalidInput)
	}

	if req.MaxMembers < 1 {
		return nil, fmt.Errorf("%w: max_members must be at least 1", ErrInvalidInput)
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be a date", ErrInvalidInput)
	}

	frequency := normalizeFrequency(req.RenewalFrequency)

	plan := models.Plan{
		ID:               uuid.New(),
		Name:             name,
		Cost:             cost,
		RenewalFrequency: frequency,
		MaxMembers:       req.MaxMembers,
		CurrentMembers:   1,
		StartDate:        startDate,
		NextRenewalDate:  renewal.NextRenewalDate(startDate, frequency),
		OwnerID:          ownerID,
	}

	if s.logos != nil {
		if logoURL := s.logos.Search(name); logoURL != "" {
			plan.LogoURL = &logoURL
		}
	}

	if err := s.db.Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return &plan, nil
}

// List returns every plan the caller owns or is an accepted member of,
// newest first, annotated for the dashboard.
func (s *PlanService) List(userID uuid.UUID, now time.Time) ([]dto.PlanResponse, error) {
	memberPlanIDs := s.db.Model(&models.PlanMember{}).
		Select("plan_id").
		Where("user_id = ? AND status = ?", userID, models.MemberStatusAccepted)

	var plans []models.Plan
	err := s.db.Preload("Members").Preload("Members.User").Preload("Owner").
		Where("owner_id = ? OR id IN (?)", userID, memberPlanIDs).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plans: %w", err)
	}

	responses := make([]dto.PlanResponse, len(plans))
	for i := range plans {
		responses[i] = buildPlanResponse(&plans[i], userID, now)
	}
	return responses, nil
}

// Get returns one plan. Visible to the owner and to anyone holding a
// member row, including pending invitees deciding on an invitation.
func (s *PlanService) Get(userID, planID uuid.UUID, now time.Time) (*dto.PlanResponse, error) {
	plan, err := s.loadPlan(planID)
	if err != nil {
		return nil, err
	}

	if !canViewPlan(plan, userID) {
		return nil, ErrNotAuthorized
	}

	resp := buildPlanResponse(plan, userID, now)
	return &resp, nil
}

// Update replaces the editable plan fields and recomputes the next
// renewal date. When no logo is supplied and the name changed, a fresh
// logo lookup runs; failure keeps the old logo.
func (s *PlanService) Update(userID, planID uuid.UUID, req *dto.UpdatePlanRequest, now time.Time) (*dto.PlanResponse, error) {
	plan, err := s.loadPlan(planID)
	if err != nil {
		return nil, err
	}
	if plan.OwnerID != userID {
		return nil, ErrNotPlanOwner
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	cost, err := decimal.NewFromString(req.Cost)
	if err != nil || cost.IsNegative() {
		return nil, fmt.Errorf("%w: cost must be a non-negative decimal number", ErrInvalidInput)
	}

	if req.MaxMembers < 1 {
		return nil, fmt.Errorf("%w: max_members must be at least 1", ErrInvalidInput)
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be a date", ErrInvalidInput)
	}

	frequency := normalizeFrequency(req.RenewalFrequency)

	logoURL := plan.LogoURL
	if req.LogoURL != nil {
		logoURL = req.LogoURL
	} else if name != plan.Name && s.logos != nil {
		if fresh := s.logos.Search(name); fresh != "" {
			logoURL = &fresh
		}
	}

	updates := map[string]interface{}{
		"name":              name,
		"cost":              cost,
		"renewal_frequency": frequency,
		"max_members":       req.MaxMembers,
		"start_date":        startDate,
		"next_renewal_date": renewal.NextRenewalDate(startDate, frequency),
		"logo_url":          logoURL,
	}

	if err := s.db.Model(plan).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	return s.Get(userID, planID, now)
}

// Patch applies a partial update; nil fields are left unchanged. The
// renewal schedule is untouched since neither start date nor frequency
// can change here.
func (s *PlanService) Patch(userID, planID uuid.UUID, req *dto.PatchPlanRequest, now time.Time) (*dto.PlanResponse, error) {
	plan, err := s.loadPlan(planID)
	if err != nil {
		return nil, err
	}
	if plan.OwnerID != userID {
		return nil, ErrNotPlanOwner
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		updates["name"] = name
	}
	if req.Cost != nil {
		cost, err := decimal.NewFromString(*req.Cost)
		if err != nil || cost.IsNegative() {
			return nil, fmt.Errorf("%w: cost must be a non-negative decimal number", ErrInvalidInput)
		}
		updates["cost"] = cost
	}
	if req.MaxMembers != nil {
		if *req.MaxMembers < 1 {
			return nil, fmt.Errorf("%w: max_members must be at least 1", ErrInvalidInput)
		}
		updates["max_members"] = *req.MaxMembers
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(plan).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update plan: %w", err)
		}
	}

	return s.Get(userID, planID, now)
}

// Delete archives the plan as a CanceledPlan for the owner, then removes
// the member rows, the plan-scoped notifications and the plan itself in
// one transaction.
func (s *PlanService) Delete(userID, planID uuid.UUID) error {
	plan, err := s.loadPlan(planID)
	if err != nil {
		return err
	}
	if plan.OwnerID != userID {
		return ErrNotPlanOwner
	}

	acceptedCount := len(plan.AcceptedMembers())

	return s.db.Transaction(func(tx *gorm.DB) error {
		snapshot := models.CanceledPlan{
			ID:               uuid.New(),
			Name:             plan.Name,
			Cost:             plan.Cost,
			RenewalFrequency: plan.RenewalFrequency,
			UserID:           userID,
			MemberCount:      acceptedCount,
			WasOwner:         true,
			OriginalPlanID:   plan.ID,
		}
		if err := tx.Create(&snapshot).Error; err != nil {
			return fmt.Errorf("failed to archive plan: %w", err)
		}

		if err := tx.Where("plan_id = ?", plan.ID).Delete(&models.PlanMember{}).Error; err != nil {
			return fmt.Errorf("failed to delete plan members: %w", err)
		}

		if err := s.notifications.DeleteForPlanTx(tx, plan.ID); err != nil {
			return fmt.Errorf("failed to delete plan notifications: %w", err)
		}

		if err := tx.Delete(&models.Plan{}, "id = ?", plan.ID).Error; err != nil {
			return fmt.Errorf("failed to delete plan: %w", err)
		}
		return nil
	})
}

// Invite creates a PENDING member row for the user behind the email and
// notifies them. Owner only; fails before any write when the plan is at
// capacity, the candidate is unknown, or a row already exists.
func (s *PlanService) Invite(callerID, planID uuid.UUID, email string) (*models.PlanMember, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	plan, err := s.loadPlan(planID)
	if err != nil {
		return nil, err
	}
	if plan.OwnerID != callerID {
		return nil, ErrNotPlanOwner
	}

	if atCapacity(len(plan.AcceptedMembers()), plan.MaxMembers) {
		return nil, ErrPlanFull
	}

	var invitee models.User
	if err := s.db.Where("email = ?", email).First(&invitee).Error; err != nil {
		return nil, ErrUserNotFound
	}
	if invitee.ID == plan.OwnerID {
		return nil, ErrAlreadyMember
	}

	var existing models.PlanMember
	if err := s.db.Where("plan_id = ? AND user_id = ?", plan.ID, invitee.ID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyMember
	}

	member := models.PlanMember{
		ID:     uuid.New(),
		PlanID: plan.ID,
		UserID: invitee.ID,
		Status: models.MemberStatusPending,
	}

	var created *models.Notification
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to create plan member: %w", err)
		}

		n, err := s.notifications.CreateTx(tx, invitee.ID,
			"New Plan Invitation",
			fmt.Sprintf("%s has invited you to join their %s plan", plan.Owner.Name, plan.Name),
			models.NotificationPlanInvitation,
			map[string]interface{}{
				"planId":      plan.ID.String(),
				"planName":    plan.Name,
				"inviterId":   plan.OwnerID.String(),
				"inviterName": plan.Owner.Name,
				"memberId":    member.ID.String(),
			})
		if err != nil {
			return err
		}
		created = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Dispatch(created)
	return &member, nil
}

// Respond processes the invitee's ACCEPT or DECLINE. Accepting re-checks
// capacity with the plan row locked, since the plan may have filled
// between invite and response; two invitees racing for the last slot
// cannot both get in.
func (s *PlanService) Respond(callerID, memberID uuid.UUID, action string) (*models.PlanMember, error) {
	newStatus, err := responseStatus(action)
	if err != nil {
		return nil, err
	}

	var member models.PlanMember
	var created *models.Notification

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&member, "id = ?", memberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvitationNotFound
			}
			return err
		}

		if member.UserID != callerID {
			return ErrNotAuthorized
		}
		if err := canRespond(member.Status); err != nil {
			return err
		}

		var plan models.Plan
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&plan, "id = ?", member.PlanID).Error; err != nil {
			return ErrPlanNotFound
		}

		// Every response path locks the plan row first, so this re-read
		// sees a response that committed while we waited for the lock.
		// The pre-lock check alone is a stale snapshot.
		if err := tx.First(&member, "id = ?", memberID).Error; err != nil {
			return ErrInvitationNotFound
		}
		if err := canRespond(member.Status); err != nil {
			return err
		}

		var invitee models.User
		if err := tx.First(&invitee, "id = ?", member.UserID).Error; err != nil {
			return ErrUserNotFound
		}

		if newStatus == models.MemberStatusAccepted {
			var acceptedCount int64
			if err := tx.Model(&models.PlanMember{}).
				Where("plan_id = ? AND status = ?", plan.ID, models.MemberStatusAccepted).
				Count(&acceptedCount).Error; err != nil {
				return err
			}
			if atCapacity(int(acceptedCount), plan.MaxMembers) {
				return ErrPlanFull
			}

			if err := tx.Model(&plan).
				UpdateColumn("current_members", gorm.Expr("current_members + 1")).Error; err != nil {
				return err
			}
		}

		// Conditional on PENDING so the transition can never apply twice;
		// zero rows affected rolls back the counter increment above.
		result := tx.Model(&models.PlanMember{}).
			Where("id = ? AND status = ?", member.ID, models.MemberStatusPending).
			Update("status", newStatus)
		if result.Error != nil {
			return fmt.Errorf("failed to update invitation: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInvitationProcessed
		}
		member.Status = newStatus

		if err := s.notifications.SetInvitationStatusTx(tx, member.ID, newStatus); err != nil {
			return err
		}

		title := "Plan Invitation Declined"
		responseWord := "declined"
		if newStatus == models.MemberStatusAccepted {
			title = "Plan Invitation Accepted"
			responseWord = "accepted"
		}
		n, err := s.notifications.CreateTx(tx, plan.OwnerID,
			title,
			fmt.Sprintf("%s has %s the invitation to join %s", invitee.Name, responseWord, plan.Name),
			models.NotificationPlanInvitationResponse,
			map[string]interface{}{
				"planId":   plan.ID.String(),
				"planName": plan.Name,
				"memberId": member.ID.String(),
				"status":   newStatus,
			})
		if err != nil {
			return err
		}
		created = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Dispatch(created)
	return &member, nil
}

// ListInvitations returns every member row of the plan with the invited
// user's details. Owner only.
func (s *PlanService) ListInvitations(callerID, planID uuid.UUID) ([]dto.MemberResponse, error) {
	plan, err := s.loadPlan(planID)
	if err != nil {
		return nil, err
	}
	if plan.OwnerID != callerID {
		return nil, ErrNotPlanOwner
	}

	responses := make([]dto.MemberResponse, len(plan.Members))
	for i, m := range plan.Members {
		responses[i] = buildMemberResponse(&plan.Members[i], &m.User)
	}
	return responses, nil
}

// GetInvitation returns one invitation with its plan context. Visible to
// the invitee and the plan owner.
func (s *PlanService) GetInvitation(callerID, memberID uuid.UUID, now time.Time) (*dto.InvitationResponse, error) {
	var member models.PlanMember
	err := s.db.Preload("Plan").Preload("Plan.Owner").
		Preload("Plan.Members").Preload("Plan.Members.User").
		First(&member, "id = ?", memberID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	if member.UserID != callerID && member.Plan.OwnerID != callerID {
		return nil, ErrNotAuthorized
	}

	return &dto.InvitationResponse{
		ID:        member.ID,
		PlanID:    member.PlanID,
		Status:    member.Status,
		Plan:      buildPlanResponse(&member.Plan, callerID, now),
		CreatedAt: member.CreatedAt,
	}, nil
}

// RemoveMember deletes the membership of subjectUserID on the plan.
// Allowed for the plan owner (removal) and for the member themself
// (leaving). Only a voluntary leave by an accepted member is archived as
// a CanceledPlan; an owner-initiated removal is not.
func (s *PlanService) RemoveMember(callerID, planID, subjectUserID uuid.UUID) error {
	plan, err := s.loadPlan(planID)
	if err != nil {
		return err
	}

	isOwner := plan.OwnerID == callerID
	isSelf := subjectUserID == callerID
	if !isOwner && !isSelf {
		return ErrNotAuthorized
	}

	var member models.PlanMember
	if err := s.db.Where("plan_id = ? AND user_id = ?", planID, subjectUserID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	return s.removeMemberRow(plan, &member, isSelf)
}

// RemoveMemberByID is the owner-side removal addressed by member row id.
func (s *PlanService) RemoveMemberByID(callerID, memberID uuid.UUID) error {
	var member models.PlanMember
	if err := s.db.First(&member, "id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}

	plan, err := s.loadPlan(member.PlanID)
	if err != nil {
		return err
	}
	if plan.OwnerID != callerID {
		return ErrNotPlanOwner
	}

	return s.removeMemberRow(plan, &member, member.UserID == callerID)
}

// removeMemberRow deletes the row and applies the side effects in one
// transaction: the CanceledPlan snapshot for a voluntary leave, the
// counter decrement for an accepted member, and the removal notification
// when the owner removed someone else.
func (s *PlanService) removeMemberRow(plan *models.Plan, member *models.PlanMember, voluntary bool) error {
	wasAccepted := member.Status == models.MemberStatusAccepted

	var created *models.Notification
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if voluntary && wasAccepted {
			// Accepted count excluding the leaver.
			remaining := len(plan.AcceptedMembers()) - 1
			if remaining < 0 {
				remaining = 0
			}
			snapshot := models.CanceledPlan{
				ID:               uuid.New(),
				Name:             plan.Name,
				Cost:             plan.Cost,
				RenewalFrequency: plan.RenewalFrequency,
				UserID:           member.UserID,
				MemberCount:      remaining,
				WasOwner:         false,
				OriginalPlanID:   plan.ID,
			}
			if err := tx.Create(&snapshot).Error; err != nil {
				return fmt.Errorf("failed to archive membership: %w", err)
			}
		}

		if err := tx.Delete(&models.PlanMember{}, "id = ?", member.ID).Error; err != nil {
			return fmt.Errorf("failed to delete plan member: %w", err)
		}

		if wasAccepted {
			if err := tx.Model(&models.Plan{}).
				Where("id = ?", plan.ID).
				UpdateColumn("current_members", gorm.Expr("current_members - 1")).Error; err != nil {
				return err
			}
		}

		if !voluntary {
			n, err := s.notifications.CreateTx(tx, member.UserID,
				"Removed from Plan",
				fmt.Sprintf("You have been removed from the %s plan", plan.Name),
				models.NotificationPlanUpdate,
				map[string]interface{}{
					"planId":   plan.ID.String(),
					"planName": plan.Name,
					"action":   "REMOVED",
				})
			if err != nil {
				return err
			}
			created = n
		}
		return nil
	})
	if err != nil {
		return err
	}

	if created != nil {
		s.notifications.Dispatch(created)
	}
	return nil
}

func (s *PlanService) loadPlan(planID uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	err := s.db.Preload("Members").Preload("Members.User").Preload("Owner").
		First(&plan, "id = ?", planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	return &plan, nil
}

func canViewPlan(plan *models.Plan, userID uuid.UUID) bool {
	if plan.OwnerID == userID {
		return true
	}
	for _, m := range plan.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func normalizeFrequency(frequency string) string {
	f := strings.ToLower(strings.TrimSpace(frequency))
	if f == "" {
		return models.FrequencyMonthly
	}
	return f
}
