package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/klypp-app/klypp-backend/internal/costshare"
	"github.com/klypp-app/klypp-backend/internal/dto"
	"github.com/klypp-app/klypp-backend/internal/models"
	"github.com/klypp-app/klypp-backend/internal/renewal"
)

// buildPlanResponse annotates a loaded plan for one caller: is_owner,
// your_share (cost split across the owner plus accepted members) and the
// renewal countdown. Member rows must be preloaded.
func buildPlanResponse(plan *models.Plan, callerID uuid.UUID, now time.Time) dto.PlanResponse {
	memberCount := costshare.MemberCount(len(plan.AcceptedMembers()))

	members := make([]dto.MemberResponse, len(plan.Members))
	for i := range plan.Members {
		members[i] = buildMemberResponse(&plan.Members[i], &plan.Members[i].User)
	}

	return dto.PlanResponse{
		ID:               plan.ID,
		Name:             plan.Name,
		Cost:             plan.Cost,
		RenewalFrequency: plan.RenewalFrequency,
		MaxMembers:       plan.MaxMembers,
		CurrentMembers:   plan.CurrentMembers,
		StartDate:        plan.StartDate,
		NextRenewalDate:  plan.NextRenewalDate,
		RenewsIn:         renewal.DaysUntil(plan.NextRenewalDate, now),
		RenewalDate:      plan.NextRenewalDate.Format("Jan 2, 2006"),
		IsOwner:          plan.OwnerID == callerID,
		YourShare:        costshare.Share(plan.Cost, memberCount),
		LogoURL:          plan.LogoURL,
		Owner: dto.UserResponse{
			ID:       plan.Owner.ID,
			Name:     plan.Owner.Name,
			Email:    plan.Owner.Email,
			Username: plan.Owner.Username,
		},
		Members:   members,
		CreatedAt: plan.CreatedAt,
	}
}

func buildMemberResponse(member *models.PlanMember, user *models.User) dto.MemberResponse {
	return dto.MemberResponse{
		ID:     member.ID,
		PlanID: member.PlanID,
		Status: member.Status,
		User: dto.UserResponse{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Username: user.Username,
		},
	}
}
