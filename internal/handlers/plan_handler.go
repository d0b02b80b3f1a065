package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/klypp-app/klypp-backend/internal/dto"
	"github.com/klypp-app/klypp-backend/internal/identity"
	"github.com/klypp-app/klypp-backend/internal/services"
)

type PlanHandler struct {
	planService *services.PlanService
}

func NewPlanHandler(planService *services.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (h *PlanHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	plan, err := h.planService.Create(userID, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (h *PlanHandler) List(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	plans, err := h.planService.List(userID, time.Now())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(plans)
}

func (h *PlanHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "plan id")
	}

	plan, err := h.planService.Get(userID, planID, time.Now())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(plan)
}

func (h *PlanHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "plan id")
	}

	var req dto.UpdatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	plan, err := h.planService.Update(userID, planID, &req, time.Now())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(plan)
}

func (h *PlanHandler) Patch(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "plan id")
	}

	var req dto.PatchPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	plan, err := h.planService.Patch(userID, planID, &req, time.Now())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(plan)
}

func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "plan id")
	}

	if err := h.planService.Delete(userID, planID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Plan deleted"})
}

func (h *PlanHandler) Invite(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "plan id")
	}

	var req dto.InviteMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	member, err := h.planService.Invite(userID, planID, req.Email)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(member)
}

func (h *PlanHandler) ListInvitations(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "plan id")
	}

	members, err := h.planService.ListInvitations(userID, planID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(members)
}

func (h *PlanHandler) GetInvitation(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "invitation id")
	}

	invitation, err := h.planService.GetInvitation(userID, memberID, time.Now())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(invitation)
}

func (h *PlanHandler) RespondInvitation(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "invitation id")
	}

	var req dto.InvitationActionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	member, err := h.planService.Respond(userID, memberID, req.Action)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(member)
}

// RemoveMember handles DELETE /plans/:id/members/:userId. Covers both the
// owner removing a member and a member leaving on their own.
func (h *PlanHandler) RemoveMember(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "plan id")
	}

	subjectID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return badID(c, "user id")
	}

	if err := h.planService.RemoveMember(userID, planID, subjectID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Member removed"})
}

// RemoveMemberByID handles DELETE /members/:id, addressing the member row
// directly. Owner only.
func (h *PlanHandler) RemoveMemberByID(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "member id")
	}

	if err := h.planService.RemoveMemberByID(userID, memberID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Member removed"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badID(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid " + what,
	})
}

// serviceError maps the service sentinel errors onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, services.ErrNotPlanOwner):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrPlanNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrInvitationNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrPlanFull),
		errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrInvitationProcessed):
		status, message = fiber.StatusConflict, err.Error()
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}
