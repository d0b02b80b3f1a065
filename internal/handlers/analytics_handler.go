package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/klypp-app/klypp-backend/internal/identity"
	"github.com/klypp-app/klypp-backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	summary, err := h.analyticsService.Summary(userID, time.Now())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(summary)
}

func (h *AnalyticsHandler) SavingsLogs(c *fiber.Ctx) error {
	userID, err := identity.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	logs, err := h.analyticsService.SavingsLogs(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(logs)
}

func (h *AnalyticsHandler) MonthlyTrend(c *fiber.Ctx) error {
	if _, err := identity.UserID(c); err != nil {
		return unauthorized(c)
	}

	return c.JSON(h.analyticsService.MonthlyTrend(time.Now()))
}

func (h *AnalyticsHandler) Categories(c *fiber.Ctx) error {
	if _, err := identity.UserID(c); err != nil {
		return unauthorized(c)
	}

	return c.JSON(h.analyticsService.CategoryBreakdown())
}
