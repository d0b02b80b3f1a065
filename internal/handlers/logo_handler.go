package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/klypp-app/klypp-backend/internal/dto"
	"github.com/klypp-app/klypp-backend/internal/identity"
	"github.com/klypp-app/klypp-backend/internal/logo"
)

type LogoHandler struct {
	logos *logo.Client
}

func NewLogoHandler(logos *logo.Client) *LogoHandler {
	return &LogoHandler{logos: logos}
}

// Search resolves a service name to a logo URL. Always returns a URL;
// the avatar fallback covers names no provider knows.
func (h *LogoHandler) Search(c *fiber.Ctx) error {
	if _, err := identity.UserID(c); err != nil {
		return unauthorized(c)
	}

	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "name query parameter is required",
		})
	}

	return c.JSON(dto.LogoSearchResponse{LogoURL: h.logos.Search(name)})
}
