package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/klypp-app/klypp-backend/internal/config"
	"github.com/klypp-app/klypp-backend/internal/handlers"
	"github.com/klypp-app/klypp-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	planHandler *handlers.PlanHandler,
	notificationHandler *handlers.NotificationHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	logoHandler *handlers.LogoHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Plans and membership (protected). Invitation routes sit under
	// /plans since an invitation is a member row in a given state.
	plans := api.Group("/plans", middleware.JWTProtected(cfg))
	plans.Post("/", planHandler.Create)
	plans.Get("/", planHandler.List)
	plans.Get("/invitations/:id", planHandler.GetInvitation)
	plans.Put("/invitations/:id", planHandler.RespondInvitation)
	plans.Delete("/members/:id", planHandler.RemoveMemberByID)
	plans.Get("/:id", planHandler.Get)
	plans.Put("/:id", planHandler.Update)
	plans.Patch("/:id", planHandler.Patch)
	plans.Delete("/:id", planHandler.Delete)
	plans.Post("/:id/invite", planHandler.Invite)
	plans.Get("/:id/invitations", planHandler.ListInvitations)
	plans.Delete("/:id/members/:userId", planHandler.RemoveMember)

	// Notifications (protected)
	notifications := api.Group("/notifications", middleware.JWTProtected(cfg))
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Post("/register-device", notificationHandler.RegisterDevice)

	// Analytics (protected)
	analytics := api.Group("/analytics", middleware.JWTProtected(cfg))
	analytics.Get("/", analyticsHandler.Summary)
	analytics.Get("/savings-logs", analyticsHandler.SavingsLogs)
	analytics.Get("/monthly-trend", analyticsHandler.MonthlyTrend)
	analytics.Get("/categories", analyticsHandler.Categories)

	api.Get("/logo-search", middleware.JWTProtected(cfg), logoHandler.Search)
}
