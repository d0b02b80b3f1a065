package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klypp-app/klypp-backend/internal/analytics"
	"github.com/klypp-app/klypp-backend/internal/models"
)

// AnalyticsService loads a user's rows and hands them to the analytics
// package. A failed canceled-plans read degrades the summary instead of
// failing the request; the dashboard stays up with the active figures.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Summary computes the dashboard figures for the user as of now.
func (s *AnalyticsService) Summary(userID uuid.UUID, now time.Time) (analytics.Summary, error) {
	plans, err := s.loadPlans(userID)
	if err != nil {
		return analytics.Summary{}, err
	}

	canceled, err := s.loadCanceled(userID, analytics.CanceledWindowStart(now))
	if err != nil {
		slog.Error("failed to load canceled plans, serving degraded summary",
			"user_id", userID.String(), "error", err.Error())
		return analytics.Degraded(plans, "canceled plan data unavailable"), nil
	}

	return analytics.Summarize(plans, canceled), nil
}

// SavingsLogs returns the savings history, canceled plans included
// regardless of age.
func (s *AnalyticsService) SavingsLogs(userID uuid.UUID) ([]analytics.SavingsLog, error) {
	plans, err := s.loadPlans(userID)
	if err != nil {
		return nil, err
	}

	var canceled []models.CanceledPlan
	if err := s.db.Where("user_id = ?", userID).Find(&canceled).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch canceled plans: %w", err)
	}

	return analytics.SavingsLogs(plans, canceled), nil
}

// MonthlyTrend returns the six-month trend series ending at now.
func (s *AnalyticsService) MonthlyTrend(now time.Time) []analytics.TrendPoint {
	return analytics.MonthlyTrend(now)
}

// CategoryBreakdown returns the spending-by-category series.
func (s *AnalyticsService) CategoryBreakdown() []analytics.CategoryShare {
	return analytics.CategoryBreakdown()
}

// loadPlans fetches the plans the user pays a share of: owned plans plus
// plans where they are an accepted member. Members are preloaded since
// every analytics figure depends on the accepted count.
func (s *AnalyticsService) loadPlans(userID uuid.UUID) ([]models.Plan, error) {
	memberPlanIDs := s.db.Model(&models.PlanMember{}).
		Select("plan_id").
		Where("user_id = ? AND status = ?", userID, models.MemberStatusAccepted)

	var plans []models.Plan
	err := s.db.Preload("Members").
		Where("owner_id = ? OR id IN (?)", userID, memberPlanIDs).
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plans: %w", err)
	}
	return plans, nil
}

func (s *AnalyticsService) loadCanceled(userID uuid.UUID, since time.Time) ([]models.CanceledPlan, error) {
	var canceled []models.CanceledPlan
	err := s.db.Where("user_id = ? AND canceled_at >= ?", userID, since).
		Find(&canceled).Error
	if err != nil {
		return nil, err
	}
	return canceled, nil
}
