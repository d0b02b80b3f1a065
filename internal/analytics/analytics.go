// Package analytics folds a user's plans and canceled-plan history into
// the summary figures shown on the dashboard. Nothing here is cached or
// incrementally maintained; every request recomputes from freshly loaded
// rows.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/klypp-app/klypp-backend/internal/costshare"
	"github.com/klypp-app/klypp-backend/internal/models"
)

// Summary is the aggregate view for one user. When the canceled-plans
// read fails the canceled section is zeroed and Error is set; the rest of
// the figures are still reported.
type Summary struct {
	CurrentMonthSpending decimal.Decimal `json:"current_month_spending"`
	PlanCount            int             `json:"plan_count"`
	TotalSavings         decimal.Decimal `json:"total_savings"`
	SharedPlanSavings    decimal.Decimal `json:"shared_plan_savings"`
	CanceledPlanSavings  decimal.Decimal `json:"canceled_plan_savings"`
	CanceledPlanCount    int             `json:"canceled_plan_count"`
	Error                string          `json:"error,omitempty"`
}

// CanceledWindowStart returns the start of the trailing window canceled
// plans count toward savings: the first day of the month three months
// before now.
func CanceledWindowStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -3, 0)
}

// Summarize computes the summary from already-loaded rows. Each plan must
// have its Members association loaded; only ACCEPTED rows count toward
// shares. The canceled slice is expected to be pre-filtered to the
// trailing window (see CanceledWindowStart).
func Summarize(plans []models.Plan, canceled []models.CanceledPlan) Summary {
	spending := decimal.Zero
	sharedSavings := decimal.Zero

	for _, plan := range plans {
		count := costshare.MemberCount(len(plan.AcceptedMembers()))
		spending = spending.Add(costshare.Share(plan.Cost, count))
		sharedSavings = sharedSavings.Add(costshare.Savings(plan.Cost, count))
	}

	canceledSavings := decimal.Zero
	for _, cp := range canceled {
		canceledSavings = canceledSavings.Add(costshare.CanceledShare(cp.Cost, cp.MemberCount, cp.RenewalFrequency))
	}

	return Summary{
		CurrentMonthSpending: spending,
		PlanCount:            len(plans),
		TotalSavings:         sharedSavings.Add(canceledSavings),
		SharedPlanSavings:    sharedSavings,
		CanceledPlanSavings:  canceledSavings,
		CanceledPlanCount:    len(canceled),
	}
}

// Degraded returns a summary built from the active plans only, with the
// canceled section zeroed and the failure noted. Used when the canceled
// plans cannot be read.
func Degraded(plans []models.Plan, reason string) Summary {
	s := Summarize(plans, nil)
	s.Error = reason
	return s
}
