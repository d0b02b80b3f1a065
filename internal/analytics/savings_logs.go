package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/klypp-app/klypp-backend/internal/costshare"
	"github.com/klypp-app/klypp-backend/internal/models"
)

// Log entry types.
const (
	LogTypeCanceled = "canceled"
	LogTypeShared   = "shared"
)

// SavingsLog is one line of the savings history view: either a canceled
// plan whose share the user no longer pays, or an active shared plan
// whose share is below the full cost.
type SavingsLog struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Cost        decimal.Decimal `json:"cost"`
	UserShare   decimal.Decimal `json:"user_share"`
	SavedAmount decimal.Decimal `json:"saved_amount"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	WasOwner    bool            `json:"was_owner,omitempty"`
	MemberCount int             `json:"member_count"`
}

// SavingsLogs builds the combined log from active shared plans and
// canceled plans, newest first. Unshared active plans are omitted: with
// a single member there is nothing saved to report.
func SavingsLogs(plans []models.Plan, canceled []models.CanceledPlan) []SavingsLog {
	logs := make([]SavingsLog, 0, len(plans)+len(canceled))

	for _, cp := range canceled {
		share := costshare.CanceledShare(cp.Cost, cp.MemberCount, cp.RenewalFrequency)
		logs = append(logs, SavingsLog{
			ID:          cp.ID.String(),
			Name:        cp.Name,
			Cost:        cp.Cost,
			UserShare:   share,
			SavedAmount: share,
			Date:        cp.CanceledAt.Format("2006-01-02"),
			Type:        LogTypeCanceled,
			WasOwner:    cp.WasOwner,
			MemberCount: cp.MemberCount,
		})
	}

	for _, plan := range plans {
		count := costshare.MemberCount(len(plan.AcceptedMembers()))
		if count <= 1 {
			continue
		}
		logs = append(logs, SavingsLog{
			ID:          plan.ID.String(),
			Name:        plan.Name,
			Cost:        plan.Cost,
			UserShare:   costshare.Share(plan.Cost, count),
			SavedAmount: costshare.Savings(plan.Cost, count),
			Date:        plan.CreatedAt.Format("2006-01-02"),
			Type:        LogTypeShared,
			MemberCount: count - 1,
		})
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].Date > logs[j].Date })
	return logs
}

// TrendPoint is one month of the spending/savings trend chart.
type TrendPoint struct {
	Month    string          `json:"month"`
	Spending decimal.Decimal `json:"spending"`
	Savings  decimal.Decimal `json:"savings"`
}

// MonthlyTrend returns a six-month series ending at the current month.
// Historical spending is not recorded anywhere yet, so the series is a
// deterministic placeholder derived from the month index, matching the
// shape the dashboard chart expects.
// CategoryShare is one slice of the spending-by-category pie chart.
type CategoryShare struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// CategoryBreakdown returns the category spending series. Plans carry no
// category field, so like the trend this is the fixed placeholder series
// the dashboard chart renders.
func CategoryBreakdown() []CategoryShare {
	return []CategoryShare{
		{Name: "Entertainment", Value: decimal.NewFromInt(120), Color: "#8b5cf6"},
		{Name: "Productivity", Value: decimal.NewFromInt(80), Color: "#3b82f6"},
		{Name: "Education", Value: decimal.NewFromInt(60), Color: "#10b981"},
		{Name: "Social", Value: decimal.NewFromInt(40), Color: "#f59e0b"},
		{Name: "Utilities", Value: decimal.NewFromInt(30), Color: "#ef4444"},
	}
}

func MonthlyTrend(now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 6)
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 5; i >= 0; i-- {
		month := base.AddDate(0, -i, 0)
		idx := int(month.Month())
		spending := decimal.NewFromInt(int64(200 + (idx*37)%200))
		savings := spending.Mul(decimal.NewFromFloat(0.10 + float64(idx%3)*0.08)).Round(2)
		points = append(points, TrendPoint{
			Month:    month.Format("Jan"),
			Spending: spending,
			Savings:  savings,
		})
	}
	return points
}
