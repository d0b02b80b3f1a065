package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/klypp-app/klypp-backend/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func plan(cost string, accepted int) models.Plan {
	p := models.Plan{
		ID:               uuid.New(),
		Name:             "plan",
		Cost:             dec(cost),
		RenewalFrequency: models.FrequencyMonthly,
	}
	for i := 0; i < accepted; i++ {
		p.Members = append(p.Members, models.PlanMember{Status: models.MemberStatusAccepted})
	}
	// A pending row must never count toward shares.
	p.Members = append(p.Members, models.PlanMember{Status: models.MemberStatusPending})
	return p
}

func TestSummarize(t *testing.T) {
	plans := []models.Plan{
		plan("30", 2),   // share 10.00, savings 20.00
		plan("9.99", 0), // unshared: share 9.99, savings 0
	}
	canceled := []models.CanceledPlan{
		{Cost: dec("24"), MemberCount: 1, RenewalFrequency: models.FrequencyMonthly},  // share 12.00
		{Cost: dec("15"), MemberCount: 0, RenewalFrequency: models.FrequencyMonthly},  // heuristic: 7.50
		{Cost: dec("100"), MemberCount: 0, RenewalFrequency: models.FrequencyYearly},  // full cost
	}

	s := Summarize(plans, canceled)

	if s.PlanCount != 2 {
		t.Errorf("PlanCount = %d, want 2", s.PlanCount)
	}
	if want := dec("19.99"); !s.CurrentMonthSpending.Equal(want) {
		t.Errorf("CurrentMonthSpending = %s, want %s", s.CurrentMonthSpending, want)
	}
	if want := dec("20.00"); !s.SharedPlanSavings.Equal(want) {
		t.Errorf("SharedPlanSavings = %s, want %s", s.SharedPlanSavings, want)
	}
	if want := dec("119.50"); !s.CanceledPlanSavings.Equal(want) {
		t.Errorf("CanceledPlanSavings = %s, want %s", s.CanceledPlanSavings, want)
	}
	if want := dec("139.50"); !s.TotalSavings.Equal(want) {
		t.Errorf("TotalSavings = %s, want %s", s.TotalSavings, want)
	}
	if s.CanceledPlanCount != 3 {
		t.Errorf("CanceledPlanCount = %d, want 3", s.CanceledPlanCount)
	}
	if s.Error != "" {
		t.Errorf("unexpected error field: %q", s.Error)
	}
}

func TestSummarize_EmptyInputs(t *testing.T) {
	s := Summarize(nil, nil)
	if s.PlanCount != 0 || !s.CurrentMonthSpending.IsZero() || !s.TotalSavings.IsZero() {
		t.Errorf("empty summary not zeroed: %+v", s)
	}
}

func TestDegraded_KeepsActiveSectionReportsError(t *testing.T) {
	s := Degraded([]models.Plan{plan("30", 2)}, "canceled plans unavailable")
	if s.Error != "canceled plans unavailable" {
		t.Errorf("Error = %q", s.Error)
	}
	if !s.CanceledPlanSavings.IsZero() || s.CanceledPlanCount != 0 {
		t.Errorf("canceled section not zeroed: %+v", s)
	}
	if want := dec("10.00"); !s.CurrentMonthSpending.Equal(want) {
		t.Errorf("CurrentMonthSpending = %s, want %s", s.CurrentMonthSpending, want)
	}
	if want := dec("20.00"); !s.TotalSavings.Equal(want) {
		t.Errorf("TotalSavings = %s, want %s", s.TotalSavings, want)
	}
}

func TestCanceledWindowStart(t *testing.T) {
	now := time.Date(2024, time.May, 17, 15, 30, 0, 0, time.UTC)
	want := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	if got := CanceledWindowStart(now); !got.Equal(want) {
		t.Errorf("CanceledWindowStart = %s, want %s", got, want)
	}

	// Window start wraps the year boundary.
	now = time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	want = time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)
	if got := CanceledWindowStart(now); !got.Equal(want) {
		t.Errorf("CanceledWindowStart across year = %s, want %s", got, want)
	}
}

func TestSavingsLogs(t *testing.T) {
	shared := plan("30", 2)
	shared.CreatedAt = time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	unshared := plan("9.99", 0)
	unshared.CreatedAt = time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)

	canceled := models.CanceledPlan{
		ID:               uuid.New(),
		Name:             "old plan",
		Cost:             dec("24"),
		MemberCount:      1,
		RenewalFrequency: models.FrequencyMonthly,
		WasOwner:         true,
		CanceledAt:       time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC),
	}

	logs := SavingsLogs([]models.Plan{shared, unshared}, []models.CanceledPlan{canceled})

	if len(logs) != 2 {
		t.Fatalf("got %d logs, want 2 (unshared plan must be omitted)", len(logs))
	}

	// Newest first: the cancellation is more recent than the shared plan.
	if logs[0].Type != LogTypeCanceled {
		t.Errorf("logs[0].Type = %q, want %q", logs[0].Type, LogTypeCanceled)
	}
	if !logs[0].UserShare.Equal(dec("12.00")) || !logs[0].SavedAmount.Equal(dec("12.00")) {
		t.Errorf("canceled log share/saved = %s/%s, want 12.00/12.00", logs[0].UserShare, logs[0].SavedAmount)
	}
	if !logs[0].WasOwner {
		t.Error("canceled log should carry WasOwner")
	}

	if logs[1].Type != LogTypeShared {
		t.Errorf("logs[1].Type = %q, want %q", logs[1].Type, LogTypeShared)
	}
	if !logs[1].UserShare.Equal(dec("10.00")) || !logs[1].SavedAmount.Equal(dec("20.00")) {
		t.Errorf("shared log share/saved = %s/%s, want 10.00/20.00", logs[1].UserShare, logs[1].SavedAmount)
	}
	if logs[1].MemberCount != 2 {
		t.Errorf("shared log MemberCount = %d, want 2", logs[1].MemberCount)
	}
}

func TestMonthlyTrend(t *testing.T) {
	now := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)
	points := MonthlyTrend(now)

	if len(points) != 6 {
		t.Fatalf("got %d points, want 6", len(points))
	}
	wantMonths := []string{"Dec", "Jan", "Feb", "Mar", "Apr", "May"}
	for i, p := range points {
		if p.Month != wantMonths[i] {
			t.Errorf("points[%d].Month = %q, want %q", i, p.Month, wantMonths[i])
		}
		if p.Spending.LessThanOrEqual(decimal.Zero) {
			t.Errorf("points[%d].Spending = %s, want > 0", i, p.Spending)
		}
		if p.Savings.GreaterThan(p.Spending) {
			t.Errorf("points[%d]: savings %s exceeds spending %s", i, p.Savings, p.Spending)
		}
	}
}

func TestCategoryBreakdown(t *testing.T) {
	categories := CategoryBreakdown()

	if len(categories) != 5 {
		t.Fatalf("got %d categories, want 5", len(categories))
	}
	if categories[0].Name != "Entertainment" || !categories[0].Value.Equal(decimal.NewFromInt(120)) {
		t.Errorf("categories[0] = %s/%s, want Entertainment/120", categories[0].Name, categories[0].Value)
	}
	for i, cat := range categories {
		if cat.Value.LessThanOrEqual(decimal.Zero) {
			t.Errorf("categories[%d].Value = %s, want > 0", i, cat.Value)
		}
		if !strings.HasPrefix(cat.Color, "#") {
			t.Errorf("categories[%d].Color = %q, want a hex color", i, cat.Color)
		}
	}
}
