package renewal

import (
	"testing"
	"time"

	"github.com/klypp-app/klypp-backend/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextRenewalDate(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		frequency string
		want      time.Time
	}{
		{"monthly", date(2024, time.March, 15), models.FrequencyMonthly, date(2024, time.April, 15)},
		{"quarterly", date(2024, time.January, 10), models.FrequencyQuarterly, date(2024, time.April, 10)},
		{"yearly", date(2024, time.June, 1), models.FrequencyYearly, date(2025, time.June, 1)},
		{"unknown frequency defaults to monthly", date(2024, time.March, 15), "weekly", date(2024, time.April, 15)},
		{"empty frequency defaults to monthly", date(2024, time.March, 15), "", date(2024, time.April, 15)},
		// Month-end overflow normalizes forward: Jan 31 + 1 month is
		// Feb 31, which time.AddDate carries into March 2 (2024 is a
		// leap year, so February has 29 days).
		{"jan 31 monthly overflows to mar 2", date(2024, time.January, 31), models.FrequencyMonthly, date(2024, time.March, 2)},
		{"jan 31 monthly in a non-leap year overflows to mar 3", date(2023, time.January, 31), models.FrequencyMonthly, date(2023, time.March, 3)},
		{"feb 29 yearly lands on mar 1", date(2024, time.February, 29), models.FrequencyYearly, date(2025, time.March, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextRenewalDate(tt.start, tt.frequency)
			if !got.Equal(tt.want) {
				t.Errorf("NextRenewalDate(%s, %q) = %s, want %s",
					tt.start.Format("2006-01-02"), tt.frequency,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		renewal time.Time
		want    int
	}{
		{"partial day rounds up", time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), 1},
		{"exactly a week", time.Date(2024, time.May, 8, 12, 0, 0, 0, time.UTC), 7},
		{"same instant", now, 0},
		{"already passed", time.Date(2024, time.April, 28, 12, 0, 0, 0, time.UTC), -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.renewal, now); got != tt.want {
				t.Errorf("DaysUntil(%s) = %d, want %d", tt.renewal.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}
