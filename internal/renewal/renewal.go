// Package renewal computes plan renewal dates. The arithmetic is plain
// calendar addition via time.AddDate, so month-end overflow normalizes
// forward (Jan 31 + 1 month = Mar 2 or Mar 3 depending on leap year).
package renewal

import (
	"math"
	"time"

	"github.com/klypp-app/klypp-backend/internal/models"
)

// NextRenewalDate returns startDate advanced by one renewal period.
// Unrecognized frequencies default to monthly.
func NextRenewalDate(startDate time.Time, frequency string) time.Time {
	switch frequency {
	case models.FrequencyMonthly:
		return startDate.AddDate(0, 1, 0)
	case models.FrequencyQuarterly:
		return startDate.AddDate(0, 3, 0)
	case models.FrequencyYearly:
		return startDate.AddDate(1, 0, 0)
	default:
		return startDate.AddDate(0, 1, 0)
	}
}

// DaysUntil returns the whole number of days from now until the renewal
// date, rounding any partial day up. Negative when the date has passed;
// the stored date is never advanced automatically once it does.
func DaysUntil(renewalDate, now time.Time) int {
	return int(math.Ceil(renewalDate.Sub(now).Hours() / 24))
}
