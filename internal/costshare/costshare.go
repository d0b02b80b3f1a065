// Package costshare divides a plan's total cost among its members and
// derives the savings a sharer gets versus paying alone. All money math
// runs on decimals; amounts are rounded to cents at the point they are
// reported, not carried as fractional cents into sums.
package costshare

import (
	"github.com/shopspring/decimal"

	"github.com/klypp-app/klypp-backend/internal/models"
)

var two = decimal.NewFromInt(2)

// MemberCount is the number of people paying for a plan: the accepted
// member rows plus the owner, who never has a row of their own. Always
// at least 1.
func MemberCount(acceptedMembers int) int {
	return acceptedMembers + 1
}

// Share is one member's portion of the plan cost, rounded to 2 decimal
// places half away from zero. memberCount below 1 is treated as 1; the
// count may legitimately exceed the plan's capacity (capacity is only
// enforced at invite/accept time) and is used as-is.
func Share(cost decimal.Decimal, memberCount int) decimal.Decimal {
	if memberCount < 1 {
		memberCount = 1
	}
	return cost.Div(decimal.NewFromInt(int64(memberCount))).Round(2)
}

// Savings is what a sharer avoids paying versus covering the whole cost
// alone: cost minus their share. Zero for an unshared plan.
func Savings(cost decimal.Decimal, memberCount int) decimal.Decimal {
	if memberCount <= 1 {
		return decimal.Zero
	}
	return cost.Sub(Share(cost, memberCount))
}

// CanceledShare is the savings attributed to a canceled plan: the share
// the user no longer pays. When the snapshot carried a member count the
// share is cost/(count+1); monthly plans without member data assume two
// people total; otherwise the full cost is used.
func CanceledShare(cost decimal.Decimal, memberCount int, renewalFrequency string) decimal.Decimal {
	switch {
	case memberCount > 0:
		return Share(cost, MemberCount(memberCount))
	case renewalFrequency == models.FrequencyMonthly:
		return cost.Div(two).Round(2)
	default:
		return cost.Round(2)
	}
}
