package costshare

import (
	"testing"

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

func TestShare_ThreeWaySplit(t *testing.T) {
	// $30 plan, 2 accepted members + owner.
	count := MemberCount(2)
	if count != 3 {
		t.Fatalf("MemberCount(2) = %d, want 3", count)
	}

	share := Share(dec("30"), count)
	if !share.Equal(dec("10.00")) {
		t.Errorf("Share(30, 3) = %s, want 10.00", share)
	}

	saved := Savings(dec("30"), count)
	if !saved.Equal(dec("20.00")) {
		t.Errorf("Savings(30, 3) = %s, want 20.00", saved)
	}
}

func TestShare_RoundsHalfAwayFromZero(t *testing.T) {
	// 10 / 3 = 3.333... -> 3.33; half-cent boundaries round away from zero.
	if got := Share(dec("10"), 3); !got.Equal(dec("3.33")) {
		t.Errorf("Share(10, 3) = %s, want 3.33", got)
	}
	if got := Share(dec("0.10"), 4); !got.Equal(dec("0.03")) {
		t.Errorf("Share(0.10, 4) = %s, want 0.03", got)
	}
}

func TestShare_TimesCountWithinRoundingTolerance(t *testing.T) {
	costs := []string{"9.99", "15.49", "30", "100.01", "7"}
	for _, c := range costs {
		cost := dec(c)
		for count := 1; count <= 6; count++ {
			share := Share(cost, count)
			total := share.Mul(decimal.NewFromInt(int64(count)))
			drift := total.Sub(cost).Abs()
			// At most one cent per member of rounding drift.
			tolerance := dec("0.01").Mul(decimal.NewFromInt(int64(count)))
			if drift.GreaterThan(tolerance) {
				t.Errorf("cost=%s count=%d: share*count=%s drifts %s from cost", cost, count, total, drift)
			}
		}
	}
}

func TestSavings_ZeroWhenAlone(t *testing.T) {
	if got := Savings(dec("42.50"), 1); !got.IsZero() {
		t.Errorf("Savings with a single member = %s, want 0", got)
	}
}

func TestShare_ClampsCountToOne(t *testing.T) {
	if got := Share(dec("12"), 0); !got.Equal(dec("12.00")) {
		t.Errorf("Share(12, 0) = %s, want 12.00", got)
	}
}

func TestShare_ToleratesOverCapacityCounts(t *testing.T) {
	// Capacity is enforced at invite/accept time only; the model divides
	// over however many accepted members exist.
	if got := Share(dec("30"), 6); !got.Equal(dec("5.00")) {
		t.Errorf("Share(30, 6) = %s, want 5.00", got)
	}
}

func TestCanceledShare_FallbackChain(t *testing.T) {
	tests := []struct {
		name        string
		cost        string
		memberCount int
		frequency   string
		want        string
	}{
		{"stored member count", "30", 2, models.FrequencyYearly, "10.00"},
		{"monthly heuristic assumes two people", "18", 0, models.FrequencyMonthly, "9.00"},
		{"no data, non-monthly falls back to full cost", "120", 0, models.FrequencyYearly, "120.00"},
		{"quarterly without members also full cost", "45", 0, models.FrequencyQuarterly, "45.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanceledShare(dec(tt.cost), tt.memberCount, tt.frequency)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("CanceledShare(%s, %d, %s) = %s, want %s",
					tt.cost, tt.memberCount, tt.frequency, got, tt.want)
			}
		})
	}
}
