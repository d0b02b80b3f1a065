package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/klypp-app/klypp-backend/internal/dto"
	"github.com/klypp-app/klypp-backend/internal/models"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"plain date", "2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", "2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), false},
		{"garbage", "15/03/2024", time.Time{}, true},
		{"empty", "", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("parseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeFrequency(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"monthly", models.FrequencyMonthly},
		{"YEARLY", models.FrequencyYearly},
		{"  Quarterly ", models.FrequencyQuarterly},
		{"", models.FrequencyMonthly},
	}
	for _, tt := range tests {
		if got := normalizeFrequency(tt.input); got != tt.want {
			t.Errorf("normalizeFrequency(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAtCapacity(t *testing.T) {
	tests := []struct {
		name     string
		accepted int
		max      int
		want     bool
	}{
		{"owner only, room left", 0, 2, false},
		{"last seat taken", 1, 2, true},
		{"room in a large plan", 2, 4, false},
		{"exactly full", 3, 4, true},
		{"over capacity after a limit decrease", 4, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := atCapacity(tt.accepted, tt.max); got != tt.want {
				t.Errorf("atCapacity(%d, %d) = %v, want %v", tt.accepted, tt.max, got, tt.want)
			}
		})
	}
}

func TestResponseStatus(t *testing.T) {
	if status, err := responseStatus(dto.InvitationActionAccept); err != nil || status != models.MemberStatusAccepted {
		t.Errorf("responseStatus(ACCEPT) = (%q, %v), want (ACCEPTED, nil)", status, err)
	}
	if status, err := responseStatus(dto.InvitationActionDecline); err != nil || status != models.MemberStatusDeclined {
		t.Errorf("responseStatus(DECLINE) = (%q, %v), want (DECLINED, nil)", status, err)
	}
	if _, err := responseStatus("MAYBE"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("responseStatus(MAYBE) error = %v, want ErrInvalidInput", err)
	}
}

// Once a response has landed, a racing second response of either kind
// must fail the post-lock status check instead of re-applying the
// transition (double counter increment, duplicate owner notification).
func TestInvitationRespondsExactlyOnce(t *testing.T) {
	actions := []string{dto.InvitationActionAccept, dto.InvitationActionDecline}
	for _, first := range actions {
		if err := canRespond(models.MemberStatusPending); err != nil {
			t.Fatalf("canRespond(PENDING) = %v, want nil", err)
		}
		settled, err := responseStatus(first)
		if err != nil {
			t.Fatalf("responseStatus(%s) error = %v", first, err)
		}
		for _, second := range actions {
			if err := canRespond(settled); !errors.Is(err, ErrInvitationProcessed) {
				t.Errorf("%s after %s: canRespond(%s) = %v, want ErrInvitationProcessed",
					second, first, settled, err)
			}
		}
	}
}

func TestCanRespond(t *testing.T) {
	if err := canRespond(models.MemberStatusPending); err != nil {
		t.Errorf("canRespond(PENDING) = %v, want nil", err)
	}
	for _, status := range []string{models.MemberStatusAccepted, models.MemberStatusDeclined} {
		if err := canRespond(status); err != ErrInvitationProcessed {
			t.Errorf("canRespond(%s) = %v, want ErrInvitationProcessed", status, err)
		}
	}
}

func TestBuildPlanResponse(t *testing.T) {
	ownerID := uuid.New()
	memberID := uuid.New()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	plan := models.Plan{
		ID:               uuid.New(),
		Name:             "Netflix",
		Cost:             decimal.RequireFromString("30.00"),
		RenewalFrequency: models.FrequencyMonthly,
		MaxMembers:       4,
		CurrentMembers:   3,
		NextRenewalDate:  time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		OwnerID:          ownerID,
		Owner:            models.User{ID: ownerID, Name: "Owner"},
		Members: []models.PlanMember{
			{ID: uuid.New(), UserID: memberID, Status: models.MemberStatusAccepted, User: models.User{ID: memberID, Name: "Member"}},
			{ID: uuid.New(), UserID: uuid.New(), Status: models.MemberStatusAccepted},
			{ID: uuid.New(), UserID: uuid.New(), Status: models.MemberStatusPending},
		},
	}

	// Owner plus two accepted members: $30 splits into $10 shares. The
	// pending row contributes nothing.
	resp := buildPlanResponse(&plan, ownerID, now)
	if !resp.YourShare.Equal(decimal.RequireFromString("10.00")) {
		t.Errorf("YourShare = %s, want 10.00", resp.YourShare)
	}
	if !resp.IsOwner {
		t.Error("IsOwner = false for the owner")
	}
	if resp.RenewsIn != 10 {
		t.Errorf("RenewsIn = %d, want 10", resp.RenewsIn)
	}
	if resp.RenewalDate != "Jun 11, 2024" {
		t.Errorf("RenewalDate = %q, want %q", resp.RenewalDate, "Jun 11, 2024")
	}
	if len(resp.Members) != 3 {
		t.Errorf("Members = %d rows, want 3", len(resp.Members))
	}

	memberResp := buildPlanResponse(&plan, memberID, now)
	if memberResp.IsOwner {
		t.Error("IsOwner = true for a non-owner member")
	}
	if !memberResp.YourShare.Equal(resp.YourShare) {
		t.Errorf("share differs by caller: %s vs %s", memberResp.YourShare, resp.YourShare)
	}
}
