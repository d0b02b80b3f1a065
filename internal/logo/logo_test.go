package logo

import (
	"net/url"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantDomain string
	}{
		{"plain name", "Netflix", "netflix"},
		{"strips plan filler", "Netflix Premium Plan", "netflix"},
		{"strips subscription filler", "Spotify subscription", "spotify"},
		{"collapses punctuation and spaces", "Disney+ Hotstar", "disneyhotstar"},
		{"empty after cleaning", "Premium Plan", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, domain := slugify(tt.input); domain != tt.wantDomain {
				t.Errorf("slugify(%q) domain = %q, want %q", tt.input, domain, tt.wantDomain)
			}
		})
	}
}

func TestSearch_AvatarInitialIsFirstRune(t *testing.T) {
	// "ÜÇ" survives filler stripping but reduces to an empty domain, so
	// no probe happens and the avatar must carry the whole first rune,
	// not its leading byte.
	c := NewClient(0)
	got := c.Search("ÜÇ Plan")
	want := "https://ui-avatars.com/api/?name=" + url.QueryEscape("Ü") +
		"&background=random&color=fff&size=128"
	if got != want {
		t.Errorf("Search(%q) = %q, want %q", "ÜÇ Plan", got, want)
	}
}

func TestSearch_FallsBackToAvatar(t *testing.T) {
	// A name that cleans to nothing can never probe a domain, so the
	// avatar fallback must kick in without any network round trip.
	c := NewClient(0)
	got := c.Search("Premium Plan")
	want := "https://ui-avatars.com/api/?name=K&background=random&color=fff&size=128"
	if got != want {
		t.Errorf("Search fallback = %q, want %q", got, want)
	}
}
