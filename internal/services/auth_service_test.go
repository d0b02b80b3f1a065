package services

import "testing"

func TestUsernameBase(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Alice", "alice"},
		{"spaces and case", "Jane Doe", "janedoe"},
		{"digits kept", "Agent 47", "agent47"},
		{"punctuation stripped", "O'Brien-Smith", "obriensmith"},
		{"non-ascii stripped", "Ünal Çelik", "nalelik"},
		{"nothing left", "!!!", "user"},
		{"empty", "", "user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usernameBase(tt.input); got != tt.want {
				t.Errorf("usernameBase(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
