package utils

import "testing"

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"jean.dupont@example.com", true},
		{"  jean@example.fr  ", true},
		{"a+b@sub.domain.org", true},
		{"", false},
		{"no-at-sign", false},
		{"@example.com", false},
		{"user@", false},
		{"user@host", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.in); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0612345678", true},
		{"+33 6 12 34 56 78", true},
		{"01.23.45.67.89", true},
		{"12345", false},
		{"call me", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidPhone(tt.in); got != tt.want {
			t.Errorf("ValidPhone(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidHHMM(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0000", true},
		{"0900", true},
		{"2359", true},
		{"2400", false},
		{"0960", false},
		{"900", false},
		{"09:00", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidHHMM(tt.in); got != tt.want {
			t.Errorf("ValidHHMM(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidYearMonth(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"2019-01", true},
		{"2024-12", true},
		{"2024-13", false},
		{"2024-00", false},
		{"2024-1", false},
		{"2024", false},
		{"2024-01-01", false},
	}
	for _, tt := range tests {
		if got := ValidYearMonth(tt.in); got != tt.want {
			t.Errorf("ValidYearMonth(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Abcdef12", true},
		{"xY9xY9xY9", true},
		{"abcdef12", false}, // no upper
		{"ABCDEF12", false}, // no lower
		{"Abcdefgh", false}, // no digit
		{"Ab1", false},      // too short
	}
	for _, tt := range tests {
		if got := ValidPassword(tt.in); got != tt.want {
			t.Errorf("ValidPassword(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidRating(t *testing.T) {
	valid := []float64{0, 0.5, 1, 2.5, 4.5, 5}
	for _, v := range valid {
		if !ValidRating(v) {
			t.Errorf("ValidRating(%v) = false, want true", v)
		}
	}
	invalid := []float64{-0.5, 5.5, 3.2, 4.75}
	for _, v := range invalid {
		if ValidRating(v) {
			t.Errorf("ValidRating(%v) = true, want false", v)
		}
	}
}

func TestMinLen(t *testing.T) {
	if MinLen("  a  ", 2) {
		t.Error("padding counted toward the minimum length")
	}
	if !MinLen("éé", 2) {
		t.Error("multibyte runes undercounted")
	}
}

func TestStripAccents(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Citroën", "Citroen"},
		{"Mégane équipée", "Megane equipee"},
		{"À VENDRE", "A VENDRE"},
		{"garçon", "garcon"},
		{"plain ascii", "plain ascii"},
	}
	for _, tt := range tests {
		if got := StripAccents(tt.in); got != tt.want {
			t.Errorf("StripAccents(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Peugeot 208 GT Line", "peugeot-208-gt-line"},
		{"Mégane IV équipée!", "megane-iv-equipee"},
		{"  --weird__input--  ", "weird-input"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
