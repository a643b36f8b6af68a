package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation helpers shared by the handlers.  Each returns a plain bool; the
// handler owns the per-field error message so the envelope stays in one
// place.

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRe = regexp.MustCompile(`^(\+[0-9]{1,3})?[0-9 .\-]{6,20}$`)
	hhmmRe  = regexp.MustCompile(`^([01][0-9]|2[0-3])[0-5][0-9]$`)
	ymRe    = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool { return emailRe.MatchString(strings.TrimSpace(s)) }

// ValidPhone reports whether s looks like a phone number (optional +CC
// prefix, digits with spaces/dots/dashes).
func ValidPhone(s string) bool { return phoneRe.MatchString(strings.TrimSpace(s)) }

// ValidHHMM reports whether s is a zero-padded HHMM time string ("0900").
func ValidHHMM(s string) bool { return hhmmRe.MatchString(s) }

// ValidYearMonth reports whether s is a YYYY-MM date.
func ValidYearMonth(s string) bool { return ymRe.MatchString(s) }

// ValidPassword enforces the password complexity rule: at least 8
// characters with one upper-case letter, one lower-case letter and one
// digit.
func ValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// MinLen reports whether the trimmed string has at least n runes.
func MinLen(s string, n int) bool {
	return len([]rune(strings.TrimSpace(s))) >= n
}

// InRange reports whether v lies in [min, max].
func InRange(v, min, max float64) bool { return v >= min && v <= max }

// ValidRating reports whether v is a rating between 0 and 5 in half steps.
func ValidRating(v float64) bool {
	if v < 0 || v > 5 {
		return false
	}
	doubled := v * 2
	return doubled == float64(int64(doubled))
}

// accentMap folds the accented characters seen in French content to their
// ASCII base.  Kept as an explicit table instead of a text/transform chain:
// the input set is small and the table is trivial to extend.
var accentMap = map[rune]rune{
	'à': 'a', 'â': 'a', 'ä': 'a', 'á': 'a', 'ã': 'a',
	'ç': 'c',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'î': 'i', 'ï': 'i', 'í': 'i',
	'ô': 'o', 'ö': 'o', 'ó': 'o', 'õ': 'o',
	'ù': 'u', 'û': 'u', 'ü': 'u', 'ú': 'u',
	'ÿ': 'y',
	'ñ': 'n',
}

// StripAccents replaces accented letters with their ASCII base letter,
// preserving case.
func StripAccents(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		lower := unicode.ToLower(r)
		if base, ok := accentMap[lower]; ok {
			if unicode.IsUpper(r) {
				b.WriteRune(unicode.ToUpper(base))
			} else {
				b.WriteRune(base)
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Slugify lowers the string, strips accents and collapses every run of
// non-alphanumeric characters into a single dash.  Used for gallery
// directory names derived from offer names.
func Slugify(s string) string {
	s = strings.ToLower(StripAccents(s))
	var b strings.Builder
	b.Grow(len(s))
	lastDash := true // suppress a leading dash
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
