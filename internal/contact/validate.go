package contact

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// phonePrefix is the international prefix rewritten to localPrefix before
// a phone number is checked.
const (
	phonePrefix = "+7"
	localPrefix = "8"
	phoneDigits = 11
)

// NormalizeName trims s, applies NFC and capitalizes every word.
// "  anna maria " becomes "Anna Maria".
func NormalizeName(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return cases.Title(language.Und).String(s)
}

// ValidName reports whether s contains only letters, digits and whitespace
// and is in title case.
func ValidName(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return isTitle(s)
}

// isTitle implements the word-boundary title case rule: upper-case runes
// only after uncased runes, lower-case runes only after cased runes, and
// at least one cased rune overall.
func isTitle(s string) bool {
	cased, prevCased := false, false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, cased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased, cased = true, true
		default:
			prevCased = false
		}
	}
	return cased
}

// NormalizePhone rewrites a leading "+7" to "8". Other input is returned
// unchanged.
func NormalizePhone(s string) string {
	if rest, ok := strings.CutPrefix(s, phonePrefix); ok {
		return localPrefix + rest
	}
	return s
}

// ValidPhone reports whether s, after NormalizePhone, is exactly 11 ASCII
// digits.
func ValidPhone(s string) bool {
	p := NormalizePhone(s)
	if len(p) != phoneDigits {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return false
		}
	}
	return true
}

// ValidDate reports whether s is a DD.MM.YYYY date naming a real day.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
