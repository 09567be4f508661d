package utils

import (
	"strings"
	"unicode"
)

// NormalizeTerm lower-cases a term, turns separators (-, _, /) into spaces
// and collapses repeated whitespace
func NormalizeTerm(term string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(strings.TrimSpace(term)) {
		if r == '-' || r == '_' || r == '/' || unicode.IsSpace(r) {
			if !space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// CanonicalOption returns the option equal to value, ignoring case and
// surrounding whitespace
func CanonicalOption(value string, options []string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, opt := range options {
		if opt == value {
			return opt, true
		}
	}
	for _, opt := range options {
		if strings.EqualFold(opt, value) {
			return opt, true
		}
	}
	return "", false
}

// MatchOption resolves a free-form term against canonical options.
// Order: exact (normalized) match, alias, then the same spelling with spaces
// removed. Partial names never match.
func MatchOption(term string, options []string, aliases map[string]string) (string, bool) {
	norm := NormalizeTerm(term)
	if norm == "" {
		return "", false
	}

	for _, opt := range options {
		if NormalizeTerm(opt) == norm {
			return opt, true
		}
	}

	for alias, target := range aliases {
		if NormalizeTerm(alias) == norm {
			return target, true
		}
	}

	// "wifi" vs "Wi-Fi" style spelling differences
	compact := strings.ReplaceAll(norm, " ", "")
	for _, opt := range options {
		if strings.ReplaceAll(NormalizeTerm(opt), " ", "") == compact {
			return opt, true
		}
	}

	return "", false
}
