package prompt

import (
	"regexp"
	"strings"
)

// Roman Urdu/Hindi vocabulary grouped the way customers actually mix it
// into pizza orders: greetings, fillers, food words, verbs, and numerals.
var romanUrduHindiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(salaam|salam|namaste|namaskar|kya hal|kaisay|kaisi|kaise)\b`),
	regexp.MustCompile(`(?i)\b(acha|achchha|theek|thik|haan|han|nahi|nai|kya|kyun|kab|kahan)\b`),
	regexp.MustCompile(`(?i)\b(khana|bhook|paisa|kitna|kitne)\b`),
	regexp.MustCompile(`(?i)\b(chahiye|chahta|chahti|dikhao|batao|dijiye|karna|karo|krdo|lena|lelo)\b`),
	regexp.MustCompile(`(?i)\b(ek|do|teen|char|panch|paanch|sau|hazaar)\b`),
}

// IsRomanUrduHindi reports whether the message reads as Roman Urdu/Hindi.
// A single match is too noisy ("do" is an English word); two distinct
// vocabulary groups must hit.
func IsRomanUrduHindi(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	matches := 0
	for _, p := range romanUrduHindiPatterns {
		if p.MatchString(text) {
			matches++
			if matches >= 2 {
				return true
			}
		}
	}
	return false
}

const romanUrduHindiPrefix = `IMPORTANT: The user is writing in Roman Urdu/Hindi (Urdu/Hindi in Roman script).
Understand their message and answer in simple, friendly English; common Urdu/Hindi words like "acha" or "theek hai" are fine where they fit.

`
