package interp

import (
	"strings"
	"unicode"
)

// Severity is the color class of a status label.
type Severity string

const (
	Neutral  Severity = "neutral"
	Positive Severity = "positive"
	Caution  Severity = "caution"
	Critical Severity = "critical"
)

var (
	criticalWords = []string{
		"rejected", "failed", "failure", "expired", "terminated", "cancelled", "canceled",
		"declined", "overdue", "error", "blocked", "denied", "inactive", "critical",
	}
	cautionWords = []string{
		"pending", "review", "draft", "in progress", "waiting", "on leave", "on hold",
		"submitted", "scheduled", "warning", "at risk",
	}
	positiveWords = []string{
		"active", "approved", "completed", "complete", "success", "successful", "done",
		"paid", "hired", "enabled", "verified", "published", "open",
	}
)

// ClassifyStatus maps free status text to a severity by keyword matching on
// the lowercased, whitespace-normalized text. A keyword matches at the start of
// a word, so "Reviewed" and "Drafts" count but "Reactivated" does not contain
// "active". Critical words win
// over caution words, which win over positive ones, so "Inactive" is critical
// and "Pending Approval" is caution.
func ClassifyStatus(status string) Severity {
	norm := " " + normalizeWords(status)
	switch {
	case hasWordPrefix(norm, criticalWords):
		return Critical
	case hasWordPrefix(norm, cautionWords):
		return Caution
	case hasWordPrefix(norm, positiveWords):
		return Positive
	}
	return Neutral
}

// severityOfVariant reads explicit variant names used by Banner, Toast and Pill.
func severityOfVariant(v string) (Severity, bool) {
	switch normalizeWords(v) {
	case "success", "positive", "green":
		return Positive, true
	case "warning", "caution", "orange", "yellow":
		return Caution, true
	case "error", "danger", "critical", "red":
		return Critical, true
	case "info", "neutral", "gray", "grey", "blue":
		return Neutral, true
	}
	return Neutral, false
}

func normalizeWords(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}

// hasWordPrefix reports whether some word, or run of words, in padded starts
// with one of words. padded must begin with a space.
func hasWordPrefix(padded string, words []string) bool {
	for _, w := range words {
		if strings.Contains(padded, " "+w) {
			return true
		}
	}
	return false
}
