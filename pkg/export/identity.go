package export

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold lowercases s using full Unicode case folding, so keys, sort order, and
// the deleted-account heuristic compare consistently across scripts.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// firstNonEmpty returns the first candidate that is non-empty after trimming.
// The extractors use it to keep field priority orders auditable in one place.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if v := strings.TrimSpace(c); v != "" {
			return v
		}
	}
	return ""
}

// SplitName splits a display name into the first whitespace token and the
// remaining tokens joined by single spaces. Single-token names yield an
// empty last name.
func SplitName(fullName string) (firstName, lastName string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// BuildKey returns the deduplication key for a participant, by priority:
// platform identifier, then username, then first/last name. Username and
// name components are case-folded so key comparison is case-insensitive
// even though display fields keep their original case.
func BuildKey(id, username, firstName, lastName string) string {
	if id != "" {
		return "id:" + id
	}
	if username != "" {
		return "u:" + Fold(username)
	}
	return "n:" + Fold(firstName) + "|" + Fold(lastName)
}

// IsDeletedAccount reports whether a resolved author is a deleted-account
// placeholder rather than a participant. The phrase set is fixed: "deleted"
// exact, the "deleted account" phrase, or the Russian wording (both of
// "удал" and "аккаунт" present, either order). All checks are case-folded.
func IsDeletedAccount(name, id string) bool {
	n := Fold(strings.TrimSpace(name))
	if n == "deleted" || strings.Contains(n, "deleted account") {
		return true
	}
	if strings.Contains(n, "удал") && strings.Contains(n, "аккаунт") {
		return true
	}
	return Fold(strings.TrimSpace(id)) == "deleted"
}
