package profile

import (
	"strings"

	"bizhub/internal/domain"
)

// Matches reports whether q is a substring of the profile's name or email
// (case-insensitive) or of its raw telephone. An empty query matches.
func Matches(p domain.Profile, q string) bool {
	if q == "" {
		return true
	}
	lower := strings.ToLower(q)
	if strings.Contains(strings.ToLower(p.Person.Name), lower) {
		return true
	}
	if p.Person.Telephone != "" && strings.Contains(p.Person.Telephone, q) {
		return true
	}
	return p.Person.Email != "" && strings.Contains(strings.ToLower(p.Person.Email), lower)
}

// Filter returns the profiles matching q, preserving order.
func Filter(profiles []domain.Profile, q string) []domain.Profile {
	if q == "" {
		return profiles
	}
	out := make([]domain.Profile, 0, len(profiles))
	for _, p := range profiles {
		if Matches(p, q) {
			out = append(out, p)
		}
	}
	return out
}
