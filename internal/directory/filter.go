package directory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/spec-kit/user-directory/internal/domain"
)

// PageSize is the number of cards shown per page.
const PageSize = 16

// Availability is the tri-state availability filter.
type Availability int

const (
	AnyAvailability Availability = iota
	OnlyAvailable
	OnlyUnavailable
)

// ParseAvailability accepts yes/no/true/false/all and the empty string.
func ParseAvailability(s string) (Availability, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "any":
		return AnyAvailability, true
	case "yes", "true", "available":
		return OnlyAvailable, true
	case "no", "false", "unavailable":
		return OnlyUnavailable, true
	}
	return AnyAvailability, false
}

func (a Availability) matches(available bool) bool {
	switch a {
	case OnlyAvailable:
		return available
	case OnlyUnavailable:
		return !available
	}
	return true
}

// Filters is the search state. Zero values are pass-through.
type Filters struct {
	Query        string
	Domain       domain.Domain
	Gender       domain.Gender
	Availability Availability
}

// Filter returns the users matching every active filter, in input order.
// The query matches a case-folded substring of first or last name.
func Filter(users []domain.User, f Filters) []domain.User {
	fold := cases.Fold()
	query := fold.String(f.Query)

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if query != "" &&
			!strings.Contains(fold.String(u.FirstName), query) &&
			!strings.Contains(fold.String(u.LastName), query) {
			continue
		}
		if f.Domain != "" && u.Domain != f.Domain {
			continue
		}
		if f.Gender != "" && u.Gender != f.Gender {
			continue
		}
		if !f.Availability.matches(u.Available) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// PageCount is ceil(n/size).
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Page returns the 1-based page of users. Out of range pages are empty.
func Page(users []domain.User, page, size int) []domain.User {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(users) {
		return nil
	}
	end := start + size
	if end > len(users) {
		end = len(users)
	}
	return users[start:end]
}
