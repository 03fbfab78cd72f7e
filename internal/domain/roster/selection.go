// Package roster filters and orders the flattened player list.
package roster

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/okian/pitchside/internal/domain/model"
)

// All is the wire spelling of the "any value" selector.
const All = "all"

// Selector is either "any" or one exact value. The zero value is any.
type Selector struct {
	value string
	exact bool
}

// Any returns a selector that matches every value.
func Any() Selector { return Selector{} }

// Exactly returns a selector that matches v only, even when v is "all".
func Exactly(v string) Selector { return Selector{value: v, exact: true} }

// ParseSelector reads a query-string value: "" and "all" select any value,
// everything else is an exact match.
func ParseSelector(s string) Selector {
	if s == "" || s == All {
		return Any()
	}
	return Exactly(s)
}

// IsAny reports whether the selector matches every value.
func (s Selector) IsAny() bool { return !s.exact }

// Value returns the exact value, or "" for any.
func (s Selector) Value() string { return s.value }

// Matches compares case-sensitively.
func (s Selector) Matches(v string) bool {
	return !s.exact || s.value == v
}

// String renders the selector the way the API accepts it.
func (s Selector) String() string {
	if !s.exact {
		return All
	}
	return s.value
}

// Key is an unambiguous rendering for cache keys.
func (s Selector) Key() string {
	if !s.exact {
		return "*"
	}
	return "=" + s.value
}

// Selection is the user's current roster filter. It is a value; the With
// methods return modified copies.
type Selection struct {
	Team  Selector
	Role  Selector
	Query string
}

// WithTeam returns a copy of s filtering on team.
func (s Selection) WithTeam(team Selector) Selection {
	s.Team = team
	return s
}

// WithRole returns a copy of s filtering on role.
func (s Selection) WithRole(role Selector) Selection {
	s.Role = role
	return s
}

// WithQuery returns a copy of s with a name query.
func (s Selection) WithQuery(q string) Selection {
	s.Query = strings.TrimSpace(q)
	return s
}

// Matches reports whether p satisfies every predicate of s.
func (s Selection) Matches(p model.PlayerView) bool {
	if !s.Team.Matches(p.TeamID) || !s.Role.Matches(p.Role) {
		return false
	}
	q := strings.TrimSpace(s.Query)
	return q == "" || fuzzy.MatchFold(q, p.Name)
}

// Filter returns the players matching s, in their original relative order.
func Filter(players []model.PlayerView, s Selection) []model.PlayerView {
	out := make([]model.PlayerView, 0, len(players))
	for _, p := range players {
		if s.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Roles returns the distinct roles of players, sorted lexicographically.
func Roles(players []model.PlayerView) []string {
	seen := make(map[string]struct{}, len(players))
	out := make([]string, 0)
	for _, p := range players {
		if _, ok := seen[p.Role]; ok {
			continue
		}
		seen[p.Role] = struct{}{}
		out = append(out, p.Role)
	}
	slices.Sort(out)
	return out
}
