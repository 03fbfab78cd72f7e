package roster

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/okian/pitchside/internal/domain/model"
)

// SortState is the rating column's tri-state toggle.
type SortState int

// Sort states, in toggle order.
const (
	SortNone SortState = iota
	SortDesc
	SortAsc
)

// Next returns the state after one toggle: none → desc → asc → none.
func (s SortState) Next() SortState {
	switch s {
	case SortNone:
		return SortDesc
	case SortDesc:
		return SortAsc
	default:
		return SortNone
	}
}

func (s SortState) String() string {
	switch s {
	case SortDesc:
		return "desc"
	case SortAsc:
		return "asc"
	default:
		return "none"
	}
}

// MarshalText renders the state as "none", "desc" or "asc".
func (s SortState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSortState accepts "none", "desc", "asc" (case-insensitive) and "".
func ParseSortState(v string) (SortState, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "none":
		return SortNone, nil
	case "desc":
		return SortDesc, nil
	case "asc":
		return SortAsc, nil
	default:
		return SortNone, errors.Wrapf(ErrInvalidSort, "%q", v)
	}
}

// Sort returns a copy of players ordered by average rating. SortNone keeps
// the input order; ties always keep their input relative order.
func Sort(players []model.PlayerView, s SortState) []model.PlayerView {
	out := slices.Clone(players)
	if out == nil {
		out = []model.PlayerView{}
	}
	switch s {
	case SortDesc:
		slices.SortStableFunc(out, func(a, b model.PlayerView) int {
			return cmp.Compare(b.AvgRating, a.AvgRating)
		})
	case SortAsc:
		slices.SortStableFunc(out, func(a, b model.PlayerView) int {
			return cmp.Compare(a.AvgRating, b.AvgRating)
		})
	}
	return out
}
