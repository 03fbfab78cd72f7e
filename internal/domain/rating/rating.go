// Package rating derives per-player rating aggregates.
package rating

import (
	"slices"
	"strconv"

	"github.com/okian/pitchside/internal/domain/flatten"
	"github.com/okian/pitchside/internal/domain/model"
)

// Average returns the arithmetic mean of ratings. An empty sequence is
// treated as a single zero rating, so the result is always defined.
func Average(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	// Running mean; a plain sum overflows for large finite ratings.
	var avg float64
	for i, r := range ratings {
		avg += (r - avg) / float64(i+1)
	}
	return avg
}

// Aggregate builds the denormalized view of one flattened player.
// The entry is not modified; the ratings slice is cloned.
func Aggregate(e flatten.PlayerEntry) model.PlayerView {
	ratings := slices.Clone(e.Player.Ratings)
	if ratings == nil {
		ratings = []float64{}
	}
	return model.PlayerView{
		ID:         e.Player.ID,
		Name:       e.Player.Name,
		Role:       e.Player.Role,
		Ratings:    ratings,
		TeamID:     e.TeamID,
		TeamName:   e.TeamName,
		TeamAbbrev: e.TeamAbbrev,
		TeamLogo:   e.TeamLogo,
		AvgRating:  Average(e.Player.Ratings),
	}
}

// AggregateAll maps Aggregate over entries, keeping their order.
func AggregateAll(entries []flatten.PlayerEntry) []model.PlayerView {
	out := make([]model.PlayerView, len(entries))
	for i, e := range entries {
		out[i] = Aggregate(e)
	}
	return out
}

// Format renders avg with one decimal place, the way rating cards show it.
func Format(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 1, 64)
}
