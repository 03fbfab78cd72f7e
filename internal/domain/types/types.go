// Package types contains the response shapes the API serves.
package types

import (
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/roster"
)

// RankedPlayer is one row of the top-N ranking. Rank is 1-based.
type RankedPlayer struct {
	Rank   int              `json:"rank"`
	Player model.PlayerView `json:"player"`
	Rating string           `json:"rating"` // avgRating with one decimal
}

// TeamOption is one entry of the roster's team selector.
type TeamOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RosterPage is the filterable roster together with its selector choices.
type RosterPage struct {
	Version  uint64             `json:"version"`
	Team     string             `json:"team"`
	Role     string             `json:"role"`
	Query    string             `json:"query,omitempty"`
	Sort     roster.SortState   `json:"sort"`
	NextSort roster.SortState   `json:"nextSort"`
	Count    int                `json:"count"`
	Players  []model.PlayerView `json:"players"`
	Roles    []string           `json:"roles"`
	Teams    []TeamOption       `json:"teams"`
}

// TeamRef is a match side resolved against the team list. Found is false
// when the id is not listed; only ID is set then.
type TeamRef struct {
	ID     string `json:"id"`
	Found  bool   `json:"found"`
	Name   string `json:"name,omitempty"`
	Abbrev string `json:"abbrev,omitempty"`
	Logo   string `json:"logo,omitempty"`
}

// MatchView is a match with both teams resolved.
type MatchView struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Kickoff string  `json:"kickoff"`
	TeamA   TeamRef `json:"teamA"`
	TeamB   TeamRef `json:"teamB"`
}

// CalendarDay is one day of the match calendar.
type CalendarDay struct {
	DateKey string      `json:"dateKey"`
	Label   string      `json:"label"`
	Matches []MatchView `json:"matches"`
}

// TeamSummary is one row of the team list.
type TeamSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Abbrev      string `json:"abbrev"`
	Logo        string `json:"logo"`
	PlayerCount int    `json:"playerCount"`
}

// NewTeamRef builds a TeamRef from a lookup result.
func NewTeamRef(id string, team model.Team, found bool) TeamRef {
	if !found {
		return TeamRef{ID: id}
	}
	return TeamRef{ID: id, Found: true, Name: team.Name, Abbrev: team.Abbrev, Logo: team.Logo}
}

// NewTeamSummary summarises team.
func NewTeamSummary(team model.Team) TeamSummary {
	return TeamSummary{
		ID:          team.ID,
		Name:        team.Name,
		Abbrev:      team.Abbrev,
		Logo:        team.Logo,
		PlayerCount: len(team.Players),
	}
}
