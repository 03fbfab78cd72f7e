// Package flatten turns the nested competition → event → team/match
// document into flat, document-ordered lists.
package flatten

import (
	"github.com/okian/pitchside/internal/domain/model"
)

// PlayerEntry is a player together with the team that lists it.
type PlayerEntry struct {
	Player     model.Player
	TeamID     string
	TeamName   string
	TeamAbbrev string
	TeamLogo   string
}

// Result holds every flat list extracted from one dataset.
type Result struct {
	Players []PlayerEntry
	Teams   []model.Team
	Matches []model.Match
}

// Flatten extracts players, teams and matches in a single pass.
// A nil dataset yields empty (non-nil) lists.
func Flatten(ds *model.Dataset) Result {
	res := Result{
		Players: make([]PlayerEntry, 0, countPlayers(ds)),
		Teams:   make([]model.Team, 0),
		Matches: make([]model.Match, 0),
	}
	if ds == nil {
		return res
	}
	for _, comp := range ds.Competitions {
		for _, ev := range comp.Events {
			for _, team := range ev.Teams {
				res.Teams = append(res.Teams, team)
				for _, p := range team.Players {
					res.Players = append(res.Players, entryFor(p, team))
				}
			}
			res.Matches = append(res.Matches, ev.Matches...)
		}
	}
	return res
}

// Players returns every player with its team context, in document order.
func Players(ds *model.Dataset) []PlayerEntry {
	return Flatten(ds).Players
}

// Teams returns every team, in document order.
func Teams(ds *model.Dataset) []model.Team {
	return Flatten(ds).Teams
}

// Matches returns every match, in document order.
func Matches(ds *model.Dataset) []model.Match {
	return Flatten(ds).Matches
}

func entryFor(p model.Player, team model.Team) PlayerEntry {
	return PlayerEntry{
		Player:     p,
		TeamID:     team.ID,
		TeamName:   team.Name,
		TeamAbbrev: team.Abbrev,
		TeamLogo:   team.Logo,
	}
}

func countPlayers(ds *model.Dataset) int {
	if ds == nil {
		return 0
	}
	n := 0
	for _, comp := range ds.Competitions {
		for _, ev := range comp.Events {
			for _, team := range ev.Teams {
				n += len(team.Players)
			}
		}
	}
	return n
}
