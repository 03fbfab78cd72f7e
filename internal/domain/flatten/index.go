package flatten

import "github.com/okian/pitchside/internal/domain/model"

// TeamIndex resolves team ids against a flattened team list.
// When an id is listed twice the first occurrence wins.
type TeamIndex struct {
	teams []model.Team
	byID  map[string]int
}

// NewTeamIndex indexes teams without copying them.
func NewTeamIndex(teams []model.Team) TeamIndex {
	byID := make(map[string]int, len(teams))
	for i, t := range teams {
		if _, ok := byID[t.ID]; !ok {
			byID[t.ID] = i
		}
	}
	return TeamIndex{teams: teams, byID: byID}
}

// Lookup returns the team with id. ok is false when no such team exists,
// which callers must treat as a normal outcome.
func (x TeamIndex) Lookup(id string) (model.Team, bool) {
	i, ok := x.byID[id]
	if !ok {
		return model.Team{}, false
	}
	return x.teams[i], true
}

// Len returns the number of distinct team ids.
func (x TeamIndex) Len() int { return len(x.byID) }
