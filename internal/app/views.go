package app

import (
	"context"
	"slices"
	"time"

	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/domain/calendar"
	"github.com/okian/pitchside/internal/domain/flatten"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/rating"
	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/internal/domain/types"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

// TopN is the length of the player ranking.
const TopN = 5

// View names, used as cache keys and metric labels.
const (
	ViewTop      = "top"
	ViewRoster   = "roster"
	ViewTeams    = "teams"
	ViewCalendar = "calendar"
)

// memo returns the value cached under key, building and storing it on a
// miss. Callers receive clone(value) so the cached value is never shared.
func memo[T any](ctx context.Context, s *Service, key repository.Key, build func() T, clone func(T) T) T {
	if v, ok := s.cache.Get(ctx, key); ok {
		if cached, ok := v.(T); ok {
			return clone(cached)
		}
	}

	start := time.Now()
	value := build()
	metrics.RecordViewBuild(key.View, float64(time.Since(start).Microseconds())/1000)

	if err := s.cache.Put(ctx, key, value); err != nil {
		s.logger.Warn(ctx, "view not cached", logger.String("view", key.View), logger.Error(err))
	} else if current := s.Version(); current != key.Version {
		// A newer dataset was published while building.
		s.cache.Purge(ctx, current)
	}
	return clone(value)
}

// TopPlayers returns the TopN players by average rating, best first.
// Players with equal averages keep document order.
func (s *Service) TopPlayers(ctx context.Context) ([]types.RankedPlayer, error) {
	ds, version, err := s.snapshot(ctx, ViewTop)
	if err != nil {
		return nil, err
	}
	key := repository.Key{Version: version, View: ViewTop}
	return memo(ctx, s, key, func() []types.RankedPlayer {
		return buildTop(ds)
	}, cloneRanked), nil
}

// Roster returns the players matching sel, ordered by sort, together with
// the role and team choices for the selectors.
func (s *Service) Roster(ctx context.Context, sel roster.Selection, sort roster.SortState) (types.RosterPage, error) {
	ds, version, err := s.snapshot(ctx, ViewRoster)
	if err != nil {
		return types.RosterPage{}, err
	}
	key := repository.Key{
		Version: version,
		View:    ViewRoster,
		Team:    sel.Team.Key(),
		Role:    sel.Role.Key(),
		Query:   sel.Query,
		Sort:    sort.String(),
	}
	page := memo(ctx, s, key, func() types.RosterPage {
		return buildRoster(ds, sel, sort)
	}, cloneRosterPage)
	page.Version = version
	return page, nil
}

// Teams returns every team with its player count, in document order.
func (s *Service) Teams(ctx context.Context) ([]types.TeamSummary, error) {
	ds, version, err := s.snapshot(ctx, ViewTeams)
	if err != nil {
		return nil, err
	}
	key := repository.Key{Version: version, View: ViewTeams}
	return memo(ctx, s, key, func() []types.TeamSummary {
		teams := flatten.Teams(ds)
		out := make([]types.TeamSummary, 0, len(teams))
		for _, t := range teams {
			out = append(out, types.NewTeamSummary(t))
		}
		return out
	}, cloneTeams), nil
}

// Calendar returns matches grouped by day with both teams resolved.
func (s *Service) Calendar(ctx context.Context) ([]types.CalendarDay, error) {
	ds, version, err := s.snapshot(ctx, ViewCalendar)
	if err != nil {
		return nil, err
	}
	key := repository.Key{Version: version, View: ViewCalendar, Sort: s.calendarOrder}
	return memo(ctx, s, key, func() []types.CalendarDay {
		return buildCalendar(ds, s.calendarOrder == CalendarChronological)
	}, cloneCalendar), nil
}

func buildTop(ds *model.Dataset) []types.RankedPlayer {
	players := roster.Sort(rating.AggregateAll(flatten.Players(ds)), roster.SortDesc)
	n := min(TopN, len(players))
	out := make([]types.RankedPlayer, 0, n)
	for i, p := range players[:n] {
		out = append(out, types.RankedPlayer{Rank: i + 1, Player: p, Rating: rating.Format(p.AvgRating)})
	}
	return out
}

func buildRoster(ds *model.Dataset, sel roster.Selection, sort roster.SortState) types.RosterPage {
	res := flatten.Flatten(ds)
	all := rating.AggregateAll(res.Players)
	players := roster.Sort(roster.Filter(all, sel), sort)

	teams := make([]types.TeamOption, 0, len(res.Teams))
	for _, t := range res.Teams {
		teams = append(teams, types.TeamOption{ID: t.ID, Name: t.Name})
	}
	return types.RosterPage{
		Team:     sel.Team.String(),
		Role:     sel.Role.String(),
		Query:    sel.Query,
		Sort:     sort,
		NextSort: sort.Next(),
		Count:    len(players),
		Players:  players,
		Roles:    roster.Roles(all),
		Teams:    teams,
	}
}

func buildCalendar(ds *model.Dataset, chronological bool) []types.CalendarDay {
	res := flatten.Flatten(ds)
	idx := flatten.NewTeamIndex(res.Teams)
	groups := calendar.Group(res.Matches)
	if chronological {
		groups = calendar.Chronological(groups)
	}

	out := make([]types.CalendarDay, 0, len(groups))
	for _, g := range groups {
		day := types.CalendarDay{
			DateKey: g.DateKey,
			Label:   calendar.Label(g.Matches[0].Date),
			Matches: make([]types.MatchView, 0, len(g.Matches)),
		}
		for _, m := range g.Matches {
			day.Matches = append(day.Matches, types.MatchView{
				ID:      m.ID,
				Date:    m.Date,
				Kickoff: calendar.Kickoff(m.Date),
				TeamA:   resolve(idx, m.TeamA),
				TeamB:   resolve(idx, m.TeamB),
			})
		}
		out = append(out, day)
	}
	return out
}

func resolve(idx flatten.TeamIndex, id string) types.TeamRef {
	team, ok := idx.Lookup(id)
	return types.NewTeamRef(id, team, ok)
}

func clonePlayers(in []model.PlayerView) []model.PlayerView {
	out := slices.Clone(in)
	for i := range out {
		out[i].Ratings = slices.Clone(out[i].Ratings)
	}
	return out
}

func cloneRanked(in []types.RankedPlayer) []types.RankedPlayer {
	out := slices.Clone(in)
	for i := range out {
		out[i].Player.Ratings = slices.Clone(out[i].Player.Ratings)
	}
	return out
}

func cloneRosterPage(in types.RosterPage) types.RosterPage {
	in.Players = clonePlayers(in.Players)
	in.Roles = slices.Clone(in.Roles)
	in.Teams = slices.Clone(in.Teams)
	return in
}

func cloneCalendar(in []types.CalendarDay) []types.CalendarDay {
	out := slices.Clone(in)
	for i := range out {
		out[i].Matches = slices.Clone(out[i].Matches)
	}
	return out
}

func cloneTeams(in []types.TeamSummary) []types.TeamSummary {
	return slices.Clone(in)
}
