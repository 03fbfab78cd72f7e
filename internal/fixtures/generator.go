package fixtures

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/pitchside/internal/domain/model"
)

// Default generator sizes.
const (
	defaultCompetitions   = 1
	defaultEvents         = 1
	defaultTeams          = 8
	defaultPlayersPerTeam = 11
	defaultMatches        = 12
	defaultRatings        = 5
	unratedEvery          = 7 // every n-th player has no ratings yet
)

// Rating tiers, as [min, min+span).
const (
	averageMin = 5.0
	averageSpn = 2.0
	highMin    = 7.0
	highSpn    = 1.5
	lowMin     = 3.0
	lowSpn     = 2.0
	eliteMin   = 8.5
	eliteSpn   = 1.5
	tierCount  = 8
)

var (
	roles     = []string{"Goalkeeper", "Defender", "Midfielder", "Forward"}
	firsts    = []string{"Ada", "Ben", "Cal", "Dee", "Eli", "Fay", "Gus", "Hal", "Ivy", "Jon", "Kit", "Lou"}
	lasts     = []string{"Stone", "Crow", "Reed", "Vance", "Moss", "Lund", "Hale", "Park", "Shaw", "Wren"}
	nicknames = []string{"Lions", "Hawks", "Wolves", "Bears", "Foxes", "Owls", "Sharks", "Bulls"}

	// idSpace namespaces every generated id so datasets are reproducible.
	idSpace = uuid.MustParse("0b6f3c2e-4f4c-5d7e-9a51-7f5d2c1a8e90")
)

// GenConfig sizes a generated dataset. Zero fields take defaults.
type GenConfig struct {
	Seed                 int64
	Competitions         int
	EventsPerCompetition int
	Teams                int // per event
	PlayersPerTeam       int
	Matches              int // per event
	RatingsPerPlayer     int
	Start                time.Time // first match day, UTC midnight by default
	DanglingRefs         bool      // let the last match of each event name an unknown team
}

func (c GenConfig) withDefaults() GenConfig {
	c.Competitions = orDefault(c.Competitions, defaultCompetitions)
	c.EventsPerCompetition = orDefault(c.EventsPerCompetition, defaultEvents)
	c.Teams = orDefault(c.Teams, defaultTeams)
	c.PlayersPerTeam = orDefault(c.PlayersPerTeam, defaultPlayersPerTeam)
	c.Matches = orDefault(c.Matches, defaultMatches)
	c.RatingsPerPlayer = orDefault(c.RatingsPerPlayer, defaultRatings)
	if c.Start.IsZero() {
		c.Start = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	}
	return c
}

// Generate builds a synthetic dataset. The same config always yields the
// same dataset.
func Generate(cfg GenConfig) *model.Dataset {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)^0x9e3779b97f4a7c15)) //nolint:gosec // reproducible fixtures

	ds := &model.Dataset{Competitions: make([]model.Competition, 0, cfg.Competitions)}
	playerSeq := 0
	for c := 0; c < cfg.Competitions; c++ {
		comp := model.Competition{
			ID:     id("competition", cfg.Seed, c),
			Name:   fmt.Sprintf("League %d", c+1),
			Events: make([]model.Event, 0, cfg.EventsPerCompetition),
		}
		for e := 0; e < cfg.EventsPerCompetition; e++ {
			ev := model.Event{
				ID:   id("event", cfg.Seed, c, e),
				Name: fmt.Sprintf("Matchday %d", e+1),
			}
			ev.Teams = make([]model.Team, 0, cfg.Teams)
			for t := 0; t < cfg.Teams; t++ {
				team := generateTeam(cfg, c, e, t)
				for p := 0; p < cfg.PlayersPerTeam; p++ {
					team.Players = append(team.Players, generatePlayer(rng, cfg, playerSeq))
					playerSeq++
				}
				ev.Teams = append(ev.Teams, team)
			}
			ev.Matches = generateMatches(rng, cfg, ev.Teams, c, e)
			comp.Events = append(comp.Events, ev)
		}
		ds.Competitions = append(ds.Competitions, comp)
	}
	return ds
}

func generateTeam(cfg GenConfig, c, e, t int) model.Team {
	name := nicknames[t%len(nicknames)]
	if t >= len(nicknames) {
		name = fmt.Sprintf("%s %d", name, t/len(nicknames)+1)
	}
	abbrev := strings.ToUpper(fmt.Sprintf("%.3s", name))
	if t >= len(nicknames) {
		abbrev = strings.ToUpper(fmt.Sprintf("%.2s%d", name, t/len(nicknames)+1))
	}
	return model.Team{
		ID:      id("team", cfg.Seed, c, e, t),
		Name:    name,
		Abbrev:  abbrev,
		Logo:    fmt.Sprintf("/logos/%s.png", id("logo", cfg.Seed, c, e, t)),
		Players: make([]model.Player, 0, cfg.PlayersPerTeam),
	}
}

func generatePlayer(rng *rand.Rand, cfg GenConfig, seq int) model.Player {
	p := model.Player{
		ID:      id("player", cfg.Seed, seq),
		Name:    firsts[rng.IntN(len(firsts))] + " " + lasts[rng.IntN(len(lasts))],
		Role:    roles[seq%len(roles)],
		Ratings: []float64{},
	}
	if seq%unratedEvery == unratedEvery-1 {
		return p
	}
	n := 1 + rng.IntN(cfg.RatingsPerPlayer)
	for i := 0; i < n; i++ {
		p.Ratings = append(p.Ratings, generateRating(rng))
	}
	return p
}

// generateRating draws from a tiered distribution; average players are the
// most common.
func generateRating(rng *rand.Rand) float64 {
	var r float64
	switch rng.IntN(tierCount) {
	case 0, 1, 2, 3:
		r = averageMin + rng.Float64()*averageSpn
	case 4, 5:
		r = highMin + rng.Float64()*highSpn
	case 6:
		r = lowMin + rng.Float64()*lowSpn
	default:
		r = eliteMin + rng.Float64()*eliteSpn
	}
	// one decimal, like match reports
	return float64(int(r*10+0.5)) / 10
}

func generateMatches(rng *rand.Rand, cfg GenConfig, teams []model.Team, c, e int) []model.Match {
	out := make([]model.Match, 0, cfg.Matches)
	if len(teams) < 2 {
		return out
	}
	for m := 0; m < cfg.Matches; m++ {
		a := rng.IntN(len(teams))
		b := (a + 1 + rng.IntN(len(teams)-1)) % len(teams)
		day := cfg.Start.AddDate(0, 0, e*7+rng.IntN(7))
		kickoff := day.Add(time.Duration(12+rng.IntN(10))*time.Hour + time.Duration(rng.IntN(4)*15)*time.Minute)

		match := model.Match{
			ID:    id("match", cfg.Seed, c, e, m),
			Date:  kickoff.Format(time.RFC3339),
			TeamA: teams[a].ID,
			TeamB: teams[b].ID,
		}
		if cfg.DanglingRefs && m == cfg.Matches-1 {
			match.TeamB = id("unknown-team", cfg.Seed, c, e)
		}
		out = append(out, match)
	}
	return out
}

func id(kind string, seed int64, parts ...int) string {
	return uuid.NewSHA1(idSpace, []byte(fmt.Sprintf("%s/%d/%v", kind, seed, parts))).String()
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}
