// Package fixtures builds datasets for tests, benchmarks and the
// dataset-gen tool.
package fixtures

import "github.com/okian/pitchside/internal/domain/model"

// Sample returns a small hand-written dataset:
//
//	event 1: LIO (p1 8.0, p2 none) and HAW (p3 6.5, p4 9.0), matches m1..m3
//	event 2: WOL (p5 7.5, p6 8.0) and BEA (p7 6.0), matches m4, m5
//
// m5 references a team id ("ghost") that does not exist, and m4 carries a
// +02:00 offset. Every call returns a fresh copy.
func Sample() *model.Dataset {
	return &model.Dataset{
		Competitions: []model.Competition{{
			ID:   "c1",
			Name: "Spring League",
			Events: []model.Event{
				{
					ID:   "e1",
					Name: "Matchday 1",
					Teams: []model.Team{
						{
							ID: "t1", Name: "Lions", Abbrev: "LIO", Logo: "/logos/lio.png",
							Players: []model.Player{
								{ID: "p1", Name: "Ada Stone", Role: "Forward", Ratings: []float64{8, 9, 7}},
								{ID: "p2", Name: "Ben Crow", Role: "Goalkeeper", Ratings: []float64{}},
							},
						},
						{
							ID: "t2", Name: "Hawks", Abbrev: "HAW", Logo: "/logos/haw.png",
							Players: []model.Player{
								{ID: "p3", Name: "Cal Reed", Role: "Defender", Ratings: []float64{6, 7}},
								{ID: "p4", Name: "Dee Vance", Role: "Forward", Ratings: []float64{9}},
							},
						},
					},
					Matches: []model.Match{
						{ID: "m1", Date: "2024-05-01T10:00:00Z", TeamA: "t1", TeamB: "t2"},
						{ID: "m2", Date: "2024-05-02T00:30:00Z", TeamA: "t2", TeamB: "t1"},
						{ID: "m3", Date: "2024-05-01T22:00:00Z", TeamA: "t1", TeamB: "t2"},
					},
				},
				{
					ID:   "e2",
					Name: "Matchday 2",
					Teams: []model.Team{
						{
							ID: "t3", Name: "Wolves", Abbrev: "WOL", Logo: "/logos/wol.png",
							Players: []model.Player{
								{ID: "p5", Name: "Eli Moss", Role: "Midfielder", Ratings: []float64{7, 8}},
								{ID: "p6", Name: "Fay Lund", Role: "Forward", Ratings: []float64{8}},
							},
						},
						{
							ID: "t4", Name: "Bears", Abbrev: "BEA", Logo: "/logos/bea.png",
							Players: []model.Player{
								{ID: "p7", Name: "Gus Hale", Role: "Defender", Ratings: []float64{5.5, 6.5}},
							},
						},
					},
					Matches: []model.Match{
						{ID: "m4", Date: "2024-04-30T18:00:00+02:00", TeamA: "t3", TeamB: "t4"},
						{ID: "m5", Date: "2024-05-01T12:00:00Z", TeamA: "t3", TeamB: "ghost"},
					},
				},
			},
		}},
	}
}
