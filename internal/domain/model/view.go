package model

// PlayerView is a player denormalized with its team context and average rating.
type PlayerView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Ratings    []float64 `json:"ratings"`
	TeamID     string    `json:"teamId"`
	TeamName   string    `json:"teamName"`
	TeamAbbrev string    `json:"teamAbbrev"`
	TeamLogo   string    `json:"teamLogo"`
	AvgRating  float64   `json:"avgRating"`
}

// MatchGroup holds the matches played on one calendar day.
type MatchGroup struct {
	DateKey string  `json:"dateKey"` // YYYY-MM-DD
	Matches []Match `json:"matches"`
}
