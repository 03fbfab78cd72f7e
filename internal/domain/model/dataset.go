// Package model contains domain models passed between layers.
package model

// Dataset is the nested document supplied by the DataSource.
// Field names mirror the JSON document the dashboard has always consumed.
type Dataset struct {
	Competitions []Competition `json:"competitions"`
}

// Competition groups events, e.g. a season of a league.
type Competition struct {
	ID     string  `json:"id,omitempty"`
	Name   string  `json:"name,omitempty"`
	Events []Event `json:"events"`
}

// Event holds the teams taking part and the matches played between them.
type Event struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name,omitempty"`
	Teams   []Team  `json:"teams"`
	Matches []Match `json:"matches"`
}

// Team is identified by ID, unique within a dataset.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Abbrev  string   `json:"abbrev"`
	Logo    string   `json:"logo"`
	Players []Player `json:"players"`
}

// Player carries per-match ratings; Ratings may be empty.
type Player struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Role    string    `json:"role"`
	Ratings []float64 `json:"ratings"`
}

// Match references its two teams by id. Date is an ISO-8601 timestamp.
type Match struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	TeamA string `json:"teamA"`
	TeamB string `json:"teamB"`
}
