package models

import "time"

// PlayerScorer is a single goal event. It is never mutated after creation;
// scores are always recomputed from the full event log.
type PlayerScorer struct {
	Player    Player `json:"player"`
	ScoreTime int    `json:"scoreTime"`
	IsOG      bool   `json:"isOG"`
}

// TeamMatch is one team's side of a match scoreboard. Scorers holds the goal
// events attributed to this side (the scoring player's own team), in the
// order they were submitted. Score counts the events whose scoring side is
// this team, which for an own goal is the opposing side's event.
type TeamMatch struct {
	Team    Team           `json:"team"`
	Score   int            `json:"score"`
	Scorers []PlayerScorer `json:"scorers"`
}

type Match struct {
	ID       int       `json:"id"`
	TeamA    TeamMatch `json:"teamA"`
	TeamB    TeamMatch `json:"teamB"`
	Stadium  string    `json:"stadium"`
	Datetime time.Time `json:"datetime"`
}
