package models

// PlayerGame is one roster entry for a game. Field status is never stored;
// it is derived from the substitution ledger on every read.
type PlayerGame struct {
	ID           int64  `json:"id"` // player_game_id referenced by subs and goal events
	GameID       int64  `json:"game_id"`
	TeamSeasonID int64  `json:"team_season_id"`
	PlayerID     int64  `json:"player_id"`
	Name         string `json:"name"`
	GameStatus   string `json:"game_status"` // dressed | starter | goalkeeper
}

// Starter reports whether the player is on field at kickoff with no recorded
// "in" event.
func (p *PlayerGame) Starter() bool {
	return p.GameStatus == StatusStarter || p.GameStatus == StatusGoalkeeper
}
