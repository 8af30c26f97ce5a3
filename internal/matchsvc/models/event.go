package models

import "database/sql"

type GoalEvent struct {
	ID           int64         `json:"id"`
	GameID       int64         `json:"game_id"`
	TeamSeasonID int64         `json:"team_season_id"` // team of the player who scored
	ScorerID     sql.NullInt64 `json:"scorer_player_game_id"`
	AssistID     sql.NullInt64 `json:"assist_player_game_id"`
	IsOwnGoal    bool          `json:"is_own_goal"`
	GoalTypes    []string      `json:"goal_types"`
	GameTime     int64         `json:"game_time"` // game-seconds
	Period       int           `json:"period"`
}

// ScoredFor returns the team the goal counts for, flipping own goals to the
// opposing side.
func (g *GoalEvent) ScoredFor(home, away int64) int64 {
	if !g.IsOwnGoal {
		return g.TeamSeasonID
	}
	if g.TeamSeasonID == home {
		return away
	}
	return home
}

type DisciplineEvent struct {
	ID           int64  `json:"id"`
	GameID       int64  `json:"game_id"`
	TeamSeasonID int64  `json:"team_season_id"`
	PlayerGameID int64  `json:"player_game_id"`
	CardType     string `json:"card_type"` // yellow | red
	CardReason   string `json:"card_reason"`
	GameTime     int64  `json:"game_time"` // game-seconds
	Period       int    `json:"period"`
}
