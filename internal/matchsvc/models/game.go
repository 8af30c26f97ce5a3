package models

import (
	"time"
)

// Game statuses synced to the schedule record.
const (
	GameScheduled  = "scheduled"
	GameInProgress = "in_progress"
	GameCompleted  = "completed"
)

// Player game statuses set at roster time.
const (
	StatusDressed    = "dressed"
	StatusStarter    = "starter"
	StatusGoalkeeper = "goalkeeper"
)

type GameSettings struct {
	PlayersPerSide    int  `json:"players_per_side"`
	RegulationPeriods int  `json:"regulation_periods"`
	PeriodMinutes     int  `json:"period_minutes"`
	OvertimePeriods   int  `json:"overtime_periods"`
	OvertimeIfTied    bool `json:"overtime_if_tied"`
	ShootoutIfTied    bool `json:"shootout_if_tied"`
}

type Game struct {
	ID               int64        `json:"id"` // Primary key
	HomeTeamSeasonID int64        `json:"home_team_season_id"`
	AwayTeamSeasonID int64        `json:"away_team_season_id"`
	Settings         GameSettings `json:"settings"`
	Status           string       `json:"status"` // scheduled | in_progress | completed
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}
