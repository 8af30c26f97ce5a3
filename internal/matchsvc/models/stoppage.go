package models

import "database/sql"

type Stoppage struct {
	ID             int64         `json:"id"`
	GameID         int64         `json:"game_id"`
	EventType      string        `json:"event_type"` // injury | weather | other
	GameTime       int64         `json:"game_time"`  // game-seconds
	EndTime        sql.NullInt64 `json:"end_time"`   // game-seconds, null while open
	Period         int           `json:"period"`
	ClockShouldRun bool          `json:"clock_should_run"`
	Details        string        `json:"details"`
}

func (s *Stoppage) Open() bool {
	return !s.EndTime.Valid
}
