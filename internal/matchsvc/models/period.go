package models

import "database/sql"

// Period start and end are wall-clock unix milliseconds. Stoppage and
// Substitution times are game-seconds since the first period's start; the
// clock package owns the conversion between the two.
type Period struct {
	ID           int64         `json:"id"`
	GameID       int64         `json:"game_id"`
	PeriodNumber int           `json:"period_number"` // 1-based, sequential
	StartTime    int64         `json:"start_time"`    // wall-clock ms
	EndTime      sql.NullInt64 `json:"end_time"`      // wall-clock ms, null while open
}

func (p *Period) Open() bool {
	return !p.EndTime.Valid
}
