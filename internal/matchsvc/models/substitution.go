package models

import "database/sql"

// Substitution is the two-phase sub record: created pending (SubTime null),
// later confirmed with the game-second it took effect, or deleted. One side
// may be filled in after creation; a confirmed record is immutable.
type Substitution struct {
	ID          int64         `json:"id"`
	GameID      int64         `json:"game_id"`
	InPlayerID  sql.NullInt64 `json:"in_player_id"`
	OutPlayerID sql.NullInt64 `json:"out_player_id"`
	SubTime     sql.NullInt64 `json:"sub_time"` // game-seconds, null while pending
	Period      int           `json:"period"`
	GkSub       bool          `json:"gk_sub"`
}

func (s *Substitution) Pending() bool {
	return !s.SubTime.Valid
}

// Complete reports whether both sides of the swap are set.
func (s *Substitution) Complete() bool {
	return s.InPlayerID.Valid && s.OutPlayerID.Valid
}
