package comm

import (
	"encoding/json"

	"github.com/avvvet/match-services/internal/matchsvc/models"
	"github.com/avvvet/match-services/internal/matchsvc/session"
)

// WSMessage is the envelope relayed between socketsvc and matchsvc over
// NATS. GameId carries the room a broadcast fans out to; SocketId addresses
// a single client.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "get-clock", "confirm-sub"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid"`
	GameId   int64           `json:"game_id"`
}

// ClockData is the scoreboard read: both clocks plus the stage, recomputed
// from the ledgers on every request. Clients redraw from these absolute
// values; no tick stream exists.
type ClockData struct {
	GameId      int64  `json:"game_id"`
	GameTime    int64  `json:"game_time"`   // seconds since kickoff
	PeriodTime  int64  `json:"period_time"` // current period, net of stoppages
	Period      int    `json:"period"`
	Stage       string `json:"stage"`
	GameClock   string `json:"game_clock"`   // MM:SS
	PeriodClock string `json:"period_clock"` // MM:SS
	HomeScore   int    `json:"home_score"`
	AwayScore   int    `json:"away_score"`
}

// StageData announces a stage change to a game room.
type StageData struct {
	GameId int64  `json:"game_id"`
	Stage  string `json:"stage"`
	Status string `json:"status"`
}

// LineupEntry is one player with derived field status and playing times.
type LineupEntry struct {
	PlayerGameID int64  `json:"player_game_id"`
	Name         string `json:"name"`
	TeamSeasonID int64  `json:"team_season_id"`
	GameStatus   string `json:"game_status"`
	FieldStatus  string `json:"field_status"`
	TotalOn      int64  `json:"total_on"`
	CurrentOn    int64  `json:"current_on"`
	CurrentOff   int64  `json:"current_off"`
}

type LineupData struct {
	GameId  int64         `json:"game_id"`
	Players []LineupEntry `json:"players"`
}

// SubData carries a substitution record plus its lifecycle state and any
// advisory warning from confirmation.
type SubData struct {
	Sub     *models.Substitution `json:"sub"`
	State   session.SubState     `json:"state"`
	Warning string               `json:"warning,omitempty"`
}

type StoppageData struct {
	Stoppage *models.Stoppage `json:"stoppage"`
}

type GoalData struct {
	Goal      *models.GoalEvent `json:"goal"`
	HomeScore int               `json:"home_score"`
	AwayScore int               `json:"away_score"`
}

type Res struct {
	Status bool   `json:"status"`
	Error  string `json:"error,omitempty"`
}
