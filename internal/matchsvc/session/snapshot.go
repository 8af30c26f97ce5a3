package session

import (
	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// PlayerSummary is one roster line in a match snapshot.
type PlayerSummary struct {
	PlayerGameID int64       `json:"player_game_id" bson:"player_game_id"`
	Name         string      `json:"name" bson:"name"`
	TeamSeasonID int64       `json:"team_season_id" bson:"team_season_id"`
	GameStatus   string      `json:"game_status" bson:"game_status"`
	FieldStatus  FieldStatus `json:"field_status" bson:"field_status"`
	SecondsOn    int64       `json:"seconds_on" bson:"seconds_on"`
	PlusMinus    int         `json:"plus_minus" bson:"plus_minus"`
}

// Snapshot is the full timeline of a game, built for archival once the final
// whistle goes.
type Snapshot struct {
	Game      models.Game               `json:"game" bson:"game"`
	HomeScore int                       `json:"home_score" bson:"home_score"`
	AwayScore int                       `json:"away_score" bson:"away_score"`
	Periods   []*models.Period          `json:"periods" bson:"periods"`
	Stoppages []*models.Stoppage        `json:"stoppages" bson:"stoppages"`
	Subs      []*models.Substitution    `json:"substitutions" bson:"substitutions"`
	Goals     []*models.GoalEvent       `json:"goals" bson:"goals"`
	Cards     []*models.DisciplineEvent `json:"cards" bson:"cards"`
	Players   []PlayerSummary           `json:"players" bson:"players"`
}

// Snapshot assembles the archival view of the whole game.
func (m *MatchSession) Snapshot() Snapshot {
	now := m.GameTime()
	statuses := m.FieldStatuses()

	snap := Snapshot{
		Game:      m.Game(),
		Periods:   m.Periods(),
		Stoppages: m.Stoppages(),
		Subs:      m.Substitutions(),
		Goals:     m.Goals(),
		Cards:     m.cardsCopy(),
	}
	snap.HomeScore, snap.AwayScore = m.Score()

	for _, p := range m.Players() {
		snap.Players = append(snap.Players, PlayerSummary{
			PlayerGameID: p.ID,
			Name:         p.Name,
			TeamSeasonID: p.TeamSeasonID,
			GameStatus:   p.GameStatus,
			FieldStatus:  statuses[p.ID],
			SecondsOn:    int64(m.TotalTimeOnFieldAt(p.ID, now)),
			PlusMinus:    m.PlusMinus(p.ID),
		})
	}
	return snap
}

func (m *MatchSession) cardsCopy() []*models.DisciplineEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.DisciplineEvent, len(m.cards))
	copy(out, m.cards)
	return out
}
