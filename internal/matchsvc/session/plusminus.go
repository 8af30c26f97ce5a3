package session

import (
	"context"

	"github.com/avvvet/match-services/internal/matchsvc/clock"
	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// IsOnFieldAt replays the player's confirmed ins/outs up to t, with the
// starter's implicit leading in. Correct for any past t, not just now.
func (m *MatchSession) IsOnFieldAt(playerGameID int64, t clock.GameSeconds) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isOnFieldAtLocked(playerGameID, t)
}

func (m *MatchSession) isOnFieldAtLocked(playerGameID int64, t clock.GameSeconds) bool {
	p := m.playerLocked(playerGameID)
	if p == nil {
		return false
	}
	ins, outs := m.confirmedEntriesLocked(p)
	n := 0
	for _, in := range ins {
		if clock.GameSeconds(in) <= t {
			n++
		}
	}
	for _, out := range outs {
		if clock.GameSeconds(out) <= t {
			n--
		}
	}
	return n > 0
}

// PlusMinus is the net goal differential while the player was on field: +1
// for each goal their team scored, -1 for each opponent goal, own goals
// flipped to the benefiting side.
func (m *MatchSession) PlusMinus(playerGameID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.playerLocked(playerGameID)
	if p == nil {
		return 0
	}
	pm := 0
	for _, g := range m.goals {
		if !m.isOnFieldAtLocked(playerGameID, clock.GameSeconds(g.GameTime)) {
			continue
		}
		if g.ScoredFor(m.game.HomeTeamSeasonID, m.game.AwayTeamSeasonID) == p.TeamSeasonID {
			pm++
		} else {
			pm--
		}
	}
	return pm
}

// RecordGoal appends a goal event at the current game time.
func (m *MatchSession) RecordGoal(ctx context.Context, teamSeasonID, scorerID, assistID int64, ownGoal bool, goalTypes []string) (*models.GoalEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g := &models.GoalEvent{
		GameID:       m.game.ID,
		TeamSeasonID: teamSeasonID,
		ScorerID:     nullID(scorerID),
		AssistID:     nullID(assistID),
		IsOwnGoal:    ownGoal,
		GoalTypes:    goalTypes,
		GameTime:     int64(m.gameTimeLocked()),
		Period:       m.currentPeriodNumberLocked(),
	}
	created, err := m.store.CreateGoal(ctx, g)
	if err != nil {
		return nil, persistErr("goal", err)
	}
	m.goals = append(m.goals, created)
	m.bump()
	return created, nil
}

// RecordCard appends a discipline event at the current game time.
func (m *MatchSession) RecordCard(ctx context.Context, teamSeasonID, playerGameID int64, cardType, reason string) (*models.DisciplineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := &models.DisciplineEvent{
		GameID:       m.game.ID,
		TeamSeasonID: teamSeasonID,
		PlayerGameID: playerGameID,
		CardType:     cardType,
		CardReason:   reason,
		GameTime:     int64(m.gameTimeLocked()),
		Period:       m.currentPeriodNumberLocked(),
	}
	created, err := m.store.CreateCard(ctx, c)
	if err != nil {
		return nil, persistErr("card", err)
	}
	m.cards = append(m.cards, created)
	m.bump()
	return created, nil
}

// Goals returns a copy of the goal timeline.
func (m *MatchSession) Goals() []*models.GoalEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.GoalEvent, len(m.goals))
	copy(out, m.goals)
	return out
}

// Players returns a copy of the roster.
func (m *MatchSession) Players() []*models.PlayerGame {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.PlayerGame, len(m.players))
	copy(out, m.players)
	return out
}
