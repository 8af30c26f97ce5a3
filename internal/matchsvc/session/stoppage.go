package session

import (
	"context"
	"database/sql"

	"github.com/avvvet/match-services/internal/matchsvc/clock"
	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// StartStoppage pauses play at the current game-second. Requires play to be
// in progress; a second open stoppage in the same period is a hard error.
// With clockShouldRun the interruption is logged but the period clock keeps
// counting.
func (m *MatchSession) StartStoppage(ctx context.Context, eventType, details string, clockShouldRun bool) (*models.Stoppage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stageLocked() != DuringPeriod {
		return nil, ErrNotInPlay
	}
	cur := clock.OpenPeriod(m.periods)
	if m.openStoppageLocked(cur.PeriodNumber) != nil {
		return nil, ErrStoppageOpen
	}

	st := &models.Stoppage{
		GameID:         m.game.ID,
		EventType:      eventType,
		GameTime:       int64(m.gameTimeLocked()),
		Period:         cur.PeriodNumber,
		ClockShouldRun: clockShouldRun,
		Details:        details,
	}
	created, err := m.store.CreateStoppage(ctx, st)
	if err != nil {
		return nil, persistErr("stoppage", err)
	}
	m.stoppages = append(m.stoppages, created)
	m.bump()
	return created, nil
}

// EndStoppage resumes play, stamping the stoppage's end at the current
// game-second.
func (m *MatchSession) EndStoppage(ctx context.Context, stoppageID int64) (*models.Stoppage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var st *models.Stoppage
	for _, s := range m.stoppages {
		if s.ID == stoppageID {
			st = s
			break
		}
	}
	if st == nil || !st.Open() {
		return nil, ErrStoppageNotFound
	}

	endGS := int64(m.gameTimeLocked())
	prev := st.EndTime
	st.EndTime = sql.NullInt64{Int64: endGS, Valid: true}
	if err := m.store.CloseStoppage(ctx, st.ID, endGS); err != nil {
		st.EndTime = prev
		return nil, persistErr("stoppage", err)
	}
	m.bump()
	return st, nil
}

// OpenStoppage returns the open stoppage for the current period, or nil.
func (m *MatchSession) OpenStoppage() *models.Stoppage {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur := clock.OpenPeriod(m.periods)
	if cur == nil {
		return nil
	}
	return m.openStoppageLocked(cur.PeriodNumber)
}

// Stoppages returns a copy of the stoppage ledger.
func (m *MatchSession) Stoppages() []*models.Stoppage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Stoppage, len(m.stoppages))
	copy(out, m.stoppages)
	return out
}
