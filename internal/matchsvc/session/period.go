package session

import (
	"context"
	"database/sql"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/avvvet/match-services/internal/matchsvc/clock"
	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// StartNextPeriod opens the next sequential period at the current wall
// clock. Any substitutions confirmed during the break are stamped at the new
// period's first game-second.
func (m *MatchSession) StartNextPeriod(ctx context.Context) (*models.Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.stageLocked() {
	case BeforeStart, BetweenPeriods:
	case EndGame:
		return nil, ErrGameOver
	default:
		return nil, ErrPeriodOpen
	}

	num := 1
	if last := clock.LastPeriod(m.periods); last != nil {
		num = last.PeriodNumber + 1
	}

	p := &models.Period{
		GameID:       m.game.ID,
		PeriodNumber: num,
		StartTime:    m.now().UnixMilli(),
	}
	created, err := m.store.CreatePeriod(ctx, p)
	if err != nil {
		return nil, persistErr("period", err)
	}
	m.periods = append(m.periods, created)
	m.bump()

	m.releaseQueuedSubsLocked(ctx, created)
	return created, nil
}

// releaseQueuedSubsLocked confirms break-queued substitutions at game-time
// zero of the period that just opened. A failed write leaves the sub queued
// for the next attempt.
func (m *MatchSession) releaseQueuedSubsLocked(ctx context.Context, opened *models.Period) {
	if len(m.queued) == 0 {
		return
	}
	startGS := clock.GameTimeAt(m.periods, time.UnixMilli(opened.StartTime))
	for id := range m.queued {
		sub := m.subLocked(id)
		if sub == nil || !sub.Pending() {
			delete(m.queued, id)
			continue
		}
		prevTime, prevPeriod := sub.SubTime, sub.Period
		sub.SubTime = sql.NullInt64{Int64: int64(startGS), Valid: true}
		sub.Period = opened.PeriodNumber
		if _, err := m.store.UpdateSubstitution(ctx, sub); err != nil {
			sub.SubTime, sub.Period = prevTime, prevPeriod
			log.Errorf("game %d: confirming queued sub %d at period %d start failed: %v",
				m.game.ID, id, opened.PeriodNumber, err)
			continue
		}
		delete(m.queued, id)
	}
	m.bump()
}

// EndCurrentPeriod closes the open period at the current wall clock. A
// stoppage still open is closed at the same game-second, so the break never
// bleeds into the stoppage ledger.
func (m *MatchSession) EndCurrentPeriod(ctx context.Context) (*models.Period, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := clock.OpenPeriod(m.periods)
	if cur == nil {
		return nil, ErrNoOpenPeriod
	}

	endGS := clock.GameTimeAt(m.periods, m.now())
	if st := m.openStoppageLocked(cur.PeriodNumber); st != nil {
		prev := st.EndTime
		st.EndTime = sql.NullInt64{Int64: int64(endGS), Valid: true}
		if err := m.store.CloseStoppage(ctx, st.ID, int64(endGS)); err != nil {
			st.EndTime = prev
			return nil, persistErr("stoppage", err)
		}
	}

	endMS := m.now().UnixMilli()
	prev := cur.EndTime
	cur.EndTime = sql.NullInt64{Int64: endMS, Valid: true}
	if err := m.store.ClosePeriod(ctx, cur.ID, endMS); err != nil {
		cur.EndTime = prev
		return nil, persistErr("period", err)
	}
	m.bump()
	return cur, nil
}

// Periods returns a copy of the period ledger.
func (m *MatchSession) Periods() []*models.Period {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Period, len(m.periods))
	copy(out, m.periods)
	return out
}
