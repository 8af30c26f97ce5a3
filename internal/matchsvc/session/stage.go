package session

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/avvvet/match-services/internal/matchsvc/clock"
	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// Stage is the discrete game state driving UI gating and status sync. It is
// recomputed from the ledgers on every read, never stored.
type Stage int

const (
	BeforeStart Stage = iota
	DuringPeriod
	InStoppage
	BetweenPeriods
	EndGame
)

func (s Stage) String() string {
	switch s {
	case BeforeStart:
		return "before_start"
	case DuringPeriod:
		return "during_period"
	case InStoppage:
		return "in_stoppage"
	case BetweenPeriods:
		return "between_periods"
	case EndGame:
		return "end_game"
	}
	return "unknown"
}

// GameStatus maps the stage onto the externally persisted schedule status.
func (s Stage) GameStatus() string {
	switch s {
	case BeforeStart:
		return models.GameScheduled
	case EndGame:
		return models.GameCompleted
	}
	return models.GameInProgress
}

// Stage computes the current stage and, when the mapped game status differs
// from the last persisted one, issues a single best-effort sync write. A
// failed write is logged and retried on the next read; the computed stage is
// authoritative either way.
func (m *MatchSession) Stage(ctx context.Context) Stage {
	m.mu.Lock()
	st := m.stageLocked()

	var notify func()
	status := st.GameStatus()
	if status != m.lastSyncedStatus {
		if err := m.store.UpdateGameStatus(ctx, m.game.ID, status); err != nil {
			log.Errorf("game %d: status sync to %s failed: %v", m.game.ID, status, err)
		} else {
			m.lastSyncedStatus = status
			m.game.Status = status
			if m.onStatusChange != nil {
				hook, gid := m.onStatusChange, m.game.ID
				notify = func() { hook(gid, status, st) }
			}
		}
	}
	m.mu.Unlock()

	if notify != nil {
		notify()
	}
	return st
}

func (m *MatchSession) stageLocked() Stage {
	if len(m.periods) == 0 {
		return BeforeStart
	}

	cur := clock.OpenPeriod(m.periods)
	if cur != nil {
		if st := m.openStoppageLocked(cur.PeriodNumber); st != nil && !st.ClockShouldRun {
			return InStoppage
		}
		return DuringPeriod
	}

	last := clock.LastPeriod(m.periods)
	set := m.game.Settings
	if last.PeriodNumber < set.RegulationPeriods {
		return BetweenPeriods
	}
	if m.overtimeOwedLocked() && last.PeriodNumber < set.RegulationPeriods+set.OvertimePeriods {
		return BetweenPeriods
	}
	return EndGame
}

// overtimeOwedLocked: scores level and overtime configured.
func (m *MatchSession) overtimeOwedLocked() bool {
	if !m.game.Settings.OvertimeIfTied || m.game.Settings.OvertimePeriods == 0 {
		return false
	}
	home, away := m.scoreLocked()
	return home == away
}

func (m *MatchSession) scoreLocked() (home, away int) {
	for _, g := range m.goals {
		if g.ScoredFor(m.game.HomeTeamSeasonID, m.game.AwayTeamSeasonID) == m.game.HomeTeamSeasonID {
			home++
		} else {
			away++
		}
	}
	return home, away
}

// Score returns goals for the home and away side, own goals already flipped.
func (m *MatchSession) Score() (home, away int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreLocked()
}

func (m *MatchSession) openStoppageLocked(periodNo int) *models.Stoppage {
	for _, st := range m.stoppages {
		if st.Period == periodNo && st.Open() {
			return st
		}
	}
	return nil
}

// GameTime is wall-clock seconds since first kickoff, frozen at the final
// whistle once the game is over. Never reduced by stoppages.
func (m *MatchSession) GameTime() clock.GameSeconds {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameTimeLocked()
}

func (m *MatchSession) gameTimeLocked() clock.GameSeconds {
	instant := m.now()
	if m.stageLocked() == EndGame {
		if last := clock.LastPeriod(m.periods); last != nil && !last.Open() {
			instant = time.UnixMilli(last.EndTime.Int64)
		}
	}
	return clock.GameTimeAt(m.periods, instant)
}

// PeriodTime is the current period's clock net of clock-stopping stoppages.
func (m *MatchSession) PeriodTime() clock.GameSeconds {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clock.PeriodTimeAt(m.periods, m.stoppages, m.now())
}

// CurrentPeriodNumber is the open period's number, or the last closed one,
// or 0 before kickoff.
func (m *MatchSession) CurrentPeriodNumber() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentPeriodNumberLocked()
}

func (m *MatchSession) currentPeriodNumberLocked() int {
	if cur := clock.OpenPeriod(m.periods); cur != nil {
		return cur.PeriodNumber
	}
	if last := clock.LastPeriod(m.periods); last != nil {
		return last.PeriodNumber
	}
	return 0
}
