package session

import (
	"github.com/avvvet/match-services/internal/matchsvc/clock"
)

// PlayerTime is the derived playing-time summary for one player at a given
// game time.
type PlayerTime struct {
	Total      clock.GameSeconds `json:"total"`       // cumulative time on field
	CurrentOn  clock.GameSeconds `json:"current_on"`  // current shift, 0 when benched
	CurrentOff clock.GameSeconds `json:"current_off"` // current rest, 0 when on field
	OnField    bool              `json:"on_field"`
}

// PlayerTimes computes the summary at the current game time.
func (m *MatchSession) PlayerTimes(playerGameID int64) PlayerTime {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerTimesLocked(playerGameID, m.gameTimeLocked())
}

// PlayerTimesAt computes the summary at an explicit game time.
func (m *MatchSession) PlayerTimesAt(playerGameID int64, now clock.GameSeconds) PlayerTime {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerTimesLocked(playerGameID, now)
}

// TotalTimeOnFieldAt is the cumulative on-field time at an explicit game
// time.
func (m *MatchSession) TotalTimeOnFieldAt(playerGameID int64, now clock.GameSeconds) clock.GameSeconds {
	return m.PlayerTimesAt(playerGameID, now).Total
}

// CurrentTimeOnFieldAt is time since the latest confirmed "in", 0 when the
// player is benched.
func (m *MatchSession) CurrentTimeOnFieldAt(playerGameID int64, now clock.GameSeconds) clock.GameSeconds {
	return m.PlayerTimesAt(playerGameID, now).CurrentOn
}

// CurrentTimeOffFieldAt is time since the latest confirmed "out", 0 when the
// player is on field.
func (m *MatchSession) CurrentTimeOffFieldAt(playerGameID int64, now clock.GameSeconds) clock.GameSeconds {
	return m.PlayerTimesAt(playerGameID, now).CurrentOff
}

// playerTimesLocked reconstructs on-field intervals by pairing confirmed
// ins/outs chronologically, clips every interval to the period windows so
// breaks never count, and subtracts clock-stopped overlap from field time.
// Bench time is clipped the same way but keeps stoppage time: the clock
// being stopped does not make a rest shorter. Pending substitutions are
// invisible here; a player referenced by no roster entry simply produces
// zeros.
func (m *MatchSession) playerTimesLocked(playerGameID int64, now clock.GameSeconds) PlayerTime {
	p := m.playerLocked(playerGameID)
	if p == nil {
		return PlayerTime{}
	}

	ins, outs := m.confirmedEntriesLocked(p)
	windows := clock.PeriodWindows(m.periods, now)

	pt := PlayerTime{OnField: len(ins) > len(outs)}
	for i, in := range ins {
		to := now
		if i < len(outs) {
			to = clock.GameSeconds(outs[i])
		}
		pt.Total += m.activeSpanLocked(clock.GameSeconds(in), to, now, windows, true)
	}

	if pt.OnField {
		lastIn := clock.GameSeconds(ins[len(ins)-1])
		pt.CurrentOn = m.activeSpanLocked(lastIn, now, now, windows, true)
	} else {
		var lastOut clock.GameSeconds
		if len(outs) > 0 {
			lastOut = clock.GameSeconds(outs[len(outs)-1])
		}
		pt.CurrentOff = m.activeSpanLocked(lastOut, now, now, windows, false)
	}
	return pt
}

// activeSpanLocked measures [from, to) against the period windows,
// optionally net of clock-stopped stoppage overlap.
func (m *MatchSession) activeSpanLocked(from, to, now clock.GameSeconds, windows []clock.Window, netOfStoppages bool) clock.GameSeconds {
	if to > now {
		to = now
	}
	var total clock.GameSeconds
	for _, w := range windows {
		ov := w.Overlap(from, to)
		if ov == 0 {
			continue
		}
		if netOfStoppages {
			s, e := from, to
			if s < w.Start {
				s = w.Start
			}
			if e > w.End {
				e = w.End
			}
			ov -= clock.StoppedWithin(m.stoppages, w.Period, s, e, now)
			if ov < 0 {
				ov = 0
			}
		}
		total += ov
	}
	return total
}
