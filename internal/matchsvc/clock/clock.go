package clock

import (
	"fmt"
	"time"

	"github.com/avvvet/match-services/internal/matchsvc/models"
)

// GameSeconds is the single game-time unit used across the ledgers: whole
// seconds elapsed since the first period's kickoff. Period rows carry
// wall-clock unix milliseconds; everything else (stoppages, substitutions,
// goal events) carries GameSeconds. Conversions live here and nowhere else.
type GameSeconds int64

func (g GameSeconds) Duration() time.Duration {
	return time.Duration(g) * time.Second
}

// Clock renders MM:SS for scoreboard display.
func (g GameSeconds) Clock() string {
	return fmt.Sprintf("%02d:%02d", g/60, g%60)
}

// FromWallClock converts an instant to GameSeconds relative to the first
// kickoff. Truncates to whole seconds, never negative.
func FromWallClock(firstKickoffMS int64, instant time.Time) GameSeconds {
	s := (instant.UnixMilli() - firstKickoffMS) / 1000
	if s < 0 {
		s = 0
	}
	return GameSeconds(s)
}

// OpenPeriod returns the period with no end time, or nil. The ledger keeps
// at most one open at a time.
func OpenPeriod(periods []*models.Period) *models.Period {
	for _, p := range periods {
		if p.Open() {
			return p
		}
	}
	return nil
}

// LastPeriod returns the highest-numbered period, or nil before kickoff.
// Periods arrive ordered by period number.
func LastPeriod(periods []*models.Period) *models.Period {
	if len(periods) == 0 {
		return nil
	}
	return periods[len(periods)-1]
}

// GameTimeAt is the broadcast "time since kickoff": continuous wall-clock
// elapsed from the first period's start, never reduced by stoppages. Callers
// freeze the instant at the final whistle once the game is over.
func GameTimeAt(periods []*models.Period, instant time.Time) GameSeconds {
	if len(periods) == 0 {
		return 0
	}
	return FromWallClock(periods[0].StartTime, instant)
}

// PeriodTimeAt is the clock players experience: elapsed within the open
// period, net of clock-stopping stoppages. An open stoppage counts up to the
// instant. Returns 0 when no period is open.
func PeriodTimeAt(periods []*models.Period, stoppages []*models.Stoppage, instant time.Time) GameSeconds {
	cur := OpenPeriod(periods)
	if cur == nil {
		return 0
	}

	elapsed := (instant.UnixMilli() - cur.StartTime) / 1000
	now := GameTimeAt(periods, instant)

	var stopped int64
	for _, st := range stoppages {
		if st.Period != cur.PeriodNumber || st.ClockShouldRun {
			continue
		}
		if !st.Open() {
			stopped += st.EndTime.Int64 - st.GameTime
		} else if d := int64(now) - st.GameTime; d > 0 {
			stopped += d
		}
	}

	t := elapsed - stopped
	if t < 0 {
		t = 0
	}
	return GameSeconds(t)
}
