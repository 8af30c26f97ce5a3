package clock

import "github.com/avvvet/match-services/internal/matchsvc/models"

// Window is one period's span of active play in game-seconds. Time between
// windows is the break between periods and never counts toward anything.
type Window struct {
	Period int
	Start  GameSeconds
	End    GameSeconds
}

// PeriodWindows maps each period onto the game-second axis. An open period
// extends to now.
func PeriodWindows(periods []*models.Period, now GameSeconds) []Window {
	if len(periods) == 0 {
		return nil
	}
	first := periods[0].StartTime
	ws := make([]Window, 0, len(periods))
	for _, p := range periods {
		w := Window{Period: p.PeriodNumber}
		s := (p.StartTime - first) / 1000
		if s < 0 {
			s = 0
		}
		w.Start = GameSeconds(s)
		if p.Open() {
			w.End = now
		} else {
			w.End = GameSeconds((p.EndTime.Int64 - first) / 1000)
		}
		if w.End < w.Start {
			w.End = w.Start
		}
		ws = append(ws, w)
	}
	return ws
}

// Overlap returns the length of the intersection of [from, to) with the
// window.
func (w Window) Overlap(from, to GameSeconds) GameSeconds {
	if from < w.Start {
		from = w.Start
	}
	if to > w.End {
		to = w.End
	}
	if to <= from {
		return 0
	}
	return to - from
}

// StoppedWithin sums the clock-stopped seconds inside [from, to) for a given
// period. Open stoppages run to now.
func StoppedWithin(stoppages []*models.Stoppage, periodNo int, from, to, now GameSeconds) GameSeconds {
	var stopped GameSeconds
	for _, st := range stoppages {
		if st.Period != periodNo || st.ClockShouldRun {
			continue
		}
		s := GameSeconds(st.GameTime)
		e := now
		if !st.Open() {
			e = GameSeconds(st.EndTime.Int64)
		}
		if s < from {
			s = from
		}
		if e > to {
			e = to
		}
		if e > s {
			stopped += e - s
		}
	}
	return stopped
}
