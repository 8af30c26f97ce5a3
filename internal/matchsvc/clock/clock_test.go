package clock

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avvvet/match-services/internal/matchsvc/models"
)

const baseMS = int64(1_700_000_000_000)

func at(gameSeconds int64) time.Time {
	return time.UnixMilli(baseMS + gameSeconds*1000)
}

func period(num int, startGS, endGS int64) *models.Period {
	p := &models.Period{PeriodNumber: num, StartTime: baseMS + startGS*1000}
	if endGS >= 0 {
		p.EndTime = sql.NullInt64{Int64: baseMS + endGS*1000, Valid: true}
	}
	return p
}

func stoppage(periodNo int, startGS, endGS int64, clockRuns bool) *models.Stoppage {
	s := &models.Stoppage{Period: periodNo, GameTime: startGS, ClockShouldRun: clockRuns}
	if endGS >= 0 {
		s.EndTime = sql.NullInt64{Int64: endGS, Valid: true}
	}
	return s
}

func TestClockString(t *testing.T) {
	tests := []struct {
		gs   GameSeconds
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{570, "09:30"},
		{2700, "45:00"},
		{5400, "90:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.gs.Clock())
	}
}

func TestFromWallClock(t *testing.T) {
	assert.Equal(t, GameSeconds(0), FromWallClock(baseMS, at(0)))
	assert.Equal(t, GameSeconds(600), FromWallClock(baseMS, at(600)))

	// sub-second precision truncates down
	assert.Equal(t, GameSeconds(599), FromWallClock(baseMS, time.UnixMilli(baseMS+599_900)))

	// an instant before kickoff clamps to zero
	assert.Equal(t, GameSeconds(0), FromWallClock(baseMS, at(-30)))
}

func TestGameTimeAt(t *testing.T) {
	tests := []struct {
		name    string
		periods []*models.Period
		instant time.Time
		want    GameSeconds
	}{
		{
			name:    "no periods yet",
			periods: nil,
			instant: at(120),
			want:    0,
		},
		{
			name:    "at kickoff",
			periods: []*models.Period{period(1, 0, -1)},
			instant: at(0),
			want:    0,
		},
		{
			name:    "ten minutes in",
			periods: []*models.Period{period(1, 0, -1)},
			instant: at(600),
			want:    600,
		},
		{
			name: "second period counts from first kickoff",
			periods: []*models.Period{
				period(1, 0, 2700),
				period(2, 3600, -1),
			},
			instant: at(3700),
			want:    3700,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GameTimeAt(tt.periods, tt.instant))
		})
	}
}

func TestPeriodTimeAt(t *testing.T) {
	tests := []struct {
		name      string
		periods   []*models.Period
		stoppages []*models.Stoppage
		instant   time.Time
		want      GameSeconds
	}{
		{
			name:    "no open period",
			periods: []*models.Period{period(1, 0, 2700)},
			instant: at(2800),
			want:    0,
		},
		{
			name:    "running clock without stoppages",
			periods: []*models.Period{period(1, 0, -1)},
			instant: at(600),
			want:    600,
		},
		{
			// injury from 05:00 to 05:30, read at 10:00 of game time
			name:      "closed stoppage excluded",
			periods:   []*models.Period{period(1, 0, -1)},
			stoppages: []*models.Stoppage{stoppage(1, 300, 330, false)},
			instant:   at(600),
			want:      570,
		},
		{
			name:      "open stoppage counts up to the instant",
			periods:   []*models.Period{period(1, 0, -1)},
			stoppages: []*models.Stoppage{stoppage(1, 300, -1, false)},
			instant:   at(450),
			want:      300,
		},
		{
			name:      "clock-running stoppage is not subtracted",
			periods:   []*models.Period{period(1, 0, -1)},
			stoppages: []*models.Stoppage{stoppage(1, 300, 330, true)},
			instant:   at(600),
			want:      600,
		},
		{
			name: "earlier period stoppages do not bleed into the next",
			periods: []*models.Period{
				period(1, 0, 2700),
				period(2, 3600, -1),
			},
			stoppages: []*models.Stoppage{stoppage(1, 300, 330, false)},
			instant:   at(3700),
			want:      100,
		},
		{
			name: "multiple stoppages accumulate",
			periods: []*models.Period{
				period(1, 0, -1),
			},
			stoppages: []*models.Stoppage{
				stoppage(1, 100, 130, false),
				stoppage(1, 400, 460, false),
			},
			instant: at(600),
			want:    510,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodTimeAt(tt.periods, tt.stoppages, tt.instant))
		})
	}
}

func TestPeriodTimeNeverExceedsGameTime(t *testing.T) {
	periods := []*models.Period{period(1, 0, -1)}
	stoppages := []*models.Stoppage{stoppage(1, 120, 180, false)}

	for gs := int64(0); gs <= 900; gs += 60 {
		pt := PeriodTimeAt(periods, stoppages, at(gs))
		gt := GameTimeAt(periods, at(gs))
		assert.LessOrEqual(t, pt, gt, "at game second %d", gs)
	}
}

func TestPeriodWindows(t *testing.T) {
	periods := []*models.Period{
		period(1, 0, 2700),
		period(2, 3600, -1),
	}
	ws := PeriodWindows(periods, 4000)

	assert.Len(t, ws, 2)
	assert.Equal(t, Window{Period: 1, Start: 0, End: 2700}, ws[0])
	assert.Equal(t, Window{Period: 2, Start: 3600, End: 4000}, ws[1])

	assert.Nil(t, PeriodWindows(nil, 100))
}

func TestWindowOverlap(t *testing.T) {
	w := Window{Period: 1, Start: 0, End: 2700}

	tests := []struct {
		name     string
		from, to GameSeconds
		want     GameSeconds
	}{
		{"fully inside", 100, 400, 300},
		{"spills past the end", 2600, 3700, 100},
		{"starts before the window", -50, 60, 60},
		{"entirely in the break", 2800, 3500, 0},
		{"empty span", 400, 400, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Overlap(tt.from, tt.to))
		})
	}
}

func TestStoppedWithin(t *testing.T) {
	stoppages := []*models.Stoppage{
		stoppage(1, 300, 330, false),
		stoppage(1, 500, -1, false),
		stoppage(1, 100, 160, true), // clock kept running
		stoppage(2, 200, 260, false),
	}

	// closed stoppage fully inside the span
	assert.Equal(t, GameSeconds(30), StoppedWithin(stoppages, 1, 0, 400, 400))

	// open stoppage runs to now
	assert.Equal(t, GameSeconds(130), StoppedWithin(stoppages, 1, 0, 600, 600))

	// span clipping cuts a stoppage that straddles the boundary
	assert.Equal(t, GameSeconds(15), StoppedWithin(stoppages, 1, 315, 400, 400))

	// other periods do not contribute
	assert.Equal(t, GameSeconds(60), StoppedWithin(stoppages, 2, 0, 600, 600))
}
