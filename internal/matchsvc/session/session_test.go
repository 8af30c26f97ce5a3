package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/match-services/internal/matchsvc/models"
)

const (
	testGameID = int64(1)
	homeTeam   = int64(100)
	awayTeam   = int64(200)

	testBaseMS = int64(1_700_000_000_000)
)

// fakeClock is a settable wall clock keyed to the game-second axis: second 0
// is the instant the test kicks off the first period.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(testBaseMS)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(gameSeconds int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.UnixMilli(testBaseMS + gameSeconds*1000)
}

func defaultSettings() models.GameSettings {
	return models.GameSettings{
		PlayersPerSide:    11,
		RegulationPeriods: 2,
		PeriodMinutes:     45,
	}
}

func testGame(set models.GameSettings) *models.Game {
	return &models.Game{
		ID:               testGameID,
		HomeTeamSeasonID: homeTeam,
		AwayTeamSeasonID: awayTeam,
		Settings:         set,
		Status:           models.GameScheduled,
	}
}

func testRoster() []*models.PlayerGame {
	return []*models.PlayerGame{
		{ID: 1, GameID: testGameID, TeamSeasonID: homeTeam, PlayerID: 11, Name: "Abel", GameStatus: models.StatusStarter},
		{ID: 2, GameID: testGameID, TeamSeasonID: homeTeam, PlayerID: 12, Name: "Beka", GameStatus: models.StatusDressed},
		{ID: 3, GameID: testGameID, TeamSeasonID: homeTeam, PlayerID: 13, Name: "Chaltu", GameStatus: models.StatusDressed},
		{ID: 4, GameID: testGameID, TeamSeasonID: homeTeam, PlayerID: 14, Name: "Dawit", GameStatus: models.StatusGoalkeeper},
		{ID: 5, GameID: testGameID, TeamSeasonID: awayTeam, PlayerID: 21, Name: "Omar", GameStatus: models.StatusStarter},
		{ID: 6, GameID: testGameID, TeamSeasonID: awayTeam, PlayerID: 22, Name: "Petros", GameStatus: models.StatusDressed},
	}
}

func newTestSession(t *testing.T, set models.GameSettings, opts ...Option) (*MatchSession, *fakeStore, *fakeClock) {
	t.Helper()
	fs := newFakeStore(testGame(set), testRoster())
	clk := newFakeClock()
	opts = append([]Option{WithClock(clk.Now)}, opts...)
	sess, err := Load(context.Background(), fs, testGameID, opts...)
	require.NoError(t, err)
	return sess, fs, clk
}

// kickoff opens the first period at game-second zero.
func kickoff(t *testing.T, sess *MatchSession) {
	t.Helper()
	_, err := sess.StartNextPeriod(context.Background())
	require.NoError(t, err)
}

func TestLoadUnknownGame(t *testing.T) {
	fs := newFakeStore(testGame(defaultSettings()), nil)
	_, err := Load(context.Background(), fs, 999)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestLoadReadsExistingLedgers(t *testing.T) {
	fs := newFakeStore(testGame(defaultSettings()), testRoster())
	clk := newFakeClock()

	// seed a finished first period and a stoppage directly in the store
	fs.periods = append(fs.periods, &models.Period{
		ID: 1, GameID: testGameID, PeriodNumber: 1,
		StartTime: testBaseMS,
	})
	fs.stoppages = append(fs.stoppages, &models.Stoppage{
		ID: 2, GameID: testGameID, Period: 1, GameTime: 300,
	})

	sess, err := Load(context.Background(), fs, testGameID, WithClock(clk.Now))
	require.NoError(t, err)

	assert.Len(t, sess.Periods(), 1)
	assert.Len(t, sess.Stoppages(), 1)
	assert.Len(t, sess.Players(), 6)
	assert.Equal(t, DuringPeriod, sess.Stage(context.Background()))
}

func TestManagerReturnsSameSession(t *testing.T) {
	fs := newFakeStore(testGame(defaultSettings()), testRoster())
	mgr := NewManager(fs)

	a, err := mgr.Get(context.Background(), testGameID)
	require.NoError(t, err)
	b, err := mgr.Get(context.Background(), testGameID)
	require.NoError(t, err)
	assert.Same(t, a, b)

	mgr.Release(testGameID)
	c, err := mgr.Get(context.Background(), testGameID)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestManagerUnknownGame(t *testing.T) {
	fs := newFakeStore(testGame(defaultSettings()), nil)
	mgr := NewManager(fs)
	_, err := mgr.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrGameNotFound)
}
