package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/match-services/internal/matchsvc/clock"
)

func TestPlayerTimesStarterDefault(t *testing.T) {
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)
	clk.Set(600)

	pt := sess.PlayerTimes(1)
	assert.True(t, pt.OnField)
	assert.Equal(t, clock.GameSeconds(600), pt.Total)
	assert.Equal(t, clock.GameSeconds(600), pt.CurrentOn)
	assert.Equal(t, clock.GameSeconds(0), pt.CurrentOff)
}

func TestPlayerTimesBenchDefault(t *testing.T) {
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)
	clk.Set(600)

	pt := sess.PlayerTimes(2)
	assert.False(t, pt.OnField)
	assert.Equal(t, clock.GameSeconds(0), pt.Total)
	assert.Equal(t, clock.GameSeconds(0), pt.CurrentOn)
	assert.Equal(t, clock.GameSeconds(600), pt.CurrentOff)
}

func TestPlayerTimesAfterSwap(t *testing.T) {
	ctx := context.Background()
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	// starter off, bench player on at 06:40
	clk.Set(400)
	sub, err := sess.CreatePendingSub(ctx, 2, 1, false)
	require.NoError(t, err)
	_, _, err = sess.ConfirmSub(ctx, sub.ID, false)
	require.NoError(t, err)

	clk.Set(600)

	out := sess.PlayerTimes(1)
	assert.False(t, out.OnField)
	assert.Equal(t, clock.GameSeconds(400), out.Total)
	assert.Equal(t, clock.GameSeconds(0), out.CurrentOn)
	assert.Equal(t, clock.GameSeconds(200), out.CurrentOff)

	in := sess.PlayerTimes(2)
	assert.True(t, in.OnField)
	assert.Equal(t, clock.GameSeconds(200), in.Total)
	assert.Equal(t, clock.GameSeconds(200), in.CurrentOn)
	assert.Equal(t, clock.GameSeconds(0), in.CurrentOff)
}

func TestPlayerTimesReentry(t *testing.T) {
	ctx := context.Background()
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	// off at 400, back on at 900
	clk.Set(400)
	sub, err := sess.CreatePendingSub(ctx, 2, 1, false)
	require.NoError(t, err)
	_, _, err = sess.ConfirmSub(ctx, sub.ID, false)
	require.NoError(t, err)

	clk.Set(900)
	back, err := sess.CreatePendingSub(ctx, 1, 2, false)
	require.NoError(t, err)
	_, _, err = sess.ConfirmSub(ctx, back.ID, false)
	require.NoError(t, err)

	clk.Set(1200)
	pt := sess.PlayerTimes(1)
	assert.True(t, pt.OnField)
	assert.Equal(t, clock.GameSeconds(700), pt.Total)
	assert.Equal(t, clock.GameSeconds(300), pt.CurrentOn)
}

func TestPlayerTimesNetOfStoppages(t *testing.T) {
	ctx := context.Background()
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	clk.Set(300)
	st, err := sess.StartStoppage(ctx, "injury", "", false)
	require.NoError(t, err)
	clk.Set(330)
	_, err = sess.EndStoppage(ctx, st.ID)
	require.NoError(t, err)

	clk.Set(600)

	// field time excludes the 30 stopped seconds
	on := sess.PlayerTimes(1)
	assert.Equal(t, clock.GameSeconds(570), on.Total)
	assert.Equal(t, clock.GameSeconds(570), on.CurrentOn)

	// a rest on the bench is not shortened by the clock being stopped
	off := sess.PlayerTimes(2)
	assert.Equal(t, clock.GameSeconds(600), off.CurrentOff)
}

func TestPlayerTimesExcludeBreaks(t *testing.T) {
	ctx := context.Background()
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	clk.Set(2700)
	_, err := sess.EndCurrentPeriod(ctx)
	require.NoError(t, err)

	// fifteen minute break
	clk.Set(3600)
	_, err = sess.StartNextPeriod(ctx)
	require.NoError(t, err)

	clk.Set(3700)
	now := sess.GameTime()
	require.Equal(t, clock.GameSeconds(3700), now)

	// 2700 from the first period plus 100 from the second, break excluded
	assert.Equal(t, clock.GameSeconds(2800), sess.TotalTimeOnFieldAt(1, now))
	assert.Equal(t, clock.GameSeconds(2800), sess.CurrentTimeOffFieldAt(2, now))
}

func TestPlayerTimesIgnorePendingSubs(t *testing.T) {
	ctx := context.Background()
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	clk.Set(400)
	_, err := sess.CreatePendingSub(ctx, 2, 1, false)
	require.NoError(t, err)

	clk.Set(600)
	assert.Equal(t, clock.GameSeconds(600), sess.PlayerTimes(1).Total)
	assert.Equal(t, clock.GameSeconds(0), sess.PlayerTimes(2).Total)
}

func TestPlayerTimesUnknownPlayer(t *testing.T) {
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)
	clk.Set(600)
	assert.Equal(t, PlayerTime{}, sess.PlayerTimes(999))
}

func TestPlayerTimesAtHistoricalInstant(t *testing.T) {
	ctx := context.Background()
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	clk.Set(400)
	sub, err := sess.CreatePendingSub(ctx, 2, 1, false)
	require.NoError(t, err)
	_, _, err = sess.ConfirmSub(ctx, sub.ID, false)
	require.NoError(t, err)

	clk.Set(900)

	// queries at a past game-second see only what had happened by then
	assert.Equal(t, clock.GameSeconds(200), sess.TotalTimeOnFieldAt(1, 200))
	assert.Equal(t, clock.GameSeconds(400), sess.TotalTimeOnFieldAt(1, 700))
	assert.Equal(t, clock.GameSeconds(300), sess.CurrentTimeOnFieldAt(2, 700))
}
