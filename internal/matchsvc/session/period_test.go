package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avvvet/match-services/internal/matchsvc/clock"
)

func TestStartNextPeriodNumbersSequentially(t *testing.T) {
	ctx := context.Background()
	sess, _, clk := newTestSession(t, defaultSettings())

	p1, err := sess.StartNextPeriod(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, p1.PeriodNumber)
	assert.Equal(t, testBaseMS, p1.StartTime)

	// cannot open a second period over an open one
	_, err = sess.StartNextPeriod(ctx)
	assert.ErrorIs(t, err, ErrPeriodOpen)

	clk.Set(2700)
	_, err = sess.EndCurrentPeriod(ctx)
	require.NoError(t, err)

	clk.Set(3600)
	p2, err := sess.StartNextPeriod(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, p2.PeriodNumber)
}

func TestEndCurrentPeriodWithoutOpenPeriod(t *testing.T) {
	ctx := context.Background()
	sess, _, _ := newTestSession(t, defaultSettings())
	_, err := sess.EndCurrentPeriod(ctx)
	assert.ErrorIs(t, err, ErrNoOpenPeriod)
}

func TestEndCurrentPeriodClosesOpenStoppage(t *testing.T) {
	ctx := context.Background()
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	clk.Set(300)
	st, err := sess.StartStoppage(ctx, "weather", "lightning delay", false)
	require.NoError(t, err)

	clk.Set(450)
	p, err := sess.EndCurrentPeriod(ctx)
	require.NoError(t, err)
	assert.False(t, p.Open())

	// the stoppage was sealed at the same game-second as the period end
	stoppages := sess.Stoppages()
	require.Len(t, stoppages, 1)
	assert.False(t, stoppages[0].Open())
	assert.Equal(t, int64(450), stoppages[0].EndTime.Int64)
	assert.Equal(t, st.ID, stoppages[0].ID)
}

func TestStartNextPeriodRollsBackOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	sess, fs, _ := newTestSession(t, defaultSettings())

	fs.failOnce("CreatePeriod")
	_, err := sess.StartNextPeriod(ctx)

	var pe *PersistError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "period", pe.Op)
	assert.Empty(t, sess.Periods())
	assert.Equal(t, BeforeStart, sess.Stage(ctx))
}

func TestEndCurrentPeriodRollsBackOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	sess, fs, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	clk.Set(2700)
	fs.failOnce("ClosePeriod")
	_, err := sess.EndCurrentPeriod(ctx)

	var pe *PersistError
	require.ErrorAs(t, err, &pe)

	// the period is still open and a retry succeeds
	assert.Equal(t, DuringPeriod, sess.Stage(ctx))
	_, err = sess.EndCurrentPeriod(ctx)
	require.NoError(t, err)
	assert.Equal(t, BetweenPeriods, sess.Stage(ctx))
}

func TestQueuedSubReleasedAtNextKickoff(t *testing.T) {
	ctx := context.Background()
	sess, _, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	clk.Set(2700)
	_, err := sess.EndCurrentPeriod(ctx)
	require.NoError(t, err)

	// confirm a complete swap during the break: it queues instead of landing
	sub, err := sess.CreatePendingSub(ctx, 2, 1, false)
	require.NoError(t, err)
	confirmed, warning, err := sess.ConfirmSub(ctx, sub.ID, false)
	require.NoError(t, err)
	assert.Equal(t, WarnQueued, warning)
	assert.True(t, confirmed.Pending())

	state, ok := sess.SubStateOf(sub.ID)
	require.True(t, ok)
	assert.Equal(t, SubQueued, state)

	// next kickoff stamps the sub at the new period's first game-second
	clk.Set(3600)
	_, err = sess.StartNextPeriod(ctx)
	require.NoError(t, err)

	subs := sess.Substitutions()
	require.Len(t, subs, 1)
	assert.False(t, subs[0].Pending())
	assert.Equal(t, int64(3600), subs[0].SubTime.Int64)
	assert.Equal(t, 2, subs[0].Period)

	state, _ = sess.SubStateOf(sub.ID)
	assert.Equal(t, SubConfirmed, state)

	// the swap is in force from the kickoff
	clk.Set(3700)
	statuses := sess.FieldStatuses()
	assert.Equal(t, OnBench, statuses[1])
	assert.Equal(t, OnField, statuses[2])
	assert.Equal(t, clock.GameSeconds(100), sess.TotalTimeOnFieldAt(2, sess.GameTime()))
}

func TestQueuedSubSurvivesReleaseFailure(t *testing.T) {
	ctx := context.Background()
	sess, fs, clk := newTestSession(t, defaultSettings())
	kickoff(t, sess)

	clk.Set(2700)
	_, err := sess.EndCurrentPeriod(ctx)
	require.NoError(t, err)

	sub, err := sess.CreatePendingSub(ctx, 2, 1, false)
	require.NoError(t, err)
	_, _, err = sess.ConfirmSub(ctx, sub.ID, false)
	require.NoError(t, err)

	// the release write fails; the sub stays queued, the period still opens
	clk.Set(3600)
	fs.failOnce("UpdateSubstitution")
	_, err = sess.StartNextPeriod(ctx)
	require.NoError(t, err)

	state, _ := sess.SubStateOf(sub.ID)
	assert.Equal(t, SubQueued, state)
	subs := sess.Substitutions()
	require.Len(t, subs, 1)
	assert.True(t, subs[0].Pending())
}
