package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swear-jar/models"
	"swear-jar/services"
)

func TestAddParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.progression.AddParticipant(ctx, "  Ayşe Yılmaz ")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Ayşe Yılmaz", p.Name)
	assert.Equal(t, "ayse-yilmaz", p.Slug)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, models.DefaultAvatar, p.Avatar)
	assert.True(t, p.Balance.IsZero())

	for _, blank := range []string{"", "   ", "\t\n"} {
		_, err := f.progression.AddParticipant(ctx, blank)
		require.ErrorIs(t, err, services.ErrValidation)
	}

	ps, err := f.store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, ps, 1)
}

func TestAddCurseAppliesPenalties(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.progression.AddParticipant(ctx, "Bob")
	require.NoError(t, err)
	require.NoError(t, f.store.AdjustXP(ctx, p.ID, 20))

	res, err := f.progression.AddCurse(ctx, p.ID, "192.168.1.10")
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.False(t, res.LevelUp)
	assert.Equal(t, 1, res.Participant.CurseCount)
	assert.True(t, res.Participant.Balance.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(15), res.Participant.XP)
	assert.Equal(t, "2024-05-01", res.Participant.LastActivityDay)

	events, err := f.store.RecentCurseEvents(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "192.168.1.10", events[0].Origin)
	assert.True(t, events[0].CreatedAt.Equal(testNow))
}

func TestBalanceTracksCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.progression.AddParticipant(ctx, "Carol")
	require.NoError(t, err)

	steps := []bool{true, true, false, true, false, false, false, true, true, false}
	for _, add := range steps {
		var res services.EventResult
		if add {
			res, err = f.progression.AddCurse(ctx, p.ID, "")
		} else {
			res, err = f.progression.RemoveCurse(ctx, p.ID)
		}
		require.NoError(t, err)

		got, err := f.store.Get(ctx, p.ID)
		require.NoError(t, err)
		want := decimal.NewFromInt(int64(got.CurseCount) * 10)
		assert.True(t, got.Balance.Equal(want), "balance %s for count %d", got.Balance, got.CurseCount)
		assert.GreaterOrEqual(t, got.CurseCount, 0)
		assert.Equal(t, got.CurseCount, res.Participant.CurseCount)
		assert.Equal(t, services.LevelFor(got.XP), got.Level)
	}
}

func TestRemoveCurseAtZeroIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.progression.AddParticipant(ctx, "Dan")
	require.NoError(t, err)

	res, err := f.progression.RemoveCurse(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.False(t, res.LevelUp)
	assert.Equal(t, 0, res.Participant.CurseCount)
	assert.True(t, res.Participant.Balance.IsZero())
	assert.Equal(t, int64(0), res.Participant.XP)

	got, err := f.store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.XP)
	assert.Equal(t, "", got.LastActivityDay)
}

func TestXPNeverNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.progression.AddParticipant(ctx, "Eve")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		res, err := f.progression.AddCurse(ctx, p.ID, "")
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.Participant.XP)
	}
}

func TestLevelUpOnlyOnStrictIncrease(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.progression.AddParticipant(ctx, "Fay")
	require.NoError(t, err)
	require.NoError(t, f.store.AdjustXP(ctx, p.ID, 95))

	res, err := f.progression.AddCurse(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, int64(90), res.Participant.XP)
	assert.False(t, res.LevelUp)

	res, err = f.progression.RemoveCurse(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Participant.XP)
	assert.Equal(t, 2, res.Participant.Level)
	assert.Equal(t, 1, res.PreviousLevel)
	assert.True(t, res.LevelUp)

	res, err = f.progression.AddCurse(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Participant.Level)
	assert.False(t, res.LevelUp)

	got, err := f.store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Level)
}

func TestAliceEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice, err := f.progression.AddParticipant(ctx, "Alice")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := f.progression.AddCurse(ctx, alice.ID, "")
		require.NoError(t, err)
	}

	got, err := f.store.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurseCount)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, int64(0), got.XP)

	applied := 0
	for i := 0; i < 5; i++ {
		res, err := f.progression.RemoveCurse(ctx, alice.ID)
		require.NoError(t, err)
		if res.Applied {
			applied++
		}
	}
	assert.Equal(t, 3, applied)

	got, err = f.store.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurseCount)
	assert.True(t, got.Balance.IsZero())
	assert.Equal(t, int64(30), got.XP)
}

func TestWindowClosedLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.progression.AddParticipant(ctx, "Gus")
	require.NoError(t, err)
	_, err = f.progression.AddCurse(ctx, p.ID, "")
	require.NoError(t, err)

	before, err := f.store.Get(ctx, p.ID)
	require.NoError(t, err)

	f.clock.Advance(9*time.Hour + time.Second) // 21:00:01
	_, err = f.progression.AddCurse(ctx, p.ID, "")
	require.ErrorIs(t, err, services.ErrWindowClosed)
	_, err = f.progression.RemoveCurse(ctx, p.ID)
	require.ErrorIs(t, err, services.ErrWindowClosed)

	after, err := f.store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, before.CurseCount, after.CurseCount)
	assert.True(t, before.Balance.Equal(after.Balance))
	assert.Equal(t, before.XP, after.XP)

	events, err := f.store.RecentCurseEvents(ctx, p.ID, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)

	// non-counting actions ignore the window
	_, err = f.progression.ChangeAvatar(ctx, p.ID, "🦊")
	require.NoError(t, err)
}

func TestUnknownParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.progression.AddCurse(ctx, "missing", "")
	require.ErrorIs(t, err, services.ErrParticipantNotFound)
	_, err = f.progression.RemoveCurse(ctx, "missing")
	require.ErrorIs(t, err, services.ErrParticipantNotFound)
	_, err = f.progression.ChangeAvatar(ctx, "missing", "🦊")
	require.ErrorIs(t, err, services.ErrParticipantNotFound)
	_, err = f.progression.SetStreak(ctx, "missing", 2)
	require.ErrorIs(t, err, services.ErrParticipantNotFound)
	require.ErrorIs(t, f.progression.RemoveParticipant(ctx, "missing"), services.ErrParticipantNotFound)
}

func TestChangeAvatarAndStreak(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.progression.AddParticipant(ctx, "Hal")
	require.NoError(t, err)

	got, err := f.progression.ChangeAvatar(ctx, p.ID, "🤖")
	require.NoError(t, err)
	assert.Equal(t, "🤖", got.Avatar)

	_, err = f.progression.ChangeAvatar(ctx, p.ID, "🍕")
	require.ErrorIs(t, err, services.ErrValidation)
	_, err = f.progression.ChangeAvatar(ctx, p.ID, "")
	require.ErrorIs(t, err, services.ErrValidation)

	got, err = f.progression.SetStreak(ctx, p.ID, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Streak)

	_, err = f.progression.SetStreak(ctx, p.ID, -1)
	require.ErrorIs(t, err, services.ErrValidation)
}

func TestRemoveParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.progression.AddParticipant(ctx, "A")
	require.NoError(t, err)
	b, err := f.progression.AddParticipant(ctx, "B")
	require.NoError(t, err)
	_, err = f.progression.AddCurse(ctx, a.ID, "")
	require.NoError(t, err)
	_, err = f.progression.AddCurse(ctx, b.ID, "")
	require.NoError(t, err)

	require.NoError(t, f.progression.RemoveParticipant(ctx, a.ID))

	board, err := f.board.Snapshot(ctx, "")
	require.NoError(t, err)
	require.Len(t, board.Participants, 1)
	assert.Equal(t, b.ID, board.Participants[0].ID)
	assert.True(t, board.TotalBalance.Equal(decimal.NewFromInt(10)))
}
