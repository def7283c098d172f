package leaderboardservice

import (
	"context"
	"testing"

	"github.com/firestorm-arena/firestorm/internal/domain"
	"github.com/firestorm-arena/firestorm/internal/repo/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return New(store.Leaderboard(), store.Users()), store
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	first, err := store.Users().Create(ctx, &domain.User{Username: "first"})
	require.NoError(t, err)
	second, err := store.Users().Create(ctx, &domain.User{Username: "second"})
	require.NoError(t, err)

	require.NoError(t, service.Record(ctx, domain.LeaderboardEntry{UserID: first.ID, Kills: 10, Wins: 2}))
	require.NoError(t, service.Record(ctx, domain.LeaderboardEntry{UserID: second.ID, Kills: 25, Wins: 1}))

	entries, err := service.Get(ctx, PeriodWeekly)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Ordered by kills, ranked by position.
	assert.Equal(t, second.ID, entries[0].Entry.UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "second", entries[0].User.Username)
	assert.Equal(t, first.ID, entries[1].Entry.UserID)
	assert.Equal(t, 2, entries[1].Rank)

	_, err = service.Get(ctx, "hourly")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestRecordCoversAllPeriods(t *testing.T) {
	ctx := context.Background()
	service, store := newTestService(t)

	user, err := store.Users().Create(ctx, &domain.User{Username: "first"})
	require.NoError(t, err)

	require.NoError(t, service.Record(ctx, domain.LeaderboardEntry{UserID: user.ID, Kills: 5, Wins: 1, Earnings: 500}))

	for _, period := range Periods {
		entries, err := service.Get(ctx, period)
		require.NoError(t, err)
		require.Len(t, entries, 1, period)
		assert.Equal(t, 5, entries[0].Entry.Kills)
		assert.Equal(t, 500.0, entries[0].Entry.Earnings)
	}
}
