package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"carboquiz/internal/domain"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestLeaderboardAddAndOrder(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore(newTestClient(t))

	ids := make([]string, 0, 3)
	for _, carbon := range []float64{500, 100, 300} {
		id, err := store.AddEntry(ctx, domain.LeaderboardEntry{PlayerName: "p", TotalCarbon: carbon})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		ids = append(ids, id)
	}

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, []float64{100, 300, 500}, []float64{
		entries[0].TotalCarbon, entries[1].TotalCarbon, entries[2].TotalCarbon,
	})

	total, err := store.TotalFootprint(ctx)
	require.NoError(t, err)
	require.Equal(t, 900.0, total)

	entry, err := store.Entry(ctx, ids[1])
	require.NoError(t, err)
	require.Equal(t, 100.0, entry.TotalCarbon)
}

func TestLeaderboardEntryNotFound(t *testing.T) {
	store := NewLeaderboardStore(newTestClient(t))
	_, err := store.Entry(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestLeaderboardEmptyReads(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore(newTestClient(t))

	entries, err := store.Entries(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	total, err := store.TotalFootprint(ctx)
	require.NoError(t, err)
	require.Zero(t, total)

	ranks, err := store.Ranks(ctx)
	require.NoError(t, err)
	require.Empty(t, ranks)
}

func TestRankFeedRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore(newTestClient(t))

	require.NoError(t, store.UpdateRankEntry(ctx, domain.RankEntry{Rank: 4, PlayerName: "old", OptionText: "car"}))
	require.NoError(t, store.UpdateRankEntry(ctx, domain.RankEntry{Rank: 1, PlayerName: "a", OptionText: "bike"}))
	require.NoError(t, store.UpdateRankEntry(ctx, domain.RankEntry{Rank: 4, PlayerName: "new", OptionText: "carpool"}))

	ranks, err := store.Ranks(ctx)
	require.NoError(t, err)
	require.Len(t, ranks, 2)
	require.Equal(t, 1, ranks[0].Rank)
	require.Equal(t, 4, ranks[1].Rank)
	require.Equal(t, "new", ranks[1].PlayerName)
}

func TestSubscribeEntriesPrimesAndUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore(newTestClient(t))
	_, err := store.AddEntry(ctx, domain.LeaderboardEntry{TotalCarbon: 200})
	require.NoError(t, err)

	ch, cancel := store.SubscribeEntries()
	defer cancel()

	initial := <-ch
	require.Len(t, initial, 1)

	_, err = store.AddEntry(ctx, domain.LeaderboardEntry{TotalCarbon: 50})
	require.NoError(t, err)

	update := <-ch
	require.Len(t, update, 2)
	require.Equal(t, 50.0, update[0].TotalCarbon)
}
