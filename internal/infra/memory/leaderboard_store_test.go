package memory

import (
	"context"
	"testing"

	"carboquiz/internal/domain"
)

func TestAddEntryAssignsIDAndOrdersAscending(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore()

	for _, carbon := range []float64{500, 100, 300} {
		id, err := store.AddEntry(ctx, domain.LeaderboardEntry{PlayerName: "p", TotalCarbon: carbon})
		if err != nil {
			t.Fatalf("add entry: %v", err)
		}
		if id == "" {
			t.Fatal("expected generated entry ID")
		}
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []float64{100, 300, 500} {
		if entries[i].TotalCarbon != want {
			t.Fatalf("position %d: expected %v, got %v", i, want, entries[i].TotalCarbon)
		}
	}

	total, err := store.TotalFootprint(ctx)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 900 {
		t.Fatalf("expected running total 900, got %v", total)
	}
}

func TestEntryLookup(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore()

	id, err := store.AddEntry(ctx, domain.LeaderboardEntry{PlayerName: "Alice", TotalCarbon: 42})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}

	entry, err := store.Entry(ctx, id)
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if entry.PlayerName != "Alice" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	if _, err := store.Entry(ctx, "missing"); err != domain.ErrEntryNotFound {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestRankFeedKeepsLatestPerBucket(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore()

	_ = store.UpdateRankEntry(ctx, domain.RankEntry{Rank: 3, PlayerName: "old", OptionText: "bus"})
	_ = store.UpdateRankEntry(ctx, domain.RankEntry{Rank: 1, PlayerName: "a", OptionText: "bike"})
	_ = store.UpdateRankEntry(ctx, domain.RankEntry{Rank: 3, PlayerName: "new", OptionText: "train"})

	ranks, err := store.Ranks(ctx)
	if err != nil {
		t.Fatalf("ranks: %v", err)
	}
	if len(ranks) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(ranks))
	}
	if ranks[0].Rank != 1 || ranks[1].Rank != 3 {
		t.Fatalf("expected ranks sorted ascending, got %+v", ranks)
	}
	if ranks[1].PlayerName != "new" {
		t.Fatalf("expected latest entry to replace bucket, got %+v", ranks[1])
	}
}

func TestSubscribeEntriesPrimesAndUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore()
	if _, err := store.AddEntry(ctx, domain.LeaderboardEntry{TotalCarbon: 100}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}

	ch, cancel := store.SubscribeEntries()
	defer cancel()

	initial := <-ch
	if len(initial) != 1 {
		t.Fatalf("expected initial snapshot with 1 entry, got %d", len(initial))
	}

	if _, err := store.AddEntry(ctx, domain.LeaderboardEntry{TotalCarbon: 50}); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	update := <-ch
	if len(update) != 2 || update[0].TotalCarbon != 50 {
		t.Fatalf("expected updated snapshot led by 50, got %+v", update)
	}
}

func TestSubscribeTotalPrimesAndUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewLeaderboardStore()

	ch, cancel := store.SubscribeTotal()
	defer cancel()

	if initial := <-ch; initial != 0 {
		t.Fatalf("expected initial total 0, got %v", initial)
	}
	if _, err := store.AddEntry(ctx, domain.LeaderboardEntry{TotalCarbon: 75}); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if update := <-ch; update != 75 {
		t.Fatalf("expected total 75, got %v", update)
	}
}
