package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"carboquiz/internal/broadcast"
	"carboquiz/internal/domain"
)

// LeaderboardStore is the in-memory implementation of game.LeaderboardStore,
// used for tests and single-process development runs.
type LeaderboardStore struct {
	mu      sync.RWMutex
	entries map[string]domain.LeaderboardEntry
	ranks   map[int]domain.RankEntry
	total   float64

	entryHub *broadcast.Hub[[]domain.LeaderboardEntry]
	totalHub *broadcast.Hub[float64]
	rankHub  *broadcast.Hub[[]domain.RankEntry]
}

func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{
		entries:  make(map[string]domain.LeaderboardEntry),
		ranks:    make(map[int]domain.RankEntry),
		entryHub: broadcast.NewHub[[]domain.LeaderboardEntry](),
		totalHub: broadcast.NewHub[float64](),
		rankHub:  broadcast.NewHub[[]domain.RankEntry](),
	}
}

// AddEntry stores the entry, bumps the global running total and notifies
// subscribers. Entries without an ID are assigned one; the ID is returned.
func (s *LeaderboardStore) AddEntry(_ context.Context, entry domain.LeaderboardEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.total += entry.TotalCarbon
	entries := s.sortedEntriesLocked()
	total := s.total
	s.mu.Unlock()

	s.entryHub.Broadcast(entries)
	s.totalHub.Broadcast(total)
	return entry.ID, nil
}

// Entries returns all entries ascending by total carbon (lower is better).
func (s *LeaderboardStore) Entries(_ context.Context) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedEntriesLocked(), nil
}

func (s *LeaderboardStore) Entry(_ context.Context, entryID string) (domain.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[entryID]
	if !ok {
		return domain.LeaderboardEntry{}, domain.ErrEntryNotFound
	}
	return entry, nil
}

func (s *LeaderboardStore) TotalFootprint(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total, nil
}

// UpdateRankEntry replaces the rank bucket's latest choice and notifies
// dashboard subscribers.
func (s *LeaderboardStore) UpdateRankEntry(_ context.Context, entry domain.RankEntry) error {
	s.mu.Lock()
	s.ranks[entry.Rank] = entry
	ranks := s.sortedRanksLocked()
	s.mu.Unlock()

	s.rankHub.Broadcast(ranks)
	return nil
}

func (s *LeaderboardStore) Ranks(_ context.Context) ([]domain.RankEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedRanksLocked(), nil
}

func (s *LeaderboardStore) SubscribeEntries() (<-chan []domain.LeaderboardEntry, func()) {
	ch, cancel := s.entryHub.Subscribe(8)
	s.mu.RLock()
	initial := s.sortedEntriesLocked()
	s.mu.RUnlock()
	ch <- initial
	return ch, cancel
}

func (s *LeaderboardStore) SubscribeTotal() (<-chan float64, func()) {
	ch, cancel := s.totalHub.Subscribe(8)
	s.mu.RLock()
	total := s.total
	s.mu.RUnlock()
	ch <- total
	return ch, cancel
}

func (s *LeaderboardStore) SubscribeRanks() (<-chan []domain.RankEntry, func()) {
	ch, cancel := s.rankHub.Subscribe(8)
	s.mu.RLock()
	initial := s.sortedRanksLocked()
	s.mu.RUnlock()
	ch <- initial
	return ch, cancel
}

func (s *LeaderboardStore) sortedEntriesLocked() []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalCarbon != entries[j].TotalCarbon {
			return entries[i].TotalCarbon < entries[j].TotalCarbon
		}
		if entries[i].Timestamp != entries[j].Timestamp {
			return entries[i].Timestamp < entries[j].Timestamp
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

func (s *LeaderboardStore) sortedRanksLocked() []domain.RankEntry {
	ranks := make([]domain.RankEntry, 0, len(s.ranks))
	for _, entry := range s.ranks {
		ranks = append(ranks, entry)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].Rank < ranks[j].Rank })
	return ranks
}
