package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"carboquiz/internal/broadcast"
	"carboquiz/internal/domain"
)

const (
	entriesByCarbonKey = "leaderboard:by_carbon"
	entriesDataKey     = "leaderboard:entries"
	totalFootprintKey  = "leaderboard:total"
	ranksKey           = "leaderboard:ranks"
)

// LeaderboardStore persists the shared leaderboard in Redis: a zset scored by
// total carbon (so ascending range order is display order), a hash of entry
// JSON, an atomically incremented running total and a hash of rank-bucket
// feed entries. Change notifications fan out to in-process subscribers; a
// pub/sub projector would be the extension point for multi-instance
// deployments.
type LeaderboardStore struct {
	client *redis.Client

	entryHub *broadcast.Hub[[]domain.LeaderboardEntry]
	totalHub *broadcast.Hub[float64]
	rankHub  *broadcast.Hub[[]domain.RankEntry]
}

func NewLeaderboardStore(client *redis.Client) *LeaderboardStore {
	return &LeaderboardStore{
		client:   client,
		entryHub: broadcast.NewHub[[]domain.LeaderboardEntry](),
		totalHub: broadcast.NewHub[float64](),
		rankHub:  broadcast.NewHub[[]domain.RankEntry](),
	}
}

// AddEntry writes the entry and bumps the running total in one pipeline, then
// pushes fresh snapshots to subscribers.
func (s *LeaderboardStore) AddEntry(ctx context.Context, entry domain.LeaderboardEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return "", fmt.Errorf("marshal leaderboard entry: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.ZAdd(ctx, entriesByCarbonKey, redis.Z{Score: entry.TotalCarbon, Member: entry.ID})
	pipe.HSet(ctx, entriesDataKey, entry.ID, data)
	pipe.IncrByFloat(ctx, totalFootprintKey, entry.TotalCarbon)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("save leaderboard entry: %w", err)
	}

	if entries, err := s.Entries(ctx); err == nil {
		s.entryHub.Broadcast(entries)
	}
	if total, err := s.TotalFootprint(ctx); err == nil {
		s.totalHub.Broadcast(total)
	}
	return entry.ID, nil
}

// Entries returns all entries ascending by total carbon.
func (s *LeaderboardStore) Entries(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	ids, err := s.client.ZRange(ctx, entriesByCarbonKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("range leaderboard: %w", err)
	}
	if len(ids) == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	raw, err := s.client.HMGet(ctx, entriesDataKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard entries: %w", err)
	}
	entries := make([]domain.LeaderboardEntry, 0, len(raw))
	for _, item := range raw {
		str, ok := item.(string)
		if !ok {
			continue
		}
		var entry domain.LeaderboardEntry
		if err := json.Unmarshal([]byte(str), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *LeaderboardStore) Entry(ctx context.Context, entryID string) (domain.LeaderboardEntry, error) {
	raw, err := s.client.HGet(ctx, entriesDataKey, entryID).Result()
	if err == redis.Nil {
		return domain.LeaderboardEntry{}, domain.ErrEntryNotFound
	}
	if err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("fetch leaderboard entry: %w", err)
	}
	var entry domain.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("unmarshal leaderboard entry: %w", err)
	}
	return entry, nil
}

func (s *LeaderboardStore) TotalFootprint(ctx context.Context) (float64, error) {
	raw, err := s.client.Get(ctx, totalFootprintKey).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("fetch footprint total: %w", err)
	}
	total, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse footprint total: %w", err)
	}
	return total, nil
}

func (s *LeaderboardStore) UpdateRankEntry(ctx context.Context, entry domain.RankEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal rank entry: %w", err)
	}
	if err := s.client.HSet(ctx, ranksKey, strconv.Itoa(entry.Rank), data).Err(); err != nil {
		return fmt.Errorf("save rank entry: %w", err)
	}
	if ranks, err := s.Ranks(ctx); err == nil {
		s.rankHub.Broadcast(ranks)
	}
	return nil
}

func (s *LeaderboardStore) Ranks(ctx context.Context) ([]domain.RankEntry, error) {
	raw, err := s.client.HGetAll(ctx, ranksKey).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch rank feed: %w", err)
	}
	ranks := make([]domain.RankEntry, 0, len(raw))
	for _, value := range raw {
		var entry domain.RankEntry
		if err := json.Unmarshal([]byte(value), &entry); err != nil {
			continue
		}
		ranks = append(ranks, entry)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].Rank < ranks[j].Rank })
	return ranks, nil
}

func (s *LeaderboardStore) SubscribeEntries() (<-chan []domain.LeaderboardEntry, func()) {
	ch, cancel := s.entryHub.Subscribe(8)
	if entries, err := s.Entries(context.Background()); err == nil {
		ch <- entries
	}
	return ch, cancel
}

func (s *LeaderboardStore) SubscribeTotal() (<-chan float64, func()) {
	ch, cancel := s.totalHub.Subscribe(8)
	if total, err := s.TotalFootprint(context.Background()); err == nil {
		ch <- total
	}
	return ch, cancel
}

func (s *LeaderboardStore) SubscribeRanks() (<-chan []domain.RankEntry, func()) {
	ch, cancel := s.rankHub.Subscribe(8)
	if ranks, err := s.Ranks(context.Background()); err == nil {
		ch <- ranks
	}
	return ch, cancel
}
