package domain

import "time"

// Option is one scored answer choice within a question. Rank is an
// author-assigned presentation bucket (1=best, 6=worst) used for gradient and
// GIF selection only; it is never recomputed from CarbonFootprint.
type Option struct {
	ID              int     `json:"id"`
	Text            string  `json:"text"`
	CarbonFootprint float64 `json:"carbonFootprint"` // kg CO2e per year
	TreeEquivalent  float64 `json:"treeEquivalent"`
	Rank            int     `json:"rank"`
	Performance     string  `json:"performance"`
	Improvement     string  `json:"improvement"`
	Explanation     string  `json:"explanation"`
}

// Question is a catalog entry with 6-8 scored options. Catalog order is
// presentation order and is stable for the lifetime of a session.
// RequiresDistance marks questions whose option values scale with a travel
// distance before the answer is stored.
type Question struct {
	ID               int      `json:"id"`
	Text             string   `json:"text"`
	RequiresDistance bool     `json:"requiresDistance"`
	Options          []Option `json:"options"`
}

// Answer is an immutable record of a confirmed choice. Options holds the
// selected option snapshots (already distance-adjusted, not the catalog
// originals). After a session advances past the impact screen each stored
// Answer carries exactly one option; the report API boundary may still
// receive two per record from older clients.
type Answer struct {
	QuestionID   int      `json:"questionId"`
	QuestionText string   `json:"questionText"`
	Options      []Option `json:"selectedOptions"`
	Distance     float64  `json:"distance,omitempty"`
}

// LeaderboardEntry is written once per completed session and never mutated.
// Display order is ascending by TotalCarbon (lower is better).
type LeaderboardEntry struct {
	ID          string  `json:"id"`
	PlayerName  string  `json:"playerName"`
	TotalCarbon float64 `json:"totalCarbon"`
	BestChoice  string  `json:"bestChoice"`
	Date        string  `json:"date"`
	Timestamp   int64   `json:"timestamp"`
}

// RankEntry is the most recent confirmed choice for one rank bucket, shown on
// the live dashboard.
type RankEntry struct {
	Rank       int    `json:"rank"`
	PlayerName string `json:"playerName"`
	OptionText string `json:"optionText"`
	Timestamp  int64  `json:"timestamp"`
}

// NewLeaderboardEntry stamps an entry with its display date and submit-time
// timestamp.
func NewLeaderboardEntry(id, playerName string, totalCarbon float64, bestChoice string, now time.Time) LeaderboardEntry {
	return LeaderboardEntry{
		ID:          id,
		PlayerName:  playerName,
		TotalCarbon: totalCarbon,
		BestChoice:  bestChoice,
		Date:        now.Format("2006-01-02"),
		Timestamp:   now.UnixMilli(),
	}
}
