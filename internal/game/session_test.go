package game

import (
	"testing"
	"time"

	"carboquiz/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testQuestion() domain.Question {
	return domain.Question{
		ID:   1,
		Text: "Pick one",
		Options: []domain.Option{
			{ID: 1, Text: "green", CarbonFootprint: 10, Rank: 1},
			{ID: 2, Text: "amber", CarbonFootprint: 100, Rank: 3},
			{ID: 3, Text: "red", CarbonFootprint: 500, Rank: 6},
		},
	}
}

func testDistanceQuestion() domain.Question {
	q := testQuestion()
	q.RequiresDistance = true
	return q
}

func startedSession(t *testing.T) *Session {
	t.Helper()
	s := newSessionWithClock("s1", func() time.Time { return testNow })
	if err := s.start("Alice", "alice@example.com"); err != nil {
		t.Fatalf("start: %v", err)
	}
	return s
}

func TestStartOnlyFromWelcome(t *testing.T) {
	s := startedSession(t)
	if s.Screen() != ScreenQuestion {
		t.Fatalf("expected question screen, got %s", s.Screen())
	}
	if err := s.start("Bob", ""); err != domain.ErrInvalidTransition {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestSubmitOptionsValidatesCount(t *testing.T) {
	s := startedSession(t)
	if err := s.submitOptions(testQuestion(), nil, nil); err != domain.ErrOptionCount {
		t.Fatalf("expected option count error for empty selection, got %v", err)
	}
	if err := s.submitOptions(testQuestion(), []int{1, 2, 3}, nil); err != domain.ErrOptionCount {
		t.Fatalf("expected option count error for three options, got %v", err)
	}
	if err := s.submitOptions(testQuestion(), []int{9}, nil); err != domain.ErrOptionNotFound {
		t.Fatalf("expected option not found, got %v", err)
	}
	if s.Screen() != ScreenQuestion {
		t.Fatalf("failed submit must not transition, on %s", s.Screen())
	}
}

func TestSubmitOptionsRequiresDistanceWhenFlagged(t *testing.T) {
	s := startedSession(t)
	if err := s.submitOptions(testDistanceQuestion(), []int{3}, nil); err != domain.ErrDistanceRequired {
		t.Fatalf("expected distance required, got %v", err)
	}
	if s.Screen() != ScreenQuestion {
		t.Fatalf("refused submit must stay on question screen, got %s", s.Screen())
	}

	d := 5.0
	if err := s.submitOptions(testDistanceQuestion(), []int{3}, &d); err != nil {
		t.Fatalf("submit with distance: %v", err)
	}
	_, selected := s.pendingSelection()
	if len(selected) != 1 || selected[0].CarbonFootprint != 250 {
		t.Fatalf("expected distance-adjusted snapshot of 250, got %+v", selected)
	}
}

func TestAdvanceRecordsOneAnswerPerOption(t *testing.T) {
	s := startedSession(t)
	if err := s.submitOptions(testQuestion(), []int{1, 3}, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	effects, err := s.advance(3)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	answers := s.Answers()
	if len(answers) != 2 {
		t.Fatalf("expected one answer record per option, got %d", len(answers))
	}
	for _, a := range answers {
		if len(a.Options) != 1 {
			t.Fatalf("each answer must carry exactly one option, got %d", len(a.Options))
		}
	}
	if s.Screen() != ScreenQuestion || s.QuestionIndex() != 1 {
		t.Fatalf("expected next question, got %s index %d", s.Screen(), s.QuestionIndex())
	}

	var rankEffects int
	for _, e := range effects {
		if _, ok := e.(PublishRankEntry); ok {
			rankEffects++
		}
	}
	if rankEffects != 2 {
		t.Fatalf("expected a rank feed effect per option, got %d", rankEffects)
	}
}

func TestFinalAdvanceEmitsLeaderboardEntryOnce(t *testing.T) {
	s := startedSession(t)
	if err := s.submitOptions(testQuestion(), []int{2}, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	effects, err := s.advance(1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.Screen() != ScreenResults {
		t.Fatalf("expected results screen, got %s", s.Screen())
	}

	var submit *SubmitLeaderboardEntry
	for _, e := range effects {
		if sub, ok := e.(SubmitLeaderboardEntry); ok {
			if submit != nil {
				t.Fatal("leaderboard entry emitted more than once")
			}
			sub := sub
			submit = &sub
		}
	}
	if submit == nil {
		t.Fatal("expected a leaderboard submission effect")
	}
	entry := submit.Entry
	if entry.ID != "" {
		t.Fatalf("entry ID is assigned by the store, got %q", entry.ID)
	}
	if entry.PlayerName != "Alice" || entry.TotalCarbon != 100 || entry.BestChoice != "amber" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.Timestamp != testNow.UnixMilli() {
		t.Fatalf("expected submit-time timestamp, got %d", entry.Timestamp)
	}
}

func TestAdvanceOnlyFromImpact(t *testing.T) {
	s := startedSession(t)
	if _, err := s.advance(1); err != domain.ErrInvalidTransition {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestViewLeaderboardOnlyFromResults(t *testing.T) {
	s := startedSession(t)
	if err := s.viewLeaderboard(); err != domain.ErrInvalidTransition {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if err := s.submitOptions(testQuestion(), []int{1}, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.advance(1); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if err := s.viewLeaderboard(); err != nil {
		t.Fatalf("view leaderboard: %v", err)
	}
	if s.Screen() != ScreenLeaderboard {
		t.Fatalf("expected leaderboard screen, got %s", s.Screen())
	}
}

func TestRestartClearsEverything(t *testing.T) {
	s := startedSession(t)
	if err := s.submitOptions(testQuestion(), []int{1}, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := s.advance(1); err != nil {
		t.Fatalf("advance: %v", err)
	}
	s.SetEntryID("entry-1")

	s.restart()
	if s.Screen() != ScreenWelcome || s.QuestionIndex() != 0 {
		t.Fatalf("expected fresh welcome state, got %s index %d", s.Screen(), s.QuestionIndex())
	}
	if len(s.Answers()) != 0 || s.PlayerName() != "" || s.EntryID() != "" {
		t.Fatal("restart must clear answers, player and entry ID")
	}

	// A fresh run emits a fresh leaderboard submission.
	if err := s.start("Alice", ""); err != nil {
		t.Fatalf("restart then start: %v", err)
	}
	if err := s.submitOptions(testQuestion(), []int{1}, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}
	effects, err := s.advance(1)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	found := false
	for _, e := range effects {
		if _, ok := e.(SubmitLeaderboardEntry); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a new leaderboard submission after restart")
	}
}
