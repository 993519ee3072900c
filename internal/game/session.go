package game

import (
	"sync"
	"time"

	"carboquiz/internal/domain"
	"carboquiz/internal/scoring"
)

// Screen identifies where in the quiz flow a session currently is.
type Screen string

const (
	ScreenWelcome     Screen = "welcome"
	ScreenQuestion    Screen = "question"
	ScreenImpact      Screen = "impact"
	ScreenResults     Screen = "results"
	ScreenLeaderboard Screen = "leaderboard"
)

// Effect is a side effect requested by a state transition. Transitions never
// perform I/O themselves; the service runs effects after the transition has
// been applied, so the UI can move on before any write resolves.
type Effect interface {
	isEffect()
}

// SubmitLeaderboardEntry asks the runner to write the completed session's
// leaderboard entry. Emitted exactly once per session, by the final advance.
type SubmitLeaderboardEntry struct {
	Entry domain.LeaderboardEntry
}

func (SubmitLeaderboardEntry) isEffect() {}

// PublishRankEntry pushes a confirmed choice into its rank bucket on the live
// dashboard feed.
type PublishRankEntry struct {
	Entry domain.RankEntry
}

func (PublishRankEntry) isEffect() {}

// Session is the per-player game state: one per browser tab, in memory only,
// mutated solely through the five transitions below.
type Session struct {
	id string

	mu            sync.RWMutex
	screen        Screen
	questionIndex int
	answers       []domain.Answer
	pending       []domain.Option
	pendingQ      domain.Question
	playerName    string
	playerEmail   string
	entryID       string
	submitted     bool
	now           func() time.Time
}

func newSession(id string) *Session {
	return newSessionWithClock(id, time.Now)
}

// newSessionWithClock allows deterministic timestamps in tests.
func newSessionWithClock(id string, now func() time.Time) *Session {
	return &Session{id: id, screen: ScreenWelcome, now: now}
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string) *Session {
	return newSession(id)
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id string, now func() time.Time) *Session {
	return newSessionWithClock(id, now)
}

func (s *Session) ID() string { return s.id }

func (s *Session) Screen() Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen
}

func (s *Session) QuestionIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.questionIndex
}

func (s *Session) PlayerName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerName
}

func (s *Session) PlayerEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerEmail
}

// Answers returns a copy of the accumulated answer records.
func (s *Session) Answers() []domain.Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// EntryID returns the leaderboard entry ID once the asynchronous write has
// resolved; empty before that.
func (s *Session) EntryID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entryID
}

// SetEntryID patches the resolved leaderboard entry ID back into the session.
func (s *Session) SetEntryID(id string) {
	s.mu.Lock()
	s.entryID = id
	s.mu.Unlock()
}

// start begins the quiz: welcome -> question, index 0, answers cleared.
func (s *Session) start(name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenWelcome {
		return domain.ErrInvalidTransition
	}
	s.playerName = name
	s.playerEmail = email
	s.questionIndex = 0
	s.answers = nil
	s.pending = nil
	s.entryID = ""
	s.submitted = false
	s.screen = ScreenQuestion
	return nil
}

// submitOptions validates the selection for the given question and moves
// question -> impact. Distance-scaled questions reject submissions without a
// distance; the transition does not occur and the caller must resubmit with
// one. Stored option snapshots are already distance-adjusted.
func (s *Session) submitOptions(question domain.Question, optionIDs []int, distance *float64) error {
	if len(optionIDs) < 1 || len(optionIDs) > 2 {
		return domain.ErrOptionCount
	}
	if question.RequiresDistance && distance == nil {
		return domain.ErrDistanceRequired
	}

	selected := make([]domain.Option, 0, len(optionIDs))
	for _, id := range optionIDs {
		opt, ok := findOption(question, id)
		if !ok {
			return domain.ErrOptionNotFound
		}
		if question.RequiresDistance {
			opt = scoring.AdjustForDistance(opt, *distance)
		}
		selected = append(selected, opt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenQuestion {
		return domain.ErrInvalidTransition
	}
	s.pending = selected
	s.pendingQ = question
	s.screen = ScreenImpact
	return nil
}

// advance appends the pending selection as one Answer record per selected
// option and either loops back to the next question or completes the session.
// Completion computes the aggregate, picks the best choice and emits the
// leaderboard submission effect; rank-feed effects are emitted for every
// confirmed option.
func (s *Session) advance(totalQuestions int) ([]Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenImpact {
		return nil, domain.ErrInvalidTransition
	}

	now := s.now()
	effects := make([]Effect, 0, len(s.pending)+1)
	for _, opt := range s.pending {
		s.answers = append(s.answers, domain.Answer{
			QuestionID:   s.pendingQ.ID,
			QuestionText: s.pendingQ.Text,
			Options:      []domain.Option{opt},
		})
		effects = append(effects, PublishRankEntry{Entry: domain.RankEntry{
			Rank:       opt.Rank,
			PlayerName: s.playerName,
			OptionText: opt.Text,
			Timestamp:  now.UnixMilli(),
		}})
	}
	s.pending = nil

	if s.questionIndex+1 < totalQuestions {
		s.questionIndex++
		s.screen = ScreenQuestion
		return effects, nil
	}

	s.screen = ScreenResults
	if !s.submitted {
		s.submitted = true
		totals := scoring.Aggregate(s.answers)
		effects = append(effects, SubmitLeaderboardEntry{
			Entry: domain.NewLeaderboardEntry("", s.playerName, totals.TotalCarbon, scoring.BestChoice(s.answers), now),
		})
	}
	return effects, nil
}

// viewLeaderboard moves results -> leaderboard. The reverse navigation is an
// app-level concern, not a machine transition.
func (s *Session) viewLeaderboard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.screen != ScreenResults {
		return domain.ErrInvalidTransition
	}
	s.screen = ScreenLeaderboard
	return nil
}

// restart fully reinitializes the session from any screen.
func (s *Session) restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = ScreenWelcome
	s.questionIndex = 0
	s.answers = nil
	s.pending = nil
	s.playerName = ""
	s.playerEmail = ""
	s.entryID = ""
	s.submitted = false
}

func (s *Session) pendingSelection() (domain.Question, []domain.Option) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	opts := make([]domain.Option, len(s.pending))
	copy(opts, s.pending)
	return s.pendingQ, opts
}

func findOption(q domain.Question, optionID int) (domain.Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt, true
		}
	}
	return domain.Option{}, false
}
