package game

import (
	"context"
	"log"
	"time"

	"carboquiz/internal/domain"
	"carboquiz/internal/scoring"
)

// SessionStore abstracts how game sessions are held (in-memory, with an
// optional Redis liveness marker).
type SessionStore interface {
	Put(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// CatalogRepository loads the question catalog (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context) ([]domain.Question, error)
}

// LeaderboardStore is the shared, multi-writer leaderboard. AddEntry also
// bumps the global running footprint total atomically. Subscriptions deliver
// full-replace snapshots.
type LeaderboardStore interface {
	AddEntry(ctx context.Context, entry domain.LeaderboardEntry) (string, error)
	Entries(ctx context.Context) ([]domain.LeaderboardEntry, error)
	Entry(ctx context.Context, entryID string) (domain.LeaderboardEntry, error)
	TotalFootprint(ctx context.Context) (float64, error)
	UpdateRankEntry(ctx context.Context, entry domain.RankEntry) error
	Ranks(ctx context.Context) ([]domain.RankEntry, error)
	SubscribeEntries() (<-chan []domain.LeaderboardEntry, func())
	SubscribeTotal() (<-chan float64, func())
	SubscribeRanks() (<-chan []domain.RankEntry, func())
}

// GifPicker selects an impact animation for a rank bucket.
type GifPicker interface {
	Pick(rank int) string
}

// Service owns the quiz use cases and runs transition effects. Effects are
// fire-and-forget: the state transition returns before any write resolves,
// and the leaderboard entry ID is patched into the session afterwards.
type Service struct {
	sessions    SessionStore
	catalog     CatalogRepository
	leaderboard LeaderboardStore
	gifs        GifPicker
	newID       func() string
	now         func() time.Time
}

func NewService(sessions SessionStore, catalog CatalogRepository, leaderboard LeaderboardStore, gifs GifPicker, newID func() string) *Service {
	return &Service{
		sessions:    sessions,
		catalog:     catalog,
		leaderboard: leaderboard,
		gifs:        gifs,
		newID:       newID,
		now:         time.Now,
	}
}

// QuestionView is what the question screen renders.
type QuestionView struct {
	SessionID      string          `json:"sessionId"`
	Screen         Screen          `json:"screen"`
	QuestionIndex  int             `json:"questionIndex"`
	TotalQuestions int             `json:"totalQuestions"`
	Question       domain.Question `json:"question"`
}

// ImpactView is what the impact screen renders: the confirmed (already
// distance-adjusted) selections plus a rank-bucketed animation.
type ImpactView struct {
	SessionID    string          `json:"sessionId"`
	Screen       Screen          `json:"screen"`
	QuestionText string          `json:"questionText"`
	Selected     []domain.Option `json:"selected"`
	Gif          string          `json:"gif"`
}

// ResultsView is the aggregate summary; every figure comes from the scoring
// engine. LeaderboardEntryID may be empty while the async write is in flight.
type ResultsView struct {
	SessionID          string           `json:"sessionId"`
	Screen             Screen           `json:"screen"`
	PlayerName         string           `json:"playerName"`
	Totals             scoring.Totals   `json:"totals"`
	AnnualTonnes       float64          `json:"annualTonnes"`
	TreesToOffset      int              `json:"treesToOffset"`
	PercentageOffset   float64          `json:"percentageOffset"`
	Rating             scoring.Rating   `json:"rating"`
	BestChoice         string           `json:"bestChoice"`
	TopChoices         []scoring.Choice `json:"topChoices"`
	Recommendations    []string         `json:"recommendations"`
	LeaderboardEntryID string           `json:"leaderboardEntryId,omitempty"`
}

// Start creates a session and moves it to the first question.
func (s *Service) Start(ctx context.Context, name, email string) (QuestionView, error) {
	questions, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return QuestionView{}, err
	}

	session := newSessionWithClock(s.newID(), s.now)
	if err := session.start(name, email); err != nil {
		return QuestionView{}, err
	}
	s.sessions.Put(session)
	return s.questionView(session, questions), nil
}

// SubmitOptions confirms 1-2 options for the current question and moves to
// the impact screen. Distance-scaled questions must carry a distance or the
// transition is refused.
func (s *Service) SubmitOptions(ctx context.Context, sessionID string, optionIDs []int, distance *float64) (ImpactView, error) {
	session, questions, err := s.sessionAndCatalog(ctx, sessionID)
	if err != nil {
		return ImpactView{}, err
	}
	idx := session.QuestionIndex()
	if idx >= len(questions) {
		return ImpactView{}, domain.ErrQuestionNotFound
	}
	if err := session.submitOptions(questions[idx], optionIDs, distance); err != nil {
		return ImpactView{}, err
	}

	question, selected := session.pendingSelection()
	gif := ""
	if len(selected) > 0 {
		gif = s.gifs.Pick(selected[0].Rank)
	}
	return ImpactView{
		SessionID:    session.ID(),
		Screen:       ScreenImpact,
		QuestionText: question.Text,
		Selected:     selected,
		Gif:          gif,
	}, nil
}

// Advance leaves the impact screen. It returns the next question view while
// questions remain, otherwise the results view; exactly one of the two is
// non-nil. Effects emitted by the transition run asynchronously.
func (s *Service) Advance(ctx context.Context, sessionID string) (*QuestionView, *ResultsView, error) {
	session, questions, err := s.sessionAndCatalog(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	effects, err := session.advance(len(questions))
	if err != nil {
		return nil, nil, err
	}
	go s.runEffects(context.WithoutCancel(ctx), session, effects)

	if session.Screen() == ScreenQuestion {
		qv := s.questionView(session, questions)
		return &qv, nil, nil
	}
	rv := s.resultsView(session)
	return nil, &rv, nil
}

// Results re-derives the results view for an existing session (used by the
// results screen re-render and the PDF download).
func (s *Service) Results(_ context.Context, sessionID string) (ResultsView, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return ResultsView{}, domain.ErrSessionNotFound
	}
	if screen := session.Screen(); screen != ScreenResults && screen != ScreenLeaderboard {
		return ResultsView{}, domain.ErrInvalidTransition
	}
	return s.resultsView(session), nil
}

// ViewLeaderboard moves results -> leaderboard and returns the current
// standings (ascending by total carbon) with the global running total.
func (s *Service) ViewLeaderboard(ctx context.Context, sessionID string) ([]domain.LeaderboardEntry, float64, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, 0, domain.ErrSessionNotFound
	}
	if err := session.viewLeaderboard(); err != nil {
		return nil, 0, err
	}
	entries, err := s.leaderboard.Entries(ctx)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.leaderboard.TotalFootprint(ctx)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Restart resets the session to the welcome screen.
func (s *Service) Restart(_ context.Context, sessionID string) error {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.restart()
	return nil
}

// Session exposes a session for transports that need raw access (PDF, views).
func (s *Service) Session(sessionID string) (*Session, bool) {
	return s.sessions.Get(sessionID)
}

// runEffects executes transition effects. Failures are logged and never block
// or fail the quiz flow.
func (s *Service) runEffects(ctx context.Context, session *Session, effects []Effect) {
	for _, effect := range effects {
		switch e := effect.(type) {
		case SubmitLeaderboardEntry:
			id, err := s.leaderboard.AddEntry(ctx, e.Entry)
			if err != nil {
				log.Printf("leaderboard write failed for session %s: %v", session.ID(), err)
				continue
			}
			session.SetEntryID(id)
		case PublishRankEntry:
			if err := s.leaderboard.UpdateRankEntry(ctx, e.Entry); err != nil {
				log.Printf("rank feed update failed for session %s: %v", session.ID(), err)
			}
		}
	}
}

func (s *Service) sessionAndCatalog(ctx context.Context, sessionID string) (*Session, []domain.Question, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	questions, err := s.catalog.GetCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	return session, questions, nil
}

func (s *Service) questionView(session *Session, questions []domain.Question) QuestionView {
	idx := session.QuestionIndex()
	return QuestionView{
		SessionID:      session.ID(),
		Screen:         ScreenQuestion,
		QuestionIndex:  idx,
		TotalQuestions: len(questions),
		Question:       questions[idx],
	}
}

func (s *Service) resultsView(session *Session) ResultsView {
	answers := session.Answers()
	totals := scoring.Aggregate(answers)
	tonnes := scoring.AnnualTonnes(totals.TotalCarbon)
	trees := scoring.TreesToOffset(tonnes)
	pct := scoring.PercentageOffset(trees, tonnes)
	top := scoring.TopEmittingChoices(answers, 5)
	return ResultsView{
		SessionID:          session.ID(),
		Screen:             ScreenResults,
		PlayerName:         session.PlayerName(),
		Totals:             totals,
		AnnualTonnes:       tonnes,
		TreesToOffset:      trees,
		PercentageOffset:   pct,
		Rating:             scoring.EffortRating(pct),
		BestChoice:         scoring.BestChoice(answers),
		TopChoices:         top,
		Recommendations:    scoring.Recommendations(top),
		LeaderboardEntryID: session.EntryID(),
	}
}
