package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"carboquiz/internal/domain"
	"carboquiz/internal/game"
	"carboquiz/internal/report"
)

// APIHandler exposes the quiz flow, leaderboard reads and report dispatch
// over JSON.
type APIHandler struct {
	game        *game.Service
	leaderboard game.LeaderboardStore
	reports     *report.Dispatcher
	limiter     *report.RateLimiter
}

func NewAPIHandler(gameSvc *game.Service, leaderboard game.LeaderboardStore, reports *report.Dispatcher, limiter *report.RateLimiter) *APIHandler {
	return &APIHandler{
		game:        gameSvc,
		leaderboard: leaderboard,
		reports:     reports,
		limiter:     limiter,
	}
}

// Register mounts all routes on the mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.startSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.getSession)
	mux.HandleFunc("POST /api/sessions/{id}/answers", h.submitAnswers)
	mux.HandleFunc("POST /api/sessions/{id}/advance", h.advance)
	mux.HandleFunc("POST /api/sessions/{id}/leaderboard", h.viewLeaderboard)
	mux.HandleFunc("POST /api/sessions/{id}/restart", h.restart)
	mux.HandleFunc("GET /api/sessions/{id}/report.pdf", h.downloadReport)
	mux.HandleFunc("GET /api/leaderboard", h.listLeaderboard)
	mux.HandleFunc("GET /api/leaderboard/{id}", h.getLeaderboardEntry)
	mux.HandleFunc("GET /api/ranks", h.listRanks)
	mux.HandleFunc("POST /api/send-report", h.sendReport)
}

func (h *APIHandler) startSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	view, err := h.game.Start(r.Context(), strings.TrimSpace(body.Name), strings.TrimSpace(body.Email))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *APIHandler) getSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.game.Session(r.PathValue("id"))
	if !ok {
		writeDomainError(w, domain.ErrSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sessionId":          session.ID(),
		"screen":             session.Screen(),
		"questionIndex":      session.QuestionIndex(),
		"playerName":         session.PlayerName(),
		"leaderboardEntryId": session.EntryID(),
	})
}

func (h *APIHandler) submitAnswers(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OptionIDs []int    `json:"optionIds"`
		Distance  *float64 `json:"distance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	view, err := h.game.SubmitOptions(r.Context(), r.PathValue("id"), body.OptionIDs, body.Distance)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *APIHandler) advance(w http.ResponseWriter, r *http.Request) {
	question, results, err := h.game.Advance(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if question != nil {
		writeJSON(w, http.StatusOK, question)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *APIHandler) viewLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, total, err := h.game.ViewLeaderboard(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "totalFootprint": total})
}

func (h *APIHandler) restart(w http.ResponseWriter, r *http.Request) {
	if err := h.game.Restart(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"screen": game.ScreenWelcome})
}

func (h *APIHandler) downloadReport(w http.ResponseWriter, r *http.Request) {
	session, ok := h.game.Session(r.PathValue("id"))
	if !ok {
		writeDomainError(w, domain.ErrSessionNotFound)
		return
	}
	rep := report.BuildReport(session.PlayerName(), session.PlayerEmail(), session.Answers(), time.Now())
	pdf, err := report.BuildPDF(rep)
	if err != nil {
		log.Printf("pdf render failed for session %s: %v", session.ID(), err)
		writeError(w, http.StatusInternalServerError, "could not render report")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="carboquiz-report.pdf"`)
	_, _ = w.Write(pdf)
}

func (h *APIHandler) listLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.Entries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := h.leaderboard.TotalFootprint(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries, "totalFootprint": total})
}

func (h *APIHandler) getLeaderboardEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.leaderboard.Entry(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *APIHandler) listRanks(w http.ResponseWriter, r *http.Request) {
	ranks, err := h.leaderboard.Ranks(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ranks": ranks})
}

// reportAnswerPayload accepts both the current plural shape and the legacy
// singular one; it is normalized into domain.Answer immediately so nothing
// downstream branches on shape.
type reportAnswerPayload struct {
	QuestionID      int              `json:"questionId"`
	QuestionText    string           `json:"questionText"`
	SelectedOptions []domain.Option  `json:"selectedOptions"`
	SelectedOption  *domain.Option   `json:"selectedOption"`
	Distance        float64          `json:"distance"`
}

func (p reportAnswerPayload) normalize() domain.Answer {
	options := p.SelectedOptions
	if len(options) == 0 && p.SelectedOption != nil {
		options = []domain.Option{*p.SelectedOption}
	}
	return domain.Answer{
		QuestionID:   p.QuestionID,
		QuestionText: p.QuestionText,
		Options:      options,
		Distance:     p.Distance,
	}
}

func (h *APIHandler) sendReport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email       string                `json:"email"`
		Name        string                `json:"name"`
		TotalCarbon *float64              `json:"totalCarbon"`
		TotalTrees  *float64              `json:"totalTrees"`
		Answers     []reportAnswerPayload `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	email := strings.TrimSpace(body.Email)
	switch {
	case email == "" || !strings.Contains(email, "@"):
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	case strings.TrimSpace(body.Name) == "":
		writeError(w, http.StatusBadRequest, "name is required")
		return
	case body.TotalCarbon == nil || *body.TotalCarbon < 0:
		writeError(w, http.StatusBadRequest, "totalCarbon is required")
		return
	case body.TotalTrees == nil || *body.TotalTrees < 0:
		writeError(w, http.StatusBadRequest, "totalTrees is required")
		return
	}

	if ok, remaining := h.limiter.Allow(email); !ok {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":         "please wait before requesting another report",
			"remainingTime": int(remaining.Round(time.Second).Seconds()),
		})
		return
	}

	answers := make([]domain.Answer, 0, len(body.Answers))
	for _, payload := range body.Answers {
		answers = append(answers, payload.normalize())
	}

	result, err := h.reports.Dispatch(r.Context(), report.Request{
		Email:       email,
		Name:        strings.TrimSpace(body.Name),
		TotalCarbon: *body.TotalCarbon,
		TotalTrees:  *body.TotalTrees,
		Answers:     answers,
	})
	if err != nil {
		log.Printf("report dispatch failed for %s: %v", email, err)
		writeError(w, http.StatusInternalServerError, "failed to send report")
		return
	}
	if result.AlreadySent {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Report already sent for these results",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Report sent",
		"messageId": result.MessageID,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrOptionCount),
		errors.Is(err, domain.ErrDistanceRequired),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", err))
	}
}
