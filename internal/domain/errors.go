package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a game session does not exist.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrCatalogNotFound indicates the question catalog could not be loaded.
	ErrCatalogNotFound = errors.New("question catalog not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option ID is invalid.
	ErrOptionNotFound = errors.New("option not found")
	// ErrInvalidTransition is returned when an operation is called from the
	// wrong screen.
	ErrInvalidTransition = errors.New("invalid screen transition")
	// ErrOptionCount is returned when fewer than 1 or more than 2 options
	// are submitted for a question.
	ErrOptionCount = errors.New("select between 1 and 2 options")
	// ErrDistanceRequired is returned when a distance-scaled question is
	// submitted without a distance; the transition does not occur.
	ErrDistanceRequired = errors.New("distance required for this question")
	// ErrEntryNotFound indicates a leaderboard entry ID is unknown.
	ErrEntryNotFound = errors.New("leaderboard entry not found")
)
