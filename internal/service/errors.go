package service

import "errors"

// Mission lifecycle errors.
var (
	ErrMissionAlreadyExists = errors.New("mission already exists for today")
	ErrNoQuestionsAvailable = errors.New("not enough questions available to generate a mission")
	ErrMissionGeneration    = errors.New("mission generation failed")
	ErrNoActiveMission      = errors.New("no active mission found for today")
	ErrQuestionNotFound     = errors.New("question not found in mission")
	ErrAnswerNotFound       = errors.New("answer not found")
	ErrMissionLocked        = errors.New("mission is no longer accepting changes")
	ErrInvalidProgress      = errors.New("invalid progress update")
)

// Review errors.
var (
	ErrInvalidGroupBy    = errors.New("group_by must be 'date' or 'topic'")
	ErrMissionNotFound   = errors.New("mission not found")
	ErrNotAMistake       = errors.New("answer is not a recorded mistake")
	ErrExplainerDisabled = errors.New("explanations are not configured")
)

// Catalog errors.
var (
	ErrQuestionNotInCatalog = errors.New("question not found")
	ErrInvalidQuestion      = errors.New("invalid question")
)

// Practice errors.
var (
	ErrInvalidQuestionCount    = errors.New("question count must be between 1 and 20")
	ErrInsufficientQuestions   = errors.New("not enough questions for topic")
	ErrSessionNotFound         = errors.New("practice session not found")
	ErrSessionAlreadyCompleted = errors.New("cannot submit answer to completed session")
	ErrQuestionNotInSession    = errors.New("question not found in session")
)
