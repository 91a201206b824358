package errors

import "errors"

var (
	ErrInvalidPollInput       = errors.New("invalid poll input")
	ErrInvalidTitle           = errors.New("poll title must not be empty")
	ErrInsufficientCandidates = errors.New("poll requires at least two candidates")
	ErrInvalidCandidateName   = errors.New("candidate name must not be empty")
	ErrInvalidDuration        = errors.New("poll duration must be positive")
	ErrPollNotFound           = errors.New("poll not found")
	ErrPollInactive           = errors.New("poll is not active")
	ErrPollNotStarted         = errors.New("poll has not started yet")
	ErrPollEnded              = errors.New("poll has already ended")
	ErrDuplicateVote          = errors.New("voter has already cast a ballot in this poll")
	ErrInvalidCandidate       = errors.New("candidate index is out of range")
	ErrUnauthorizedVoter      = errors.New("caller is not a registered voter")
	ErrConflict               = errors.New("ballot state conflict")
)
