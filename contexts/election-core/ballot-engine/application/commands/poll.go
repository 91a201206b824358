package commands

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	application "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/application"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/errors"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/ports"
)

// CreatePollCommand is the write-model input for poll creation. Poll creation
// is open to any caller; only vote casting is gated on voter registration.
type CreatePollCommand struct {
	Creator         string
	Title           string
	CandidateNames  []string
	DurationMinutes int64
}

// CreatePollResult returns the stored poll, including its assigned id.
type CreatePollResult struct {
	Poll entities.Poll
}

// BallotUseCase orchestrates the mutating ballot operations. All writes
// serialize through Gate so each call observes and commits a consistent
// snapshot; validation is front-loaded and a failed call leaves no state
// behind and emits no event.
type BallotUseCase struct {
	Polls    ports.PollRepository
	Registry ports.Registry
	Audit    ports.AuditLog
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Gate     *sync.Mutex
	Logger   *slog.Logger
}

// CreatePoll validates the request, allocates the next sequential poll id and
// stores the poll with its activation window anchored at the current time.
func (uc BallotUseCase) CreatePoll(ctx context.Context, cmd CreatePollCommand) (CreatePollResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	creator := strings.TrimSpace(cmd.Creator)
	title := strings.TrimSpace(cmd.Title)
	logger.Info("poll create processing started",
		"event", "ballot_poll_create_started",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"creator", creator,
		"title", title,
		"candidate_count", len(cmd.CandidateNames),
	)

	if creator == "" {
		return CreatePollResult{}, domainerrors.ErrInvalidPollInput
	}
	if title == "" {
		logger.Warn("poll create validation failed",
			"event", "ballot_poll_create_validation_failed",
			"module", "election-core/ballot-engine",
			"layer", "application",
			"creator", creator,
			"reason", "empty_title",
		)
		return CreatePollResult{}, domainerrors.ErrInvalidTitle
	}
	if len(cmd.CandidateNames) < 2 {
		logger.Warn("poll create validation failed",
			"event", "ballot_poll_create_validation_failed",
			"module", "election-core/ballot-engine",
			"layer", "application",
			"creator", creator,
			"reason", "insufficient_candidates",
			"candidate_count", len(cmd.CandidateNames),
		)
		return CreatePollResult{}, domainerrors.ErrInsufficientCandidates
	}
	candidates := make([]entities.Candidate, 0, len(cmd.CandidateNames))
	for _, name := range cmd.CandidateNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return CreatePollResult{}, domainerrors.ErrInvalidCandidateName
		}
		candidates = append(candidates, entities.Candidate{Name: name})
	}
	if cmd.DurationMinutes <= 0 {
		logger.Warn("poll create validation failed",
			"event", "ballot_poll_create_validation_failed",
			"module", "election-core/ballot-engine",
			"layer", "application",
			"creator", creator,
			"reason", "invalid_duration",
			"duration_minutes", cmd.DurationMinutes,
		)
		return CreatePollResult{}, domainerrors.ErrInvalidDuration
	}

	uc.Gate.Lock()
	defer uc.Gate.Unlock()

	pollID, err := uc.Polls.CountPolls(ctx)
	if err != nil {
		return CreatePollResult{}, err
	}
	now := uc.now()
	poll := entities.Poll{
		PollID:     pollID,
		Title:      title,
		Creator:    creator,
		StartTime:  now,
		EndTime:    now.Add(time.Duration(cmd.DurationMinutes) * time.Minute),
		Active:     true,
		Candidates: candidates,
		Ballots:    make(map[string]bool),
		TotalVotes: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.Polls.SavePoll(ctx, poll); err != nil {
		return CreatePollResult{}, err
	}
	if err := uc.appendBallotEvent(ctx, "poll.created", poll.PollID, now, map[string]any{
		"poll_id":         poll.PollID,
		"title":           poll.Title,
		"creator":         poll.Creator,
		"start_time":      poll.StartTime.Format(time.RFC3339),
		"end_time":        poll.EndTime.Format(time.RFC3339),
		"candidate_count": len(poll.Candidates),
	}); err != nil {
		return CreatePollResult{}, err
	}

	logger.Info("poll created",
		"event", "ballot_poll_created",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"poll_id", poll.PollID,
		"title", poll.Title,
		"creator", poll.Creator,
		"end_time", poll.EndTime,
	)
	return CreatePollResult{Poll: poll}, nil
}

func (uc BallotUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc BallotUseCase) appendBallotEvent(
	ctx context.Context,
	eventType string,
	pollID uint64,
	occurredAt time.Time,
	data map[string]any,
) error {
	// Audit sink is optional for pure read/test wiring, so nil is a no-op.
	if uc.Audit == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newBallotEnvelope(eventID, eventType, strconv.FormatUint(pollID, 10), occurredAt, data)
	if err != nil {
		return err
	}
	return uc.Audit.Append(ctx, envelope)
}
