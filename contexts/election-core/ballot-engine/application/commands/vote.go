package commands

import (
	"context"
	"strings"
	"time"

	application "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/application"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/errors"
)

// CastVoteCommand is the write-model input for casting a single ballot.
type CastVoteCommand struct {
	VoterID        string
	PollID         uint64
	CandidateIndex int
}

// CastVoteResult returns the poll state after the ballot was applied.
type CastVoteResult struct {
	Poll entities.Poll
}

// CastVote applies one ballot against a poll. Preconditions are checked in
// order, each with a distinct failure: voter registered, poll present, stored
// active flag set, activation window reached, window not yet passed, no prior
// ballot by this voter, candidate index in range. Both window boundaries are
// votable. On success the ballot flag, candidate tally and poll total commit
// as one indivisible update followed by exactly one vote.cast event.
func (uc BallotUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.VoterID)
	logger.Info("vote cast processing started",
		"event", "ballot_vote_cast_started",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"voter_id", voterID,
		"poll_id", cmd.PollID,
		"candidate_index", cmd.CandidateIndex,
	)
	if voterID == "" {
		return CastVoteResult{}, domainerrors.ErrUnauthorizedVoter
	}

	uc.Gate.Lock()
	defer uc.Gate.Unlock()

	registered, err := uc.Registry.IsRegistered(ctx, voterID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !registered {
		logger.Warn("vote rejected for unregistered voter",
			"event", "ballot_vote_unauthorized",
			"module", "election-core/ballot-engine",
			"layer", "application",
			"voter_id", voterID,
			"poll_id", cmd.PollID,
		)
		return CastVoteResult{}, domainerrors.ErrUnauthorizedVoter
	}

	poll, err := uc.Polls.GetPoll(ctx, cmd.PollID)
	if err != nil {
		return CastVoteResult{}, err
	}

	now := uc.now()
	if !poll.Active {
		return CastVoteResult{}, domainerrors.ErrPollInactive
	}
	if now.Before(poll.StartTime) {
		return CastVoteResult{}, domainerrors.ErrPollNotStarted
	}
	if now.After(poll.EndTime) {
		return CastVoteResult{}, domainerrors.ErrPollEnded
	}
	if poll.HasVoted(voterID) {
		logger.Warn("duplicate ballot rejected",
			"event", "ballot_vote_duplicate",
			"module", "election-core/ballot-engine",
			"layer", "application",
			"voter_id", voterID,
			"poll_id", cmd.PollID,
		)
		return CastVoteResult{}, domainerrors.ErrDuplicateVote
	}
	if cmd.CandidateIndex < 0 || cmd.CandidateIndex >= len(poll.Candidates) {
		return CastVoteResult{}, domainerrors.ErrInvalidCandidate
	}

	poll.Ballots[voterID] = true
	poll.Candidates[cmd.CandidateIndex].VoteCount++
	poll.TotalVotes++
	poll.UpdatedAt = now
	if err := uc.Polls.SavePoll(ctx, poll); err != nil {
		return CastVoteResult{}, err
	}
	if err := uc.appendBallotEvent(ctx, "vote.cast", poll.PollID, now, map[string]any{
		"poll_id":         poll.PollID,
		"voter_id":        voterID,
		"candidate_index": cmd.CandidateIndex,
		"candidate_name":  poll.Candidates[cmd.CandidateIndex].Name,
		"total_votes":     poll.TotalVotes,
		"occurred_at":     now.Format(time.RFC3339),
	}); err != nil {
		return CastVoteResult{}, err
	}

	logger.Info("vote cast",
		"event", "ballot_vote_cast",
		"module", "election-core/ballot-engine",
		"layer", "application",
		"voter_id", voterID,
		"poll_id", poll.PollID,
		"candidate_index", cmd.CandidateIndex,
		"total_votes", poll.TotalVotes,
	)
	return CastVoteResult{Poll: poll}, nil
}
