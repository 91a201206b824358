package queries

import (
	"context"
	"strings"
	"time"

	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/entities"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/ports"
)

// TallyUseCase serves the read side: results, poll metadata and per-voter
// ballot flags. Reads never mutate state and observe whole-poll snapshots.
type TallyUseCase struct {
	Polls ports.PollRepository
	Clock ports.Clock
}

// PollResults aggregates the tally in candidate-insertion order. The winner
// scan uses a strictly-greater comparison so the first candidate reaching the
// maximum wins ties; a poll with zero ballots reports the no-votes sentinel.
func (uc TallyUseCase) PollResults(ctx context.Context, pollID uint64) (entities.PollResults, error) {
	poll, err := uc.Polls.GetPoll(ctx, pollID)
	if err != nil {
		return entities.PollResults{}, err
	}

	results := entities.PollResults{
		PollID:         poll.PollID,
		CandidateNames: make([]string, 0, len(poll.Candidates)),
		VoteCounts:     make([]uint64, 0, len(poll.Candidates)),
		TotalVotes:     poll.TotalVotes,
		Winner:         entities.WinnerNoVotes,
	}
	winnerIndex := 0
	maxVotes := uint64(0)
	for i, candidate := range poll.Candidates {
		results.CandidateNames = append(results.CandidateNames, candidate.Name)
		results.VoteCounts = append(results.VoteCounts, candidate.VoteCount)
		if candidate.VoteCount > maxVotes {
			maxVotes = candidate.VoteCount
			winnerIndex = i
		}
	}
	if poll.TotalVotes > 0 {
		results.Winner = poll.Candidates[winnerIndex].Name
	}
	return results, nil
}

// PollInfo projects poll metadata. DerivedActive recomputes expiry lazily
// against the current clock; the stored flag is reported untouched.
func (uc TallyUseCase) PollInfo(ctx context.Context, pollID uint64) (entities.PollInfo, error) {
	poll, err := uc.Polls.GetPoll(ctx, pollID)
	if err != nil {
		return entities.PollInfo{}, err
	}
	return entities.PollInfo{
		PollID:         poll.PollID,
		Title:          poll.Title,
		Creator:        poll.Creator,
		StartTime:      poll.StartTime,
		EndTime:        poll.EndTime,
		StoredActive:   poll.Active,
		DerivedActive:  poll.ActiveAt(uc.now()),
		CandidateCount: len(poll.Candidates),
	}, nil
}

// HasVoted reports the ballot-cast flag for a voter, false for callers that
// never voted in the poll.
func (uc TallyUseCase) HasVoted(ctx context.Context, pollID uint64, voterID string) (bool, error) {
	poll, err := uc.Polls.GetPoll(ctx, pollID)
	if err != nil {
		return false, err
	}
	return poll.HasVoted(strings.TrimSpace(voterID)), nil
}

func (uc TallyUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
