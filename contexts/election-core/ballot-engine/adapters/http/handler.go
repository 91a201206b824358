package httpadapter

import (
	"context"
	"log/slog"

	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/application/commands"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/application/queries"
	httptransport "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/transport/http"
)

type Handler struct {
	Ballots commands.BallotUseCase
	Tallies queries.TallyUseCase
	Logger  *slog.Logger
}

func (h Handler) CreatePollHandler(
	ctx context.Context,
	creator string,
	req httptransport.CreatePollRequest,
) (httptransport.PollResponse, error) {
	result, err := h.Ballots.CreatePoll(ctx, commands.CreatePollCommand{
		Creator:         creator,
		Title:           req.Title,
		CandidateNames:  req.Candidates,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return httptransport.PollResponse{}, err
	}
	return httptransport.PollResponse{
		PollID:         result.Poll.PollID,
		Title:          result.Poll.Title,
		Creator:        result.Poll.Creator,
		StartTime:      result.Poll.StartTime,
		EndTime:        result.Poll.EndTime,
		CandidateCount: len(result.Poll.Candidates),
	}, nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	voterID string,
	pollID uint64,
	req httptransport.CastVoteRequest,
) (httptransport.VoteResponse, error) {
	result, err := h.Ballots.CastVote(ctx, commands.CastVoteCommand{
		VoterID:        voterID,
		PollID:         pollID,
		CandidateIndex: req.CandidateIndex,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return httptransport.VoteResponse{
		PollID:         result.Poll.PollID,
		VoterID:        voterID,
		CandidateIndex: req.CandidateIndex,
		CandidateName:  result.Poll.Candidates[req.CandidateIndex].Name,
		TotalVotes:     result.Poll.TotalVotes,
	}, nil
}

func (h Handler) PollInfoHandler(ctx context.Context, pollID uint64) (httptransport.PollInfoResponse, error) {
	info, err := h.Tallies.PollInfo(ctx, pollID)
	if err != nil {
		return httptransport.PollInfoResponse{}, err
	}
	return httptransport.PollInfoResponse{
		PollID:         info.PollID,
		Title:          info.Title,
		Creator:        info.Creator,
		StartTime:      info.StartTime,
		EndTime:        info.EndTime,
		StoredActive:   info.StoredActive,
		Active:         info.DerivedActive,
		CandidateCount: info.CandidateCount,
	}, nil
}

func (h Handler) PollResultsHandler(ctx context.Context, pollID uint64) (httptransport.PollResultsResponse, error) {
	results, err := h.Tallies.PollResults(ctx, pollID)
	if err != nil {
		return httptransport.PollResultsResponse{}, err
	}
	return httptransport.PollResultsResponse{
		PollID:         results.PollID,
		CandidateNames: results.CandidateNames,
		VoteCounts:     results.VoteCounts,
		TotalVotes:     results.TotalVotes,
		Winner:         results.Winner,
	}, nil
}

func (h Handler) HasVotedHandler(ctx context.Context, pollID uint64, voterID string) (httptransport.HasVotedResponse, error) {
	hasVoted, err := h.Tallies.HasVoted(ctx, pollID, voterID)
	if err != nil {
		return httptransport.HasVotedResponse{}, err
	}
	return httptransport.HasVotedResponse{
		PollID:   pollID,
		VoterID:  voterID,
		HasVoted: hasVoted,
	}, nil
}
