package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreatePollRequest struct {
	Title           string   `json:"title"`
	Candidates      []string `json:"candidates"`
	DurationMinutes int64    `json:"duration_minutes"`
}

type PollResponse struct {
	PollID         uint64    `json:"poll_id"`
	Title          string    `json:"title"`
	Creator        string    `json:"creator"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	CandidateCount int       `json:"candidate_count"`
}

type CastVoteRequest struct {
	CandidateIndex int `json:"candidate_index"`
}

type VoteResponse struct {
	PollID         uint64 `json:"poll_id"`
	VoterID        string `json:"voter_id"`
	CandidateIndex int    `json:"candidate_index"`
	CandidateName  string `json:"candidate_name"`
	TotalVotes     uint64 `json:"total_votes"`
}

type PollInfoResponse struct {
	PollID         uint64    `json:"poll_id"`
	Title          string    `json:"title"`
	Creator        string    `json:"creator"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	StoredActive   bool      `json:"stored_active"`
	Active         bool      `json:"active"`
	CandidateCount int       `json:"candidate_count"`
}

type PollResultsResponse struct {
	PollID         uint64   `json:"poll_id"`
	CandidateNames []string `json:"candidate_names"`
	VoteCounts     []uint64 `json:"vote_counts"`
	TotalVotes     uint64   `json:"total_votes"`
	Winner         string   `json:"winner"`
}

type HasVotedResponse struct {
	PollID   uint64 `json:"poll_id"`
	VoterID  string `json:"voter_id"`
	HasVoted bool   `json:"has_voted"`
}
