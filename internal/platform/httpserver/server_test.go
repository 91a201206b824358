package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ballotengine "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine"
	ballothttp "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/transport/http"
	voterregistry "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry"
	registryhttp "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/transport/http"
)

func newTestServer() (*Server, ballotengine.Module, voterregistry.Module) {
	ballots := ballotengine.NewInMemoryModule(nil, nil)
	registry := voterregistry.NewInMemoryModule("admin-1", nil)
	return New(ballots, registry, nil, ":0"), ballots, registry
}

func doJSON(t *testing.T, s *Server, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body failed: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func TestCreatePollRoute(t *testing.T) {
	s, _, _ := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/polls", "creator-1", ballothttp.CreatePollRequest{
		Title:           "Mayor",
		Candidates:      []string{"Alice", "Bob"},
		DurationMinutes: 60,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ballothttp.PollResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.PollID != 0 || resp.Title != "Mayor" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCreatePollRouteRejectsMissingUser(t *testing.T) {
	s, _, _ := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/polls", "", ballothttp.CreatePollRequest{
		Title:           "Mayor",
		Candidates:      []string{"Alice", "Bob"},
		DurationMinutes: 60,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreatePollRouteValidationStatus(t *testing.T) {
	s, _, _ := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/api/v1/polls", "creator-1", ballothttp.CreatePollRequest{
		Title:           "Solo",
		Candidates:      []string{"Alice"},
		DurationMinutes: 60,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCastVoteRouteStatusMapping(t *testing.T) {
	s, ballots, _ := newTestServer()
	ballots.Store.SetVoter("voter-1")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/polls", "creator-1", ballothttp.CreatePollRequest{
		Title:           "Mayor",
		Candidates:      []string{"Alice", "Bob"},
		DurationMinutes: 60,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create poll: expected 201, got %d", rec.Code)
	}

	// Unregistered caller.
	rec = doJSON(t, s, http.MethodPost, "/api/v1/polls/0/votes", "stranger", ballothttp.CastVoteRequest{CandidateIndex: 0})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unregistered voter, got %d", rec.Code)
	}

	// Unknown poll.
	rec = doJSON(t, s, http.MethodPost, "/api/v1/polls/9/votes", "voter-1", ballothttp.CastVoteRequest{CandidateIndex: 0})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown poll, got %d", rec.Code)
	}

	// Bad path value.
	rec = doJSON(t, s, http.MethodPost, "/api/v1/polls/nope/votes", "voter-1", ballothttp.CastVoteRequest{CandidateIndex: 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed poll id, got %d", rec.Code)
	}

	// Happy path then duplicate.
	rec = doJSON(t, s, http.MethodPost, "/api/v1/polls/0/votes", "voter-1", ballothttp.CastVoteRequest{CandidateIndex: 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for first vote, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, s, http.MethodPost, "/api/v1/polls/0/votes", "voter-1", ballothttp.CastVoteRequest{CandidateIndex: 1})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate vote, got %d", rec.Code)
	}

	// Out-of-range candidate.
	ballots.Store.SetVoter("voter-2")
	rec = doJSON(t, s, http.MethodPost, "/api/v1/polls/0/votes", "voter-2", ballothttp.CastVoteRequest{CandidateIndex: 5})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid candidate, got %d", rec.Code)
	}
}

func TestResultsAndBallotRoutes(t *testing.T) {
	s, ballots, _ := newTestServer()
	ballots.Store.SetVoter("voter-1")
	doJSON(t, s, http.MethodPost, "/api/v1/polls", "creator-1", ballothttp.CreatePollRequest{
		Title:           "Mayor",
		Candidates:      []string{"Alice", "Bob"},
		DurationMinutes: 60,
	})
	doJSON(t, s, http.MethodPost, "/api/v1/polls/0/votes", "voter-1", ballothttp.CastVoteRequest{CandidateIndex: 0})

	rec := doJSON(t, s, http.MethodGet, "/api/v1/polls/0/results", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("results: expected 200, got %d", rec.Code)
	}
	var results ballothttp.PollResultsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("decode results failed: %v", err)
	}
	if results.Winner != "Alice" || results.TotalVotes != 1 {
		t.Fatalf("unexpected results: %+v", results)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/polls/0/ballots/voter-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("ballots: expected 200, got %d", rec.Code)
	}
	var hasVoted ballothttp.HasVotedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &hasVoted); err != nil {
		t.Fatalf("decode has-voted failed: %v", err)
	}
	if !hasVoted.HasVoted {
		t.Fatalf("expected has_voted true: %+v", hasVoted)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/polls/0", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("info: expected 200, got %d", rec.Code)
	}
}

func TestRegistryRoutes(t *testing.T) {
	s, _, _ := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/v1/voters", "admin-1", registryhttp.RegisterVoterRequest{VoterID: "voter-1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/voters", "impostor", registryhttp.RegisterVoterRequest{VoterID: "voter-2"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin register: expected 403, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/voters", "admin-1", registryhttp.RegisterVoterRequest{VoterID: "voter-1"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/voters/voter-1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("lookup: expected 200, got %d", rec.Code)
	}
	var lookup registryhttp.IsRegisteredResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &lookup); err != nil {
		t.Fatalf("decode lookup failed: %v", err)
	}
	if !lookup.Registered {
		t.Fatalf("expected registered true: %+v", lookup)
	}
}
