package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	ballotengine "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine"
	ballotdomainerrors "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/errors"
	ballothttp "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/transport/http"
	voterregistry "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/Bhavna851/Decentralised-Voting-System/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	ballots  ballotengine.Module
	registry voterregistry.Module
}

func New(
	ballots ballotengine.Module,
	registry voterregistry.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		ballots:  ballots,
		registry: registry,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/voters", s.handleRegisterVoter)
	s.mux.HandleFunc("GET /api/v1/voters/{voter_id}", s.handleIsRegistered)

	s.mux.HandleFunc("POST /api/v1/polls", s.handleCreatePoll)
	s.mux.HandleFunc("GET /api/v1/polls/{poll_id}", s.handlePollInfo)
	s.mux.HandleFunc("POST /api/v1/polls/{poll_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/v1/polls/{poll_id}/results", s.handlePollResults)
	s.mux.HandleFunc("GET /api/v1/polls/{poll_id}/ballots/{voter_id}", s.handleHasVoted)
}

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	creator := r.Header.Get("X-User-Id")
	if creator == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req ballothttp.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballots.Handler.CreatePollHandler(r.Context(), creator, req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	voterID := r.Header.Get("X-User-Id")
	if voterID == "" {
		writeBallotError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}

	var req ballothttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ballots.Handler.CastVoteHandler(r.Context(), voterID, pollID, req)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollInfo(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}
	resp, err := s.ballots.Handler.PollInfoHandler(r.Context(), pollID)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePollResults(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}
	resp, err := s.ballots.Handler.PollResultsHandler(r.Context(), pollID)
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHasVoted(w http.ResponseWriter, r *http.Request) {
	pollID, ok := parsePollID(w, r)
	if !ok {
		return
	}
	resp, err := s.ballots.Handler.HasVotedHandler(r.Context(), pollID, r.PathValue("voter_id"))
	if err != nil {
		writeBallotDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parsePollID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	pollID, err := strconv.ParseUint(r.PathValue("poll_id"), 10, 64)
	if err != nil {
		writeBallotError(w, http.StatusBadRequest, "invalid_poll_id", "poll_id must be an unsigned integer")
		return 0, false
	}
	return pollID, true
}

func writeBallotDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ballotdomainerrors.ErrPollNotFound):
		writeBallotError(w, http.StatusNotFound, "poll_not_found", err.Error())
	case errors.Is(err, ballotdomainerrors.ErrUnauthorizedVoter):
		writeBallotError(w, http.StatusForbidden, "unregistered_voter", err.Error())
	case errors.Is(err, ballotdomainerrors.ErrInvalidTitle),
		errors.Is(err, ballotdomainerrors.ErrInsufficientCandidates),
		errors.Is(err, ballotdomainerrors.ErrInvalidCandidateName),
		errors.Is(err, ballotdomainerrors.ErrInvalidDuration),
		errors.Is(err, ballotdomainerrors.ErrInvalidCandidate),
		errors.Is(err, ballotdomainerrors.ErrInvalidPollInput):
		writeBallotError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
	case errors.Is(err, ballotdomainerrors.ErrDuplicateVote),
		errors.Is(err, ballotdomainerrors.ErrPollInactive),
		errors.Is(err, ballotdomainerrors.ErrPollNotStarted),
		errors.Is(err, ballotdomainerrors.ErrPollEnded),
		errors.Is(err, ballotdomainerrors.ErrConflict):
		writeBallotError(w, http.StatusConflict, "conflict", err.Error())
	default:
		writeBallotError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBallotError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ballothttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
