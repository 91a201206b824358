package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	registryerrors "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/domain/errors"
	registryhttp "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/transport/http"
)

func (s *Server) handleRegisterVoter(w http.ResponseWriter, r *http.Request) {
	adminID := r.Header.Get("X-Admin-Id")
	if strings.TrimSpace(adminID) == "" {
		adminID = r.Header.Get("X-User-Id")
	}
	if strings.TrimSpace(adminID) == "" {
		writeRegistryError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Id header is required")
		return
	}

	var req registryhttp.RegisterVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.registry.Handler.RegisterVoterHandler(r.Context(), adminID, req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleIsRegistered(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.IsRegisteredHandler(r.Context(), r.PathValue("voter_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registryerrors.ErrUnauthorized):
		writeRegistryError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, registryerrors.ErrAlreadyRegistered),
		errors.Is(err, registryerrors.ErrConflict):
		writeRegistryError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, registryerrors.ErrInvalidVoter):
		writeRegistryError(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
	default:
		writeRegistryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRegistryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
