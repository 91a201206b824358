package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RegisterVoterRequest struct {
	VoterID string `json:"voter_id"`
}

type VoterResponse struct {
	VoterID      string    `json:"voter_id"`
	RegisteredBy string    `json:"registered_by"`
	RegisteredAt time.Time `json:"registered_at"`
}

type IsRegisteredResponse struct {
	VoterID    string `json:"voter_id"`
	Registered bool   `json:"registered"`
}
