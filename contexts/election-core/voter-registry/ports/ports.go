package ports

import (
	"context"
	"time"

	contractsv1 "github.com/Bhavna851/Decentralised-Voting-System/contracts/gen/events/v1"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/domain/entities"
)

// VoterRepository persists registry entries. There is no delete: the allow
// list only grows.
type VoterRepository interface {
	SaveVoter(ctx context.Context, voter entities.Voter) error
	GetVoter(ctx context.Context, voterID string) (entities.Voter, bool, error)
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// AuditLog is the append-only observable event record shared with the ballot
// engine.
type AuditLog interface {
	Append(ctx context.Context, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
