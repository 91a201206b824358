package ports

import (
	"context"
	"time"

	contractsv1 "github.com/Bhavna851/Decentralised-Voting-System/contracts/gen/events/v1"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/entities"
)

// PollRepository persists poll aggregates. SavePoll replaces the whole record
// in one step so readers never observe a vote whose per-candidate increment
// and total-votes increment have diverged.
type PollRepository interface {
	SavePoll(ctx context.Context, poll entities.Poll) error
	GetPoll(ctx context.Context, pollID uint64) (entities.Poll, error)
	CountPolls(ctx context.Context) (uint64, error)
}

// Registry is the eligibility lookup the ballot processor consults before
// accepting a vote. Backed by the voter-registry module.
type Registry interface {
	IsRegistered(ctx context.Context, voterID string) (bool, error)
}

// EventEnvelope reuses the canonical cross-runtime envelope contract.
type EventEnvelope = contractsv1.Envelope

// AuditLog is the append-only observable event record. Exactly one append per
// successful mutating call, never on failed attempts.
type AuditLog interface {
	Append(ctx context.Context, event EventEnvelope) error
}

// AuditRecord is a stored audit row ready to relay to the event bus.
type AuditRecord struct {
	AuditID      string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// AuditRepository models worker-side audit polling/acknowledgement.
type AuditRepository interface {
	ListPendingAudit(ctx context.Context, limit int) ([]AuditRecord, error)
	MarkAuditDelivered(ctx context.Context, auditID string, deliveredAt time.Time) error
}

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
