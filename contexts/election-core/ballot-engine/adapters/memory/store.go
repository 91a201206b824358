package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/errors"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/ports"

	"github.com/google/uuid"
)

type auditRow struct {
	record    ports.AuditRecord
	envelope  ports.EventEnvelope
	delivered bool
}

// Store is the in-memory adapter backing every ballot-engine port. Polls are
// stored and returned as deep copies, so a read always sees a whole-poll
// snapshot and callers can never alias internal state.
type Store struct {
	mu sync.RWMutex

	polls  map[uint64]entities.Poll
	voters map[string]bool
	audit  []auditRow
}

func NewStore(seed []entities.Poll) *Store {
	polls := make(map[uint64]entities.Poll, len(seed))
	for _, poll := range seed {
		polls[poll.PollID] = poll.Clone()
	}
	return &Store{
		polls:  polls,
		voters: make(map[string]bool),
	}
}

// SetVoter seeds the registry projection consulted before accepting votes.
func (s *Store) SetVoter(voterID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voterID)] = true
}

// AppendedEvents returns the audit envelopes in append order.
func (s *Store) AppendedEvents() []ports.EventEnvelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.EventEnvelope, 0, len(s.audit))
	for _, row := range s.audit {
		items = append(items, row.envelope)
	}
	return items
}

func (s *Store) SavePoll(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[poll.PollID] = poll.Clone()
	return nil
}

func (s *Store) GetPoll(_ context.Context, pollID uint64) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.polls[pollID]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return poll.Clone(), nil
}

func (s *Store) CountPolls(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.polls)), nil
}

func (s *Store) IsRegistered(_ context.Context, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voters[strings.TrimSpace(voterID)], nil
}

func (s *Store) Append(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	auditID := strings.TrimSpace(envelope.EventID)
	if auditID == "" {
		auditID = uuid.NewString()
	}
	for _, row := range s.audit {
		if row.record.AuditID != auditID {
			continue
		}
		if !bytes.Equal(row.record.Payload, payload) {
			return domainerrors.ErrConflict
		}
		return nil
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	s.audit = append(s.audit, auditRow{
		record: ports.AuditRecord{
			AuditID:      auditID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
		envelope: envelope,
	})
	return nil
}

func (s *Store) ListPendingAudit(_ context.Context, limit int) ([]ports.AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.AuditRecord, 0, len(s.audit))
	for _, row := range s.audit {
		if row.delivered {
			continue
		}
		items = append(items, row.record)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkAuditDelivered(_ context.Context, auditID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.audit {
		if s.audit[i].record.AuditID == strings.TrimSpace(auditID) {
			s.audit[i].delivered = true
			return nil
		}
	}
	return domainerrors.ErrConflict
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.PollRepository = (*Store)(nil)
var _ ports.Registry = (*Store)(nil)
var _ ports.AuditLog = (*Store)(nil)
var _ ports.AuditRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
