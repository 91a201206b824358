package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/domain/entities"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/ports"

	"github.com/google/uuid"
)

// Store is the in-memory adapter backing every voter-registry port.
type Store struct {
	mu sync.RWMutex

	voters map[string]entities.Voter
	audit  []ports.EventEnvelope
}

func NewStore() *Store {
	return &Store{
		voters: make(map[string]entities.Voter),
	}
}

// AppendedEvents returns the audit envelopes in append order.
func (s *Store) AppendedEvents() []ports.EventEnvelope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.EventEnvelope(nil), s.audit...)
}

func (s *Store) SaveVoter(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[strings.TrimSpace(voter.VoterID)] = voter
	return nil
}

func (s *Store) GetVoter(_ context.Context, voterID string) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	return voter, ok, nil
}

func (s *Store) Append(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, envelope)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.VoterRepository = (*Store)(nil)
var _ ports.AuditLog = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
