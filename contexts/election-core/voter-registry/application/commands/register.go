package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	application "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/application"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/domain/entities"
	domainerrors "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/domain/errors"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/ports"
)

// RegisterVoterCommand is the write-model input for registration.
type RegisterVoterCommand struct {
	AdminID string
	VoterID string
}

// RegisterVoterResult returns the stored registry entry.
type RegisterVoterResult struct {
	Voter entities.Voter
}

// RegistryUseCase guards the allow list. The admin identity is fixed when the
// module is constructed and cannot change afterwards.
type RegistryUseCase struct {
	AdminID string
	Voters  ports.VoterRepository
	Audit   ports.AuditLog
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Gate    *sync.Mutex
	Logger  *slog.Logger
}

// RegisterVoter grants eligibility to one identity. Only the configured admin
// may call it; a second registration of the same identity is rejected and
// leaves state untouched.
func (uc RegistryUseCase) RegisterVoter(ctx context.Context, cmd RegisterVoterCommand) (RegisterVoterResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	adminID := strings.TrimSpace(cmd.AdminID)
	voterID := strings.TrimSpace(cmd.VoterID)
	logger.Info("voter registration processing started",
		"event", "registry_register_started",
		"module", "election-core/voter-registry",
		"layer", "application",
		"admin_id", adminID,
		"voter_id", voterID,
	)

	if voterID == "" {
		return RegisterVoterResult{}, domainerrors.ErrInvalidVoter
	}
	if adminID == "" || adminID != strings.TrimSpace(uc.AdminID) {
		logger.Warn("voter registration rejected for non-admin caller",
			"event", "registry_register_unauthorized",
			"module", "election-core/voter-registry",
			"layer", "application",
			"admin_id", adminID,
			"voter_id", voterID,
		)
		return RegisterVoterResult{}, domainerrors.ErrUnauthorized
	}

	uc.Gate.Lock()
	defer uc.Gate.Unlock()

	if _, found, err := uc.Voters.GetVoter(ctx, voterID); err != nil {
		return RegisterVoterResult{}, err
	} else if found {
		logger.Warn("voter already registered",
			"event", "registry_register_duplicate",
			"module", "election-core/voter-registry",
			"layer", "application",
			"voter_id", voterID,
		)
		return RegisterVoterResult{}, domainerrors.ErrAlreadyRegistered
	}

	now := uc.now()
	voter := entities.Voter{
		VoterID:      voterID,
		RegisteredBy: adminID,
		RegisteredAt: now,
	}
	if err := uc.Voters.SaveVoter(ctx, voter); err != nil {
		return RegisterVoterResult{}, err
	}
	if err := uc.appendRegistryEvent(ctx, "voter.registered", voter, now); err != nil {
		return RegisterVoterResult{}, err
	}

	logger.Info("voter registered",
		"event", "registry_register_completed",
		"module", "election-core/voter-registry",
		"layer", "application",
		"voter_id", voterID,
		"admin_id", adminID,
	)
	return RegisterVoterResult{Voter: voter}, nil
}

func (uc RegistryUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc RegistryUseCase) appendRegistryEvent(
	ctx context.Context,
	eventType string,
	voter entities.Voter,
	occurredAt time.Time,
) error {
	// Audit sink is optional for pure read/test wiring, so nil is a no-op.
	if uc.Audit == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(map[string]any{
		"voter_id":      voter.VoterID,
		"registered_by": voter.RegisteredBy,
		"occurred_at":   occurredAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return uc.Audit.Append(ctx, ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "voter-registry",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "voter_id",
		PartitionKey:     voter.VoterID,
		Data:             payload,
	})
}
