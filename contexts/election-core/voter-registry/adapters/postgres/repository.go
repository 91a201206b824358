package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/domain/entities"
	domainerrors "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/domain/errors"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/voter-registry/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) SaveVoter(ctx context.Context, voter entities.Voter) error {
	row := voterModel{
		VoterID:      strings.TrimSpace(voter.VoterID),
		RegisteredBy: strings.TrimSpace(voter.RegisteredBy),
		RegisteredAt: voter.RegisteredAt.UTC(),
	}
	if row.RegisteredAt.IsZero() {
		row.RegisteredAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "voter_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrAlreadyRegistered
		}
		return r.logError("registry_repo_save_voter_failed", create.Error, "voter_id", row.VoterID)
	}
	if create.RowsAffected == 0 {
		return domainerrors.ErrAlreadyRegistered
	}
	return nil
}

func (r *Repository) GetVoter(ctx context.Context, voterID string) (entities.Voter, bool, error) {
	var row voterModel
	err := r.db.WithContext(ctx).
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Voter{}, false, nil
		}
		return entities.Voter{}, false, r.logError("registry_repo_get_voter_failed", err,
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return entities.Voter{
		VoterID:      row.VoterID,
		RegisteredBy: row.RegisteredBy,
		RegisteredAt: row.RegisteredAt.UTC(),
	}, true, nil
}

// SystemClock satisfies the Clock port with wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator issues event identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election-core/voter-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("registry repository operation failed", fields...)
	return err
}

type voterModel struct {
	VoterID      string    `gorm:"column:voter_id;primaryKey"`
	RegisteredBy string    `gorm:"column:registered_by"`
	RegisteredAt time.Time `gorm:"column:registered_at"`
}

func (voterModel) TableName() string {
	return "registered_voters"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoterRepository = (*Repository)(nil)
