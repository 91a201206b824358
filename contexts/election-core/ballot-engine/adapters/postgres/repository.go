package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/entities"
	domainerrors "github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/domain/errors"
	"github.com/Bhavna851/Decentralised-Voting-System/contexts/election-core/ballot-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	auditStatusPending   = "pending"
	auditStatusDelivered = "delivered"
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

// SavePoll writes the poll row, its candidate tallies and ballot flags in one
// transaction so concurrent readers never see a torn update.
func (r *Repository) SavePoll(ctx context.Context, poll entities.Poll) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := pollModelFromEntity(poll)
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"title":       row.Title,
				"creator":     row.Creator,
				"start_time":  row.StartTime,
				"end_time":    row.EndTime,
				"active":      row.Active,
				"total_votes": row.TotalVotes,
				"updated_at":  row.UpdatedAt,
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		for position, candidate := range poll.Candidates {
			candidateRow := pollCandidateModel{
				PollID:    poll.PollID,
				Position:  position,
				Name:      strings.TrimSpace(candidate.Name),
				VoteCount: candidate.VoteCount,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "poll_id"}, {Name: "position"}},
				DoUpdates: clause.Assignments(map[string]any{
					"vote_count": candidateRow.VoteCount,
				}),
			}).Create(&candidateRow).Error; err != nil {
				return err
			}
		}

		for voterID, cast := range poll.Ballots {
			if !cast {
				continue
			}
			ballotRow := pollBallotModel{
				PollID:  poll.PollID,
				VoterID: strings.TrimSpace(voterID),
				CastAt:  poll.UpdatedAt.UTC(),
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "poll_id"}, {Name: "voter_id"}},
				DoNothing: true,
			}).Create(&ballotRow).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("ballot_repo_save_poll_failed", err, "poll_id", poll.PollID)
	}
	return nil
}

func (r *Repository) GetPoll(ctx context.Context, pollID uint64) (entities.Poll, error) {
	var row pollModel
	err := r.db.WithContext(ctx).
		Where("id = ?", pollID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Poll{}, domainerrors.ErrPollNotFound
		}
		return entities.Poll{}, r.logError("ballot_repo_get_poll_failed", err, "poll_id", pollID)
	}

	var candidateRows []pollCandidateModel
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("position ASC").
		Find(&candidateRows).Error; err != nil {
		return entities.Poll{}, r.logError("ballot_repo_get_poll_candidates_failed", err, "poll_id", pollID)
	}

	var ballotRows []pollBallotModel
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Find(&ballotRows).Error; err != nil {
		return entities.Poll{}, r.logError("ballot_repo_get_poll_ballots_failed", err, "poll_id", pollID)
	}

	return row.toEntity(candidateRows, ballotRows), nil
}

func (r *Repository) CountPolls(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&pollModel{}).
		Count(&count).Error; err != nil {
		return 0, r.logError("ballot_repo_count_polls_failed", err)
	}
	return uint64(count), nil
}

// IsRegistered reads the voter-registry table as a projection; the ballot
// engine never writes it.
func (r *Repository) IsRegistered(ctx context.Context, voterID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("registered_voters").
		Where("voter_id = ?", strings.TrimSpace(voterID)).
		Count(&count).Error; err != nil {
		return false, r.logError("ballot_repo_is_registered_failed", err,
			"voter_id", strings.TrimSpace(voterID),
		)
	}
	return count > 0, nil
}

func (r *Repository) Append(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("ballot_repo_append_audit_marshal_failed", err,
			"event_id", strings.TrimSpace(envelope.EventID),
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := auditModel{
		AuditID:      strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       auditStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.AuditID == "" {
		row.AuditID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "audit_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("ballot_repo_append_audit_failed", create.Error, "audit_id", row.AuditID)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing auditModel
	if err := r.db.WithContext(ctx).
		Select("payload").
		Where("audit_id = ?", row.AuditID).
		First(&existing).Error; err != nil {
		return r.logError("ballot_repo_append_audit_load_existing_failed", err, "audit_id", row.AuditID)
	}
	if !bytes.Equal(existing.Payload, row.Payload) {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) ListPendingAudit(ctx context.Context, limit int) ([]ports.AuditRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []auditModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", auditStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("ballot_repo_list_pending_audit_failed", err, "limit", limit)
	}
	items := make([]ports.AuditRecord, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.AuditRecord{
			AuditID:      row.AuditID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkAuditDelivered(ctx context.Context, auditID string, deliveredAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&auditModel{}).
		Where("audit_id = ?", strings.TrimSpace(auditID)).
		Updates(map[string]any{
			"status":       auditStatusDelivered,
			"delivered_at": deliveredAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("ballot_repo_mark_audit_delivered_failed", result.Error,
			"audit_id", strings.TrimSpace(auditID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
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
		"module", "election-core/ballot-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("ballot repository operation failed", fields...)
	return err
}

type pollModel struct {
	ID         uint64    `gorm:"column:id;primaryKey"`
	Title      string    `gorm:"column:title"`
	Creator    string    `gorm:"column:creator"`
	StartTime  time.Time `gorm:"column:start_time"`
	EndTime    time.Time `gorm:"column:end_time"`
	Active     bool      `gorm:"column:active"`
	TotalVotes uint64    `gorm:"column:total_votes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (pollModel) TableName() string {
	return "polls"
}

func pollModelFromEntity(poll entities.Poll) pollModel {
	row := pollModel{
		ID:         poll.PollID,
		Title:      strings.TrimSpace(poll.Title),
		Creator:    strings.TrimSpace(poll.Creator),
		StartTime:  poll.StartTime.UTC(),
		EndTime:    poll.EndTime.UTC(),
		Active:     poll.Active,
		TotalVotes: poll.TotalVotes,
		CreatedAt:  poll.CreatedAt.UTC(),
		UpdatedAt:  poll.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m pollModel) toEntity(candidates []pollCandidateModel, ballots []pollBallotModel) entities.Poll {
	poll := entities.Poll{
		PollID:     m.ID,
		Title:      m.Title,
		Creator:    m.Creator,
		StartTime:  m.StartTime.UTC(),
		EndTime:    m.EndTime.UTC(),
		Active:     m.Active,
		TotalVotes: m.TotalVotes,
		Candidates: make([]entities.Candidate, 0, len(candidates)),
		Ballots:    make(map[string]bool, len(ballots)),
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
	for _, candidate := range candidates {
		poll.Candidates = append(poll.Candidates, entities.Candidate{
			Name:      candidate.Name,
			VoteCount: candidate.VoteCount,
		})
	}
	for _, ballot := range ballots {
		poll.Ballots[ballot.VoterID] = true
	}
	return poll
}

type pollCandidateModel struct {
	PollID    uint64 `gorm:"column:poll_id;primaryKey"`
	Position  int    `gorm:"column:position;primaryKey"`
	Name      string `gorm:"column:name"`
	VoteCount uint64 `gorm:"column:vote_count"`
}

func (pollCandidateModel) TableName() string {
	return "poll_candidates"
}

type pollBallotModel struct {
	PollID  uint64    `gorm:"column:poll_id;primaryKey"`
	VoterID string    `gorm:"column:voter_id;primaryKey"`
	CastAt  time.Time `gorm:"column:cast_at"`
}

func (pollBallotModel) TableName() string {
	return "poll_ballots"
}

type auditModel struct {
	AuditID      string     `gorm:"column:audit_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	DeliveredAt  *time.Time `gorm:"column:delivered_at"`
}

func (auditModel) TableName() string {
	return "audit_log"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.PollRepository = (*Repository)(nil)
var _ ports.Registry = (*Repository)(nil)
var _ ports.AuditLog = (*Repository)(nil)
var _ ports.AuditRepository = (*Repository)(nil)
