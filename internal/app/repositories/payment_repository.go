package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/pkg/logger"
)

// Payment error types
var (
	ErrPaymentNotFound = ErrNotFound
)

// PaymentRepository handles payment database operations
type PaymentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Upsert inserts a payment row for (item, participant) or, if one exists,
// updates its total. The status is left untouched on conflict so a PAID
// payment keeps its state when records change.
func (r *PaymentRepository) Upsert(ctx context.Context, payment *models.Payment) (int64, error) {
	sql, args, err := r.sb.Insert("payments").
		Columns("item_id", "participant_id", "total", "status").
		Values(payment.ItemID, payment.ParticipantID, payment.Total, payment.Status).
		Suffix("ON CONFLICT ON CONSTRAINT payments_item_participant_key DO UPDATE SET total = EXCLUDED.total").
		Suffix("RETURNING id, status").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build upsert payment query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &payment.Status)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", payment.ItemID).Msg("Error executing upsert payment query")
		return 0, fmt.Errorf("error upserting payment: %w", err)
	}

	return id, nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	sql, args, err := r.sb.Select("id", "item_id", "participant_id", "total", "status").
		From("payments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get payment query: %w", err)
	}

	payment := &models.Payment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&payment.ID, &payment.ItemID, &payment.ParticipantID, &payment.Total, &payment.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		logger.Error().Err(err).Int64("paymentID", id).Msg("Error scanning payment row")
		return nil, fmt.Errorf("error getting payment by ID: %w", err)
	}

	return payment, nil
}

// GetByItemAndParticipant retrieves the single payment of a participant on an item
func (r *PaymentRepository) GetByItemAndParticipant(ctx context.Context, itemID, participantID int64) (*models.Payment, error) {
	sql, args, err := r.sb.Select("id", "item_id", "participant_id", "total", "status").
		From("payments").
		Where(squirrel.Eq{"item_id": itemID, "participant_id": participantID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get payment query: %w", err)
	}

	payment := &models.Payment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&payment.ID, &payment.ItemID, &payment.ParticipantID, &payment.Total, &payment.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("error getting payment: %w", err)
	}

	return payment, nil
}

// ListByItem retrieves all payments on an item with their participants
func (r *PaymentRepository) ListByItem(ctx context.Context, itemID int64) ([]*models.Payment, error) {
	return r.list(ctx, squirrel.Eq{"p.item_id": itemID})
}

// ListByParticipant retrieves all payments of a participant
func (r *PaymentRepository) ListByParticipant(ctx context.Context, participantID int64) ([]*models.Payment, error) {
	return r.list(ctx, squirrel.Eq{"p.participant_id": participantID})
}

// UpdateStatus sets a payment's status. Transition rules live in the service
// layer; this only writes.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id int64, status models.PaymentStatus) error {
	sql, args, err := r.sb.Update("payments").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update payment status query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paymentID", id).Msg("Error executing update payment status query")
		return fmt.Errorf("error updating payment status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// Delete removes a payment row
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete payment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting payment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (r *PaymentRepository) list(ctx context.Context, where squirrel.Eq) ([]*models.Payment, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.item_id", "p.participant_id", "p.total", "p.status",
		"u.id", "u.username", "u.email", "u.is_admin", "u.created_at").
		From("payments p").
		Join("users u ON u.id = p.participant_id").
		Where(where).
		OrderBy("p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list payments query")
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment := &models.Payment{Participant: &models.User{}}
		if err := rows.Scan(
			&payment.ID, &payment.ItemID, &payment.ParticipantID, &payment.Total, &payment.Status,
			&payment.Participant.ID, &payment.Participant.Username, &payment.Participant.Email,
			&payment.Participant.IsAdmin, &payment.Participant.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	return payments, nil
}
