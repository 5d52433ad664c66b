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

// Record error types
var (
	ErrRecordNotFound = ErrNotFound
)

// RecordRepository handles participation record database operations
type RecordRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a record and its option selections in one transaction and
// returns the new record ID.
func (r *RecordRepository) Create(ctx context.Context, record *models.Record) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Insert("records").
		Columns("participant_id", "item_id", "quantity").
		Values(record.ParticipantID, record.ItemID, record.Quantity).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create record query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Int64("itemID", record.ItemID).Msg("Error executing create record query")
		return 0, fmt.Errorf("error creating record: %w", err)
	}

	if err := r.insertOptions(ctx, tx, id, record.Options); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing record transaction: %w", err)
	}

	return id, nil
}

// GetByID retrieves a record with its option selections
func (r *RecordRepository) GetByID(ctx context.Context, id int64) (*models.Record, error) {
	sql, args, err := r.sb.Select("id", "participant_id", "item_id", "quantity").
		From("records").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get record query: %w", err)
	}

	record := &models.Record{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&record.ID, &record.ParticipantID, &record.ItemID, &record.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		logger.Error().Err(err).Int64("recordID", id).Msg("Error scanning record row")
		return nil, fmt.Errorf("error getting record by ID: %w", err)
	}

	options, err := r.listOptionsByRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Options = options

	return record, nil
}

// ListByItem retrieves all records of an item with their participants and
// option selections.
func (r *RecordRepository) ListByItem(ctx context.Context, itemID int64) ([]*models.Record, error) {
	return r.list(ctx, squirrel.Eq{"r.item_id": itemID})
}

// ListByParticipant retrieves all records of a participant
func (r *RecordRepository) ListByParticipant(ctx context.Context, participantID int64) ([]*models.Record, error) {
	return r.list(ctx, squirrel.Eq{"r.participant_id": participantID})
}

// ListByItemAndParticipant retrieves a participant's records on one item
func (r *RecordRepository) ListByItemAndParticipant(ctx context.Context, itemID, participantID int64) ([]*models.Record, error) {
	return r.list(ctx, squirrel.Eq{"r.item_id": itemID, "r.participant_id": participantID})
}

// Update replaces a record's quantity and option selections in one transaction
func (r *RecordRepository) Update(ctx context.Context, record *models.Record) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql, args, err := r.sb.Update("records").
		Set("quantity", record.Quantity).
		Where(squirrel.Eq{"id": record.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update record query: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("recordID", record.ID).Msg("Error executing update record query")
		return fmt.Errorf("error updating record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	sql, args, err = r.sb.Delete("record_options").
		Where(squirrel.Eq{"record_id": record.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear record options query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing record options: %w", err)
	}

	if err := r.insertOptions(ctx, tx, record.ID, record.Options); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing record transaction: %w", err)
	}

	return nil
}

// Delete removes a record; its option selections cascade
func (r *RecordRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("records").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete record query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("recordID", id).Msg("Error executing delete record query")
		return fmt.Errorf("error deleting record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (r *RecordRepository) list(ctx context.Context, where squirrel.Eq) ([]*models.Record, error) {
	sql, args, err := r.sb.Select(
		"r.id", "r.participant_id", "r.item_id", "r.quantity",
		"u.id", "u.username", "u.email", "u.is_admin", "u.created_at").
		From("records r").
		Join("users u ON u.id = r.participant_id").
		Where(where).
		OrderBy("r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list records query")
		return nil, fmt.Errorf("error querying records: %w", err)
	}
	defer rows.Close()

	records := []*models.Record{}
	for rows.Next() {
		record := &models.Record{Participant: &models.User{}}
		if err := rows.Scan(
			&record.ID, &record.ParticipantID, &record.ItemID, &record.Quantity,
			&record.Participant.ID, &record.Participant.Username, &record.Participant.Email,
			&record.Participant.IsAdmin, &record.Participant.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning record row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	rows.Close()

	for _, record := range records {
		options, err := r.listOptionsByRecord(ctx, record.ID)
		if err != nil {
			return nil, err
		}
		record.Options = options
	}

	return records, nil
}

func (r *RecordRepository) insertOptions(ctx context.Context, tx pgx.Tx, recordID int64, options []*models.OptionItem) error {
	if len(options) == 0 {
		return nil
	}

	builder := r.sb.Insert("record_options").Columns("record_id", "option_item_id")
	for _, opt := range options {
		builder = builder.Values(recordID, opt.ID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert record options query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting record options: %w", err)
	}

	return nil
}

func (r *RecordRepository) listOptionsByRecord(ctx context.Context, recordID int64) ([]*models.OptionItem, error) {
	sql, args, err := r.sb.Select("oi.id", "oi.category_id", "oi.name", "oi.price_delta").
		From("record_options ro").
		Join("option_items oi ON oi.id = ro.option_item_id").
		Where(squirrel.Eq{"ro.record_id": recordID}).
		OrderBy("oi.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list record options query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying record options: %w", err)
	}
	defer rows.Close()

	options := []*models.OptionItem{}
	for rows.Next() {
		opt := &models.OptionItem{}
		if err := rows.Scan(&opt.ID, &opt.CategoryID, &opt.Name, &opt.PriceDelta); err != nil {
			return nil, fmt.Errorf("error scanning record option row: %w", err)
		}
		options = append(options, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record option rows: %w", err)
	}

	return options, nil
}
