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

// Item error types
var (
	ErrItemNotFound = ErrNotFound
)

// ItemFilter narrows down item listings.
type ItemFilter struct {
	HostID         *int64
	Search         *string
	OpenOnly       bool
	IncludeDeleted bool
}

// ItemRepository handles item database operations
type ItemRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new item and returns its ID
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) (int64, error) {
	sql, args, err := r.sb.Insert("items").
		Columns("title", "host_id", "price", "join_type", "deadline", "delivery_date").
		Values(item.Title, item.HostID, item.Price, item.JoinType, item.Deadline, item.DeliveryDate).
		Suffix("RETURNING id, created_date").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create item query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &item.CreatedDate)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create item query")
		return 0, fmt.Errorf("error creating item: %w", err)
	}

	return id, nil
}

// GetByID retrieves an item by ID together with its host. Soft-deleted rows
// are returned too; callers decide how to treat them.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	sql, args, err := r.sb.Select(
		"i.id", "i.title", "i.host_id", "i.price", "i.join_type",
		"i.created_date", "i.deadline", "i.delivery_date", "i.is_deleted",
		"u.id", "u.username", "u.email", "u.is_admin", "u.created_at").
		From("items i").
		Join("users u ON u.id = i.host_id").
		Where(squirrel.Eq{"i.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get item query: %w", err)
	}

	item := &models.Item{Host: &models.User{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&item.ID, &item.Title, &item.HostID, &item.Price, &item.JoinType,
		&item.CreatedDate, &item.Deadline, &item.DeliveryDate, &item.IsDeleted,
		&item.Host.ID, &item.Host.Username, &item.Host.Email, &item.Host.IsAdmin, &item.Host.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		logger.Error().Err(err).Int64("itemID", id).Msg("Error scanning item row")
		return nil, fmt.Errorf("error getting item by ID: %w", err)
	}

	return item, nil
}

// List retrieves items matching the filter with pagination
func (r *ItemRepository) List(ctx context.Context, filter ItemFilter, offset uint64, limit int) ([]*models.Item, int64, error) {
	builder := r.sb.Select(
		"id", "title", "host_id", "price", "join_type",
		"created_date", "deadline", "delivery_date", "is_deleted",
		"COUNT(*) OVER() AS total_count").
		From("items")

	if !filter.IncludeDeleted {
		builder = builder.Where(squirrel.Eq{"is_deleted": false})
	}
	if filter.OpenOnly {
		builder = builder.Where(squirrel.Eq{"join_type": models.JoinTypeOpen})
	}
	if filter.HostID != nil {
		builder = builder.Where(squirrel.Eq{"host_id": *filter.HostID})
	}
	if filter.Search != nil && *filter.Search != "" {
		builder = builder.Where(squirrel.ILike{"title": "%" + *filter.Search + "%"})
	}

	sql, args, err := builder.
		OrderBy("created_date DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list items query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list items query")
		return nil, 0, fmt.Errorf("error querying items: %w", err)
	}
	defer rows.Close()

	items := []*models.Item{}
	var total int64
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(
			&item.ID, &item.Title, &item.HostID, &item.Price, &item.JoinType,
			&item.CreatedDate, &item.Deadline, &item.DeliveryDate, &item.IsDeleted,
			&total); err != nil {
			return nil, 0, fmt.Errorf("error scanning item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, total, nil
}

// Update updates an item's mutable fields. The deadline is immutable after
// creation and is intentionally not part of the update set.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	sql, args, err := r.sb.Update("items").
		SetMap(map[string]interface{}{
			"title":         item.Title,
			"price":         item.Price,
			"join_type":     item.JoinType,
			"delivery_date": item.DeliveryDate,
		}).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update item query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", item.ID).Msg("Error executing update item query")
		return fmt.Errorf("error updating item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// SoftDelete flips is_deleted on an item, leaving the row and all related
// rows in place.
func (r *ItemRepository) SoftDelete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("items").
		Set("is_deleted", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build soft delete item query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error soft deleting item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}

// Delete physically removes an item. The database cascades the delete to
// contents, comments, option categories and option items.
func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete item query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", id).Msg("Error executing delete item query")
		return fmt.Errorf("error deleting item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrItemNotFound
	}

	return nil
}
