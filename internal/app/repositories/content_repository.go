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

// Content error types
var (
	ErrContentNotFound = ErrNotFound
)

// ContentRepository handles content block database operations
type ContentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// NextOrd returns the next 1-based position for a content block on an item.
func (r *ContentRepository) NextOrd(ctx context.Context, itemID int64) (int, error) {
	sql, args, err := r.sb.Select("COALESCE(MAX(ord), 0) + 1").
		From("contents").
		Where(squirrel.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build next ord query: %w", err)
	}

	var ord int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&ord); err != nil {
		return 0, fmt.Errorf("error computing next content ord: %w", err)
	}

	return ord, nil
}

// Create inserts a new content block and returns its ID
func (r *ContentRepository) Create(ctx context.Context, content *models.Content) (int64, error) {
	sql, args, err := r.sb.Insert("contents").
		Columns("item_id", "ord", "type", "content", "image", "link", "is_hidden").
		Values(content.ItemID, content.Ord, content.Type, content.Content, content.Image, content.Link, content.IsHidden).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create content query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", content.ItemID).Msg("Error executing create content query")
		return 0, fmt.Errorf("error creating content: %w", err)
	}

	return id, nil
}

// GetByID retrieves a content block by ID
func (r *ContentRepository) GetByID(ctx context.Context, id int64) (*models.Content, error) {
	sql, args, err := r.sb.Select("id", "item_id", "ord", "type", "content", "image", "link", "is_hidden").
		From("contents").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get content query: %w", err)
	}

	content := &models.Content{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&content.ID, &content.ItemID, &content.Ord, &content.Type,
		&content.Content, &content.Image, &content.Link, &content.IsHidden)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		logger.Error().Err(err).Int64("contentID", id).Msg("Error scanning content row")
		return nil, fmt.Errorf("error getting content by ID: %w", err)
	}

	return content, nil
}

// ListByItem retrieves an item's content blocks ordered by position
func (r *ContentRepository) ListByItem(ctx context.Context, itemID int64, includeHidden bool) ([]*models.Content, error) {
	builder := r.sb.Select("id", "item_id", "ord", "type", "content", "image", "link", "is_hidden").
		From("contents").
		Where(squirrel.Eq{"item_id": itemID})

	if !includeHidden {
		builder = builder.Where(squirrel.Eq{"is_hidden": false})
	}

	sql, args, err := builder.OrderBy("ord ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list contents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", itemID).Msg("Error executing list contents query")
		return nil, fmt.Errorf("error querying contents: %w", err)
	}
	defer rows.Close()

	contents := []*models.Content{}
	for rows.Next() {
		content := &models.Content{}
		if err := rows.Scan(
			&content.ID, &content.ItemID, &content.Ord, &content.Type,
			&content.Content, &content.Image, &content.Link, &content.IsHidden); err != nil {
			return nil, fmt.Errorf("error scanning content row: %w", err)
		}
		contents = append(contents, content)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating content rows: %w", err)
	}

	return contents, nil
}

// Update rewrites a content block's payload and visibility
func (r *ContentRepository) Update(ctx context.Context, content *models.Content) error {
	sql, args, err := r.sb.Update("contents").
		SetMap(map[string]interface{}{
			"type":      content.Type,
			"content":   content.Content,
			"image":     content.Image,
			"link":      content.Link,
			"is_hidden": content.IsHidden,
		}).
		Where(squirrel.Eq{"id": content.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update content query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("contentID", content.ID).Msg("Error executing update content query")
		return fmt.Errorf("error updating content: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrContentNotFound
	}

	return nil
}

// UpdateOrd moves a content block to a new position
func (r *ContentRepository) UpdateOrd(ctx context.Context, id int64, ord int) error {
	sql, args, err := r.sb.Update("contents").
		Set("ord", ord).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update content ord query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating content ord: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrContentNotFound
	}

	return nil
}

// Delete physically removes a content block
func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("contents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete content query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting content: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrContentNotFound
	}

	return nil
}
