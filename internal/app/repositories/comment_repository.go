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

// Comment error types
var (
	ErrCommentNotFound = ErrNotFound
)

// CommentRepository handles comment database operations
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new comment and returns its ID. The creation timestamp is
// assigned by the database and never changes afterwards.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (int64, error) {
	sql, args, err := r.sb.Insert("comments").
		Columns("item_id", "writer_id", "content").
		Values(comment.ItemID, comment.WriterID, comment.Content).
		Suffix("RETURNING id, created_date").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create comment query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &comment.CreatedDate)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", comment.ItemID).Msg("Error executing create comment query")
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	return id, nil
}

// GetByID retrieves a comment by ID
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	sql, args, err := r.sb.Select("id", "item_id", "writer_id", "content", "created_date", "is_deleted").
		From("comments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get comment query: %w", err)
	}

	comment := &models.Comment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&comment.ID, &comment.ItemID, &comment.WriterID,
		&comment.Content, &comment.CreatedDate, &comment.IsDeleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		logger.Error().Err(err).Int64("commentID", id).Msg("Error scanning comment row")
		return nil, fmt.Errorf("error getting comment by ID: %w", err)
	}

	return comment, nil
}

// ListByItem retrieves an item's comments with their writers, oldest first
func (r *CommentRepository) ListByItem(ctx context.Context, itemID int64, includeDeleted bool) ([]*models.Comment, error) {
	builder := r.sb.Select(
		"c.id", "c.item_id", "c.writer_id", "c.content", "c.created_date", "c.is_deleted",
		"u.id", "u.username", "u.email", "u.is_admin", "u.created_at").
		From("comments c").
		Join("users u ON u.id = c.writer_id").
		Where(squirrel.Eq{"c.item_id": itemID})

	if !includeDeleted {
		builder = builder.Where(squirrel.Eq{"c.is_deleted": false})
	}

	sql, args, err := builder.OrderBy("c.created_date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", itemID).Msg("Error executing list comments query")
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		comment := &models.Comment{Writer: &models.User{}}
		if err := rows.Scan(
			&comment.ID, &comment.ItemID, &comment.WriterID,
			&comment.Content, &comment.CreatedDate, &comment.IsDeleted,
			&comment.Writer.ID, &comment.Writer.Username, &comment.Writer.Email,
			&comment.Writer.IsAdmin, &comment.Writer.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, nil
}

// UpdateContent replaces a comment's text only
func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	sql, args, err := r.sb.Update("comments").
		Set("content", content).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update comment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("commentID", id).Msg("Error executing update comment query")
		return fmt.Errorf("error updating comment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// SoftDelete flips is_deleted on a comment
func (r *CommentRepository) SoftDelete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("comments").
		Set("is_deleted", true).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build soft delete comment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error soft deleting comment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}

	return nil
}
