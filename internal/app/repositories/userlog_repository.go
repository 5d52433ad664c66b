package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/pkg/logger"
)

// UserLogRepository handles audit log database operations
type UserLogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserLogRepository creates a new UserLogRepository
func NewUserLogRepository(db *pgxpool.Pool) *UserLogRepository {
	return &UserLogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Append inserts an audit log entry. The timestamp is assigned by the
// database and written back into the entry.
func (r *UserLogRepository) Append(ctx context.Context, log *models.UserLog) (int64, error) {
	sql, args, err := r.sb.Insert("user_logs").
		Columns("user_id", "level", "ip", "grp", "text", "is_hidden").
		Values(log.UserID, log.Level, log.IP, log.Group, log.Text, log.IsHidden).
		Suffix("RETURNING id, time").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build append log query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id, &log.Time)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing append log query")
		return 0, fmt.Errorf("error appending user log: %w", err)
	}

	return id, nil
}

// ListByUser retrieves a user's log entries, newest first, with pagination
func (r *UserLogRepository) ListByUser(ctx context.Context, userID int64, includeHidden bool, offset uint64, limit int) ([]*models.UserLog, int64, error) {
	where := squirrel.And{squirrel.Eq{"l.user_id": userID}}
	if !includeHidden {
		where = append(where, squirrel.Eq{"l.is_hidden": false})
	}
	return r.list(ctx, where, offset, limit)
}

// ListAll retrieves every log entry, newest first, with pagination. Entries
// without a user are included.
func (r *UserLogRepository) ListAll(ctx context.Context, includeHidden bool, offset uint64, limit int) ([]*models.UserLog, int64, error) {
	var where squirrel.And
	if !includeHidden {
		where = append(where, squirrel.Eq{"l.is_hidden": false})
	}
	return r.list(ctx, where, offset, limit)
}

func (r *UserLogRepository) list(ctx context.Context, where squirrel.And, offset uint64, limit int) ([]*models.UserLog, int64, error) {
	builder := r.sb.Select(
		"l.id", "l.user_id", "l.level", "l.time", "l.ip", "l.grp", "l.text", "l.is_hidden",
		"u.username",
		"COUNT(*) OVER() AS total_count").
		From("user_logs l").
		LeftJoin("users u ON u.id = l.user_id")

	if len(where) > 0 {
		builder = builder.Where(where)
	}

	sql, args, err := builder.
		OrderBy("l.time DESC", "l.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list logs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list logs query")
		return nil, 0, fmt.Errorf("error querying user logs: %w", err)
	}
	defer rows.Close()

	logs := []*models.UserLog{}
	var total int64
	for rows.Next() {
		entry := &models.UserLog{}
		var username *string
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Level, &entry.Time, &entry.IP,
			&entry.Group, &entry.Text, &entry.IsHidden,
			&username, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning user log row: %w", err)
		}
		if entry.UserID != nil && username != nil {
			entry.User = &models.User{ID: *entry.UserID, Username: *username}
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user log rows: %w", err)
	}

	return logs, total, nil
}
