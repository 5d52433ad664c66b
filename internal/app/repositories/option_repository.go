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

// Option error types
var (
	ErrOptionNotFound     = ErrNotFound
	ErrOptionItemNotFound = ErrNotFound
)

// OptionRepository handles option category and option item database operations
type OptionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOptionRepository creates a new OptionRepository
func NewOptionRepository(db *pgxpool.Pool) *OptionRepository {
	return &OptionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateCategory inserts a new option category and returns its ID
func (r *OptionRepository) CreateCategory(ctx context.Context, category *models.OptionCategory) (int64, error) {
	sql, args, err := r.sb.Insert("option_categories").
		Columns("item_id", "name").
		Values(category.ItemID, category.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create category query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", category.ItemID).Msg("Error executing create category query")
		return 0, fmt.Errorf("error creating option category: %w", err)
	}

	return id, nil
}

// GetCategoryByID retrieves an option category with its option items
func (r *OptionRepository) GetCategoryByID(ctx context.Context, id int64) (*models.OptionCategory, error) {
	sql, args, err := r.sb.Select("id", "item_id", "name").
		From("option_categories").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get category query: %w", err)
	}

	category := &models.OptionCategory{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&category.ID, &category.ItemID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOptionNotFound
		}
		logger.Error().Err(err).Int64("categoryID", id).Msg("Error scanning category row")
		return nil, fmt.Errorf("error getting option category by ID: %w", err)
	}

	items, err := r.listItemsByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.OptionItems = items

	return category, nil
}

// ListCategoriesByItem retrieves all option categories of an item, each with
// its option items populated.
func (r *OptionRepository) ListCategoriesByItem(ctx context.Context, itemID int64) ([]*models.OptionCategory, error) {
	sql, args, err := r.sb.Select("id", "item_id", "name").
		From("option_categories").
		Where(squirrel.Eq{"item_id": itemID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("itemID", itemID).Msg("Error executing list categories query")
		return nil, fmt.Errorf("error querying option categories: %w", err)
	}
	defer rows.Close()

	categories := []*models.OptionCategory{}
	for rows.Next() {
		category := &models.OptionCategory{}
		if err := rows.Scan(&category.ID, &category.ItemID, &category.Name); err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	rows.Close()

	for _, category := range categories {
		items, err := r.listItemsByCategory(ctx, category.ID)
		if err != nil {
			return nil, err
		}
		category.OptionItems = items
	}

	return categories, nil
}

// CountCategoriesByItem returns how many option categories an item has
func (r *OptionRepository) CountCategoriesByItem(ctx context.Context, itemID int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("option_categories").
		Where(squirrel.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count categories query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting option categories: %w", err)
	}

	return count, nil
}

// UpdateCategory renames an option category
func (r *OptionRepository) UpdateCategory(ctx context.Context, id int64, name string) error {
	sql, args, err := r.sb.Update("option_categories").
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating option category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrOptionNotFound
	}

	return nil
}

// DeleteCategory removes a category; its option items go with it
func (r *OptionRepository) DeleteCategory(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("option_categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("categoryID", id).Msg("Error executing delete category query")
		return fmt.Errorf("error deleting option category: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrOptionNotFound
	}

	return nil
}

// CreateItem inserts a new option item under a category and returns its ID
func (r *OptionRepository) CreateItem(ctx context.Context, item *models.OptionItem) (int64, error) {
	sql, args, err := r.sb.Insert("option_items").
		Columns("category_id", "name", "price_delta").
		Values(item.CategoryID, item.Name, item.PriceDelta).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create option item query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Int64("categoryID", item.CategoryID).Msg("Error executing create option item query")
		return 0, fmt.Errorf("error creating option item: %w", err)
	}

	return id, nil
}

// GetItemByID retrieves an option item by ID
func (r *OptionRepository) GetItemByID(ctx context.Context, id int64) (*models.OptionItem, error) {
	sql, args, err := r.sb.Select("id", "category_id", "name", "price_delta").
		From("option_items").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get option item query: %w", err)
	}

	item := &models.OptionItem{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&item.ID, &item.CategoryID, &item.Name, &item.PriceDelta)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOptionItemNotFound
		}
		return nil, fmt.Errorf("error getting option item by ID: %w", err)
	}

	return item, nil
}

// GetItemsByIDs retrieves the option items matching the given IDs. Missing
// IDs simply do not appear in the result; callers compare lengths.
func (r *OptionRepository) GetItemsByIDs(ctx context.Context, ids []int64) ([]*models.OptionItem, error) {
	if len(ids) == 0 {
		return []*models.OptionItem{}, nil
	}

	sql, args, err := r.sb.Select("id", "category_id", "name", "price_delta").
		From("option_items").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get option items query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying option items: %w", err)
	}
	defer rows.Close()

	items := []*models.OptionItem{}
	for rows.Next() {
		item := &models.OptionItem{}
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.PriceDelta); err != nil {
			return nil, fmt.Errorf("error scanning option item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating option item rows: %w", err)
	}

	return items, nil
}

// UpdateItem rewrites an option item's name and price delta
func (r *OptionRepository) UpdateItem(ctx context.Context, item *models.OptionItem) error {
	sql, args, err := r.sb.Update("option_items").
		SetMap(map[string]interface{}{
			"name":        item.Name,
			"price_delta": item.PriceDelta,
		}).
		Where(squirrel.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update option item query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating option item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrOptionItemNotFound
	}

	return nil
}

// DeleteItem removes an option item
func (r *OptionRepository) DeleteItem(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("option_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete option item query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting option item: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrOptionItemNotFound
	}

	return nil
}

func (r *OptionRepository) listItemsByCategory(ctx context.Context, categoryID int64) ([]*models.OptionItem, error) {
	sql, args, err := r.sb.Select("id", "category_id", "name", "price_delta").
		From("option_items").
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list option items query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying option items: %w", err)
	}
	defer rows.Close()

	items := []*models.OptionItem{}
	for rows.Next() {
		item := &models.OptionItem{}
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.PriceDelta); err != nil {
			return nil, fmt.Errorf("error scanning option item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating option item rows: %w", err)
	}

	return items, nil
}
