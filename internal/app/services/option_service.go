package services

import (
	"context"
	"errors"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/repositories"
	"github.com/jaeho/gongu/internal/pkg/apperrors"
	"github.com/jaeho/gongu/internal/pkg/logger"
)

// OptionStore is the option persistence surface the option service needs.
type OptionStore interface {
	CreateCategory(ctx context.Context, category *models.OptionCategory) (int64, error)
	GetCategoryByID(ctx context.Context, id int64) (*models.OptionCategory, error)
	ListCategoriesByItem(ctx context.Context, itemID int64) ([]*models.OptionCategory, error)
	UpdateCategory(ctx context.Context, id int64, name string) error
	DeleteCategory(ctx context.Context, id int64) error
	CreateItem(ctx context.Context, item *models.OptionItem) (int64, error)
	GetItemByID(ctx context.Context, id int64) (*models.OptionItem, error)
	UpdateItem(ctx context.Context, item *models.OptionItem) error
	DeleteItem(ctx context.Context, id int64) error
}

// OptionService implements option category and option item operations
type OptionService struct {
	items   ItemStore
	options OptionStore
}

// NewOptionService creates a new OptionService
func NewOptionService(items ItemStore, options OptionStore) *OptionService {
	return &OptionService{
		items:   items,
		options: options,
	}
}

// CreateCategory adds an option category to an item. Host or admin only.
func (s *OptionService) CreateCategory(ctx context.Context, itemID, actorID int64, isAdmin bool, req dto.CreateOptionCategoryRequest) (*models.OptionCategory, error) {
	if err := s.authorizeItem(ctx, itemID, actorID, isAdmin); err != nil {
		return nil, err
	}

	category := &models.OptionCategory{
		ItemID: itemID,
		Name:   req.Name,
	}

	id, err := s.options.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	category.ID = id
	category.OptionItems = []*models.OptionItem{}

	logger.Debug().Int64("categoryID", id).Int64("itemID", itemID).Msg("Option category created")

	return category, nil
}

// GetCategory retrieves an option category with its option items
func (s *OptionService) GetCategory(ctx context.Context, id int64) (*models.OptionCategory, error) {
	category, err := s.options.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrOptionNotFound
		}
		return nil, err
	}
	return category, nil
}

// ListByItem retrieves all option categories of an item
func (s *OptionService) ListByItem(ctx context.Context, itemID int64) ([]*models.OptionCategory, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}
	return s.options.ListCategoriesByItem(ctx, itemID)
}

// UpdateCategory renames an option category. Host or admin only.
func (s *OptionService) UpdateCategory(ctx context.Context, id, actorID int64, isAdmin bool, req dto.CreateOptionCategoryRequest) (*models.OptionCategory, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeItem(ctx, category.ItemID, actorID, isAdmin); err != nil {
		return nil, err
	}

	if err := s.options.UpdateCategory(ctx, id, req.Name); err != nil {
		return nil, err
	}
	category.Name = req.Name

	return category, nil
}

// DeleteCategory removes a category and its option items. Host or admin only.
func (s *OptionService) DeleteCategory(ctx context.Context, id, actorID int64, isAdmin bool) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeItem(ctx, category.ItemID, actorID, isAdmin); err != nil {
		return err
	}

	return s.options.DeleteCategory(ctx, id)
}

// CreateOptionItem adds a choice to an option category. Host or admin only.
func (s *OptionService) CreateOptionItem(ctx context.Context, categoryID, actorID int64, isAdmin bool, req dto.CreateOptionItemRequest) (*models.OptionItem, error) {
	category, err := s.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeItem(ctx, category.ItemID, actorID, isAdmin); err != nil {
		return nil, err
	}

	optionItem := &models.OptionItem{
		CategoryID: categoryID,
		Name:       req.Name,
		PriceDelta: req.PriceDelta,
	}

	id, err := s.options.CreateItem(ctx, optionItem)
	if err != nil {
		return nil, err
	}
	optionItem.ID = id

	return optionItem, nil
}

// UpdateOptionItem rewrites an option item. Host or admin only.
func (s *OptionService) UpdateOptionItem(ctx context.Context, id, actorID int64, isAdmin bool, req dto.CreateOptionItemRequest) (*models.OptionItem, error) {
	optionItem, err := s.options.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrOptionItemNotFound
		}
		return nil, err
	}

	category, err := s.GetCategory(ctx, optionItem.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeItem(ctx, category.ItemID, actorID, isAdmin); err != nil {
		return nil, err
	}

	optionItem.Name = req.Name
	optionItem.PriceDelta = req.PriceDelta

	if err := s.options.UpdateItem(ctx, optionItem); err != nil {
		return nil, err
	}

	return optionItem, nil
}

// DeleteOptionItem removes an option item. Host or admin only.
func (s *OptionService) DeleteOptionItem(ctx context.Context, id, actorID int64, isAdmin bool) error {
	optionItem, err := s.options.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrOptionItemNotFound
		}
		return err
	}

	category, err := s.GetCategory(ctx, optionItem.CategoryID)
	if err != nil {
		return err
	}
	if err := s.authorizeItem(ctx, category.ItemID, actorID, isAdmin); err != nil {
		return err
	}

	return s.options.DeleteItem(ctx, id)
}

func (s *OptionService) authorizeItem(ctx context.Context, itemID, actorID int64, isAdmin bool) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrItemNotFound
		}
		return err
	}
	if !canModify(actorID, item.HostID, isAdmin) {
		return apperrors.NewForbiddenError("Only the host may manage options")
	}
	if item.IsDeleted {
		return apperrors.ErrItemDeleted
	}
	return nil
}
