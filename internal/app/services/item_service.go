package services

import (
	"context"
	"errors"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/repositories"
	"github.com/jaeho/gongu/internal/pkg/apperrors"
	"github.com/jaeho/gongu/internal/pkg/helpers"
	"github.com/jaeho/gongu/internal/pkg/logger"
	"github.com/jaeho/gongu/internal/pkg/validation"
)

// ItemStore is the item persistence surface the services need.
type ItemStore interface {
	Create(ctx context.Context, item *models.Item) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	List(ctx context.Context, filter repositories.ItemFilter, offset uint64, limit int) ([]*models.Item, int64, error)
	Update(ctx context.Context, item *models.Item) error
	SoftDelete(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// ContentLister loads an item's content blocks.
type ContentLister interface {
	ListByItem(ctx context.Context, itemID int64, includeHidden bool) ([]*models.Content, error)
}

// CategoryLister loads an item's option categories with their items.
type CategoryLister interface {
	ListCategoriesByItem(ctx context.Context, itemID int64) ([]*models.OptionCategory, error)
}

// ItemService implements group-buy item operations
type ItemService struct {
	items      ItemStore
	contents   ContentLister
	categories CategoryLister
}

// NewItemService creates a new ItemService
func NewItemService(items ItemStore, contents ContentLister, categories CategoryLister) *ItemService {
	return &ItemService{
		items:      items,
		contents:   contents,
		categories: categories,
	}
}

// Create creates a new item hosted by hostID
func (s *ItemService) Create(ctx context.Context, hostID int64, req dto.CreateItemRequest) (*models.Item, error) {
	if !validation.IsValidTitle(req.Title) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid item title")
	}

	joinType := models.JoinType(req.JoinType)
	if !joinType.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Join type must be OPEN or CLOSED")
	}

	item := &models.Item{
		Title:        req.Title,
		HostID:       hostID,
		Price:        req.Price,
		JoinType:     joinType,
		Deadline:     req.Deadline,
		DeliveryDate: req.DeliveryDate,
	}

	id, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = id

	logger.Info().Int64("itemID", id).Int64("hostID", hostID).Msg("Item created")

	return item, nil
}

// Get retrieves an item with its visible contents and option categories.
// Soft-deleted items are only visible to admins and the host.
func (s *ItemService) Get(ctx context.Context, id, viewerID int64, isAdmin bool) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}

	if item.IsDeleted && !canModify(viewerID, item.HostID, isAdmin) {
		return nil, apperrors.ErrItemDeleted
	}

	includeHidden := canModify(viewerID, item.HostID, isAdmin)

	contents, err := s.contents.ListByItem(ctx, id, includeHidden)
	if err != nil {
		return nil, err
	}
	item.Contents = contents

	categories, err := s.categories.ListCategoriesByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.OptionCategories = categories

	return item, nil
}

// List retrieves items matching the filter with pagination metadata
func (s *ItemService) List(ctx context.Context, filter repositories.ItemFilter, page, size int) ([]*models.Item, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	items, total, err := s.items.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return items, helpers.NewPaginationInfo(total, page, limit), nil
}

// Update modifies an item's mutable fields. Only the host or an admin may
// update, and the deadline never changes after creation.
func (s *ItemService) Update(ctx context.Context, id, actorID int64, isAdmin bool, req dto.UpdateItemRequest) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}

	if !canModify(actorID, item.HostID, isAdmin) {
		return nil, apperrors.NewForbiddenError("Only the host may update this item")
	}
	if item.IsDeleted {
		return nil, apperrors.ErrItemDeleted
	}
	if !validation.IsValidTitle(req.Title) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid item title")
	}

	joinType := models.JoinType(req.JoinType)
	if !joinType.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Join type must be OPEN or CLOSED")
	}

	item.Title = req.Title
	item.Price = req.Price
	item.JoinType = joinType
	item.DeliveryDate = req.DeliveryDate

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// SoftDelete marks an item deleted without removing any rows
func (s *ItemService) SoftDelete(ctx context.Context, id, actorID int64, isAdmin bool) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrItemNotFound
		}
		return err
	}

	if !canModify(actorID, item.HostID, isAdmin) {
		return apperrors.NewForbiddenError("Only the host may delete this item")
	}

	if err := s.items.SoftDelete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("itemID", id).Int64("actorID", actorID).Msg("Item soft deleted")

	return nil
}

// Delete physically removes an item and everything under it. Admin only.
func (s *ItemService) Delete(ctx context.Context, id int64, isAdmin bool) error {
	if !isAdmin {
		return apperrors.NewForbiddenError("Only administrators may permanently delete items")
	}

	if err := s.items.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrItemNotFound
		}
		return err
	}

	logger.Warn().Int64("itemID", id).Msg("Item permanently deleted")

	return nil
}
