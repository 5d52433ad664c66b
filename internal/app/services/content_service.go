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

// ContentStore is the content persistence surface the content service needs.
type ContentStore interface {
	NextOrd(ctx context.Context, itemID int64) (int, error)
	Create(ctx context.Context, content *models.Content) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Content, error)
	ListByItem(ctx context.Context, itemID int64, includeHidden bool) ([]*models.Content, error)
	Update(ctx context.Context, content *models.Content) error
	UpdateOrd(ctx context.Context, id int64, ord int) error
	Delete(ctx context.Context, id int64) error
}

// FileStore removes stored upload files.
type FileStore interface {
	DeleteFile(path string) error
}

// ContentService implements content block operations
type ContentService struct {
	items    ItemStore
	contents ContentStore
	files    FileStore
}

// NewContentService creates a new ContentService
func NewContentService(items ItemStore, contents ContentStore, files FileStore) *ContentService {
	return &ContentService{
		items:    items,
		contents: contents,
		files:    files,
	}
}

// Create appends a content block to an item. Only the host or an admin may
// add contents. For IMAGE blocks the stored image path is passed separately
// by the upload handler.
func (s *ContentService) Create(ctx context.Context, itemID, actorID int64, isAdmin bool, req dto.CreateContentRequest, image *string) (*models.Content, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}
	if !canModify(actorID, item.HostID, isAdmin) {
		return nil, apperrors.NewForbiddenError("Only the host may add contents")
	}
	if item.IsDeleted {
		return nil, apperrors.ErrItemDeleted
	}

	content := &models.Content{
		ItemID:   itemID,
		Type:     models.ContentType(req.Type),
		Content:  req.Content,
		Image:    image,
		Link:     req.Link,
		IsHidden: req.IsHidden,
	}

	if !content.Type.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Content type must be TEXT, IMAGE or VIDEO")
	}
	if !content.PayloadMatchesType() {
		return nil, apperrors.ErrContentPayload
	}

	ord, err := s.contents.NextOrd(ctx, itemID)
	if err != nil {
		return nil, err
	}
	content.Ord = ord

	id, err := s.contents.Create(ctx, content)
	if err != nil {
		return nil, err
	}
	content.ID = id

	logger.Info().Int64("contentID", id).Int64("itemID", itemID).Msg("Content created")

	return content, nil
}

// Get retrieves a single content block
func (s *ContentService) Get(ctx context.Context, id int64) (*models.Content, error) {
	content, err := s.contents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, err
	}
	return content, nil
}

// ListByItem retrieves an item's content blocks in display order
func (s *ContentService) ListByItem(ctx context.Context, itemID int64, includeHidden bool) ([]*models.Content, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}
	return s.contents.ListByItem(ctx, itemID, includeHidden)
}

// Update modifies a content block's payload, visibility or position. The
// block keeps its type; payload fields must still match it.
func (s *ContentService) Update(ctx context.Context, id, actorID int64, isAdmin bool, req dto.UpdateContentRequest, image *string) (*models.Content, error) {
	content, err := s.contents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, err
	}

	item, err := s.items.GetByID(ctx, content.ItemID)
	if err != nil {
		return nil, err
	}
	if !canModify(actorID, item.HostID, isAdmin) {
		return nil, apperrors.NewForbiddenError("Only the host may update contents")
	}

	oldImage := content.Image

	if req.Content != nil {
		content.Content = req.Content
	}
	if req.Link != nil {
		content.Link = req.Link
	}
	if image != nil {
		content.Image = image
	}
	if req.IsHidden != nil {
		content.IsHidden = *req.IsHidden
	}

	if !content.PayloadMatchesType() {
		return nil, apperrors.ErrContentPayload
	}

	if err := s.contents.Update(ctx, content); err != nil {
		return nil, err
	}

	if req.Ord != nil && *req.Ord != content.Ord {
		if err := s.contents.UpdateOrd(ctx, id, *req.Ord); err != nil {
			return nil, err
		}
		content.Ord = *req.Ord
	}

	// Replaced image files are removed after the row is updated
	if image != nil && oldImage != nil && *oldImage != *image {
		if err := s.files.DeleteFile(*oldImage); err != nil {
			logger.Warn().Err(err).Str("path", *oldImage).Msg("Failed to remove replaced image")
		}
	}

	return content, nil
}

// Delete removes a content block and its stored image file, if any
func (s *ContentService) Delete(ctx context.Context, id, actorID int64, isAdmin bool) error {
	content, err := s.contents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrContentNotFound
		}
		return err
	}

	item, err := s.items.GetByID(ctx, content.ItemID)
	if err != nil {
		return err
	}
	if !canModify(actorID, item.HostID, isAdmin) {
		return apperrors.NewForbiddenError("Only the host may delete contents")
	}

	if err := s.contents.Delete(ctx, id); err != nil {
		return err
	}

	if content.Image != nil && *content.Image != "" {
		if err := s.files.DeleteFile(*content.Image); err != nil {
			logger.Warn().Err(err).Str("path", *content.Image).Msg("Failed to remove image file")
		}
	}

	return nil
}
