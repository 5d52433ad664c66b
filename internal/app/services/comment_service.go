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

// CommentStore is the comment persistence surface the comment service needs.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByItem(ctx context.Context, itemID int64, includeDeleted bool) ([]*models.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	SoftDelete(ctx context.Context, id int64) error
}

// CommentService implements comment operations
type CommentService struct {
	items    ItemStore
	comments CommentStore
}

// NewCommentService creates a new CommentService
func NewCommentService(items ItemStore, comments CommentStore) *CommentService {
	return &CommentService{
		items:    items,
		comments: comments,
	}
}

// Create posts a comment on an item. Comments on deleted items are rejected.
func (s *CommentService) Create(ctx context.Context, itemID, writerID int64, req dto.CreateCommentRequest) (*models.Comment, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}
	if item.IsDeleted {
		return nil, apperrors.ErrItemDeleted
	}

	comment := &models.Comment{
		ItemID:   itemID,
		WriterID: writerID,
		Content:  req.Content,
	}

	id, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id

	logger.Debug().Int64("commentID", id).Int64("itemID", itemID).Msg("Comment created")

	return comment, nil
}

// ListByItem retrieves an item's comments, oldest first
func (s *CommentService) ListByItem(ctx context.Context, itemID int64, includeDeleted bool) ([]*models.Comment, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}
	return s.comments.ListByItem(ctx, itemID, includeDeleted)
}

// Update replaces a comment's text. Only the writer may edit; the creation
// timestamp never changes.
func (s *CommentService) Update(ctx context.Context, id, actorID int64, req dto.CreateCommentRequest) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}

	if comment.WriterID != actorID {
		return nil, apperrors.NewForbiddenError("Only the writer may edit this comment")
	}
	if comment.IsDeleted {
		return nil, apperrors.ErrCommentNotFound
	}

	if err := s.comments.UpdateContent(ctx, id, req.Content); err != nil {
		return nil, err
	}
	comment.Content = req.Content

	return comment, nil
}

// Delete soft-deletes a comment. The writer or an admin may delete.
func (s *CommentService) Delete(ctx context.Context, id, actorID int64, isAdmin bool) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return err
	}

	if !canModify(actorID, comment.WriterID, isAdmin) {
		return apperrors.NewForbiddenError("Only the writer may delete this comment")
	}

	return s.comments.SoftDelete(ctx, id)
}
