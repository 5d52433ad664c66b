package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/services"
	"github.com/jaeho/gongu/internal/middleware"
)

// CommentController handles item comment operations
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// CreateComment posts a comment on an item
// @Summary Post a comment
// @Description Posts a comment on an item. Deleted items reject comments.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Param request body dto.CreateCommentRequest true "Comment text"
// @Success 201 {object} dto.APIResponse{data=models.Comment} "Comment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 410 {object} dto.ErrorResponse "Item deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/comments [post]
func (c *CommentController) CreateComment(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	comment, err := c.commentService.Create(ctx, itemID, middleware.CurrentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      comment,
		Timestamp: time.Now(),
	})
}

// ListComments retrieves an item's comments
// @Summary List comments
// @Description Retrieves an item's comments with their writers, oldest first
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Comment} "Comments retrieved"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/comments [get]
func (c *CommentController) ListComments(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	comments, err := c.commentService.ListByItem(ctx, itemID, false)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      comments,
		Timestamp: time.Now(),
	})
}

// UpdateComment replaces a comment's text
// @Summary Edit a comment
// @Description Replaces the comment text. Only the writer may edit; the creation time never changes.
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID" Format(int64) minimum(1)
// @Param request body dto.CreateCommentRequest true "New text"
// @Success 200 {object} dto.APIResponse{data=models.Comment} "Comment updated"
// @Failure 403 {object} dto.ErrorResponse "Not the writer"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id} [put]
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	comment, err := c.commentService.Update(ctx, id, middleware.CurrentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      comment,
		Timestamp: time.Now(),
	})
}

// DeleteComment soft-deletes a comment
// @Summary Delete a comment
// @Description Soft-deletes a comment. The writer or an admin may delete.
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Comment deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id} [delete]
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.commentService.Delete(ctx, id, middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Comment deleted"},
		Timestamp: time.Now(),
	})
}
