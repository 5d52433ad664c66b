package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/services"
	"github.com/jaeho/gongu/internal/middleware"
	"github.com/jaeho/gongu/internal/pkg/filestorage"
)

// ContentController handles item content block operations
type ContentController struct {
	contentService *services.ContentService
	storage        *filestorage.LocalStorage
}

// NewContentController creates a new ContentController
func NewContentController(contentService *services.ContentService, storage *filestorage.LocalStorage) *ContentController {
	return &ContentController{
		contentService: contentService,
		storage:        storage,
	}
}

// CreateContent appends a TEXT or VIDEO block to an item
// @Summary Add a content block
// @Description Appends a TEXT or VIDEO content block at the next position. Image blocks go through the image upload endpoint.
// @Tags contents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Param request body dto.CreateContentRequest true "Content data"
// @Success 201 {object} dto.APIResponse{data=models.Content} "Content created"
// @Failure 400 {object} dto.ErrorResponse "Payload does not match content type"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/contents [post]
func (c *ContentController) CreateContent(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	content, err := c.contentService.Create(ctx, itemID,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), req, nil)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      content,
		Timestamp: time.Now(),
	})
}

// UploadImageContent appends an IMAGE block from a multipart upload
// @Summary Add an image content block
// @Description Stores the uploaded image and appends an IMAGE block at the next position
// @Tags contents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Param image formData file true "Image file"
// @Param isHidden formData bool false "Hide the block"
// @Success 201 {object} dto.APIResponse{data=models.Content} "Content created"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/contents/image [post]
func (c *ContentController) UploadImageContent(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Image file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	path, err := c.storage.SaveFile(file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	req := dto.CreateContentRequest{
		Type:     "IMAGE",
		IsHidden: ctx.PostForm("isHidden") == "true",
	}

	content, err := c.contentService.Create(ctx, itemID,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), req, &path)
	if err != nil {
		// The block was rejected, drop the stored file
		_ = c.storage.DeleteFile(path)
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      content,
		Timestamp: time.Now(),
	})
}

// ListContents retrieves an item's content blocks
// @Summary List content blocks
// @Description Retrieves an item's content blocks in display order
// @Tags contents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Content} "Contents retrieved"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/contents [get]
func (c *ContentController) ListContents(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	contents, err := c.contentService.ListByItem(ctx, itemID, false)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      contents,
		Timestamp: time.Now(),
	})
}

// UpdateContent modifies a content block
// @Summary Update a content block
// @Description Updates a block's payload, visibility or position. The type stays fixed.
// @Tags contents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID" Format(int64) minimum(1)
// @Param request body dto.UpdateContentRequest true "Updated fields"
// @Success 200 {object} dto.APIResponse{data=models.Content} "Content updated"
// @Failure 400 {object} dto.ErrorResponse "Payload does not match content type"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contents/{id} [put]
func (c *ContentController) UpdateContent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	content, err := c.contentService.Update(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), req, nil)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      content,
		Timestamp: time.Now(),
	})
}

// DeleteContent removes a content block
// @Summary Delete a content block
// @Description Removes a block and its stored image file, if any
// @Tags contents
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Content deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Content not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /contents/{id} [delete]
func (c *ContentController) DeleteContent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.contentService.Delete(ctx, id, middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Content deleted"},
		Timestamp: time.Now(),
	})
}
