package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/services"
	"github.com/jaeho/gongu/internal/middleware"
)

// OptionController handles option category and option item operations
type OptionController struct {
	optionService *services.OptionService
}

// NewOptionController creates a new OptionController
func NewOptionController(optionService *services.OptionService) *OptionController {
	return &OptionController{optionService: optionService}
}

// CreateCategory adds an option category to an item
// @Summary Create an option category
// @Description Adds an option category, e.g. "Size". Host or admin only.
// @Tags options
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Param request body dto.CreateOptionCategoryRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=models.OptionCategory} "Category created"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/options [post]
func (c *OptionController) CreateCategory(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateOptionCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	category, err := c.optionService.CreateCategory(ctx, itemID,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// ListCategories retrieves an item's option categories
// @Summary List option categories
// @Description Retrieves all option categories of an item with their items
// @Tags options
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.OptionCategory} "Categories retrieved"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/options [get]
func (c *OptionController) ListCategories(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	categories, err := c.optionService.ListByItem(ctx, itemID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      categories,
		Timestamp: time.Now(),
	})
}

// GetCategory retrieves an option category
// @Summary Get an option category
// @Description Retrieves an option category with its option items
// @Tags options
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.OptionCategory} "Category retrieved"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /options/{id} [get]
func (c *OptionController) GetCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := c.optionService.GetCategory(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// UpdateCategory renames an option category
// @Summary Rename an option category
// @Tags options
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID" Format(int64) minimum(1)
// @Param request body dto.CreateOptionCategoryRequest true "New name"
// @Success 200 {object} dto.APIResponse{data=models.OptionCategory} "Category updated"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /options/{id} [put]
func (c *OptionController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateOptionCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	category, err := c.optionService.UpdateCategory(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      category,
		Timestamp: time.Now(),
	})
}

// DeleteCategory removes a category and its option items
// @Summary Delete an option category
// @Tags options
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Category deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /options/{id} [delete]
func (c *OptionController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.optionService.DeleteCategory(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Category deleted"},
		Timestamp: time.Now(),
	})
}

// CreateOptionItem adds a choice to a category
// @Summary Create an option item
// @Description Adds a selectable choice with a signed price delta. Host or admin only.
// @Tags options
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID" Format(int64) minimum(1)
// @Param request body dto.CreateOptionItemRequest true "Option item data"
// @Success 201 {object} dto.APIResponse{data=models.OptionItem} "Option item created"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /options/{id}/items [post]
func (c *OptionController) CreateOptionItem(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateOptionItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	optionItem, err := c.optionService.CreateOptionItem(ctx, categoryID,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      optionItem,
		Timestamp: time.Now(),
	})
}

// UpdateOptionItem rewrites an option item
// @Summary Update an option item
// @Tags options
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Option item ID" Format(int64) minimum(1)
// @Param request body dto.CreateOptionItemRequest true "Updated fields"
// @Success 200 {object} dto.APIResponse{data=models.OptionItem} "Option item updated"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Option item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /option-items/{id} [put]
func (c *OptionController) UpdateOptionItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateOptionItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	optionItem, err := c.optionService.UpdateOptionItem(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      optionItem,
		Timestamp: time.Now(),
	})
}

// DeleteOptionItem removes an option item
// @Summary Delete an option item
// @Tags options
// @Produce json
// @Security BearerAuth
// @Param id path int true "Option item ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Option item deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Option item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /option-items/{id} [delete]
func (c *OptionController) DeleteOptionItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.optionService.DeleteOptionItem(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Option item deleted"},
		Timestamp: time.Now(),
	})
}
