package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/repositories"
	"github.com/jaeho/gongu/internal/app/services"
	"github.com/jaeho/gongu/internal/middleware"
	"github.com/jaeho/gongu/internal/pkg/helpers"
)

// ItemController handles group-buy item operations
type ItemController struct {
	itemService *services.ItemService
}

// NewItemController creates a new ItemController
func NewItemController(itemService *services.ItemService) *ItemController {
	return &ItemController{itemService: itemService}
}

// CreateItem handles item creation
// @Summary Create an item
// @Description Creates a group-buy item hosted by the authenticated user
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateItemRequest true "Item data"
// @Success 201 {object} dto.APIResponse{data=models.Item} "Item created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items [post]
func (c *ItemController) CreateItem(ctx *gin.Context) {
	var req dto.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	item, err := c.itemService.Create(ctx, middleware.CurrentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// GetItem retrieves an item with its contents and option categories
// @Summary Get item details
// @Description Retrieves an item with its visible contents and options
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Item} "Item retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid item ID"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 410 {object} dto.ErrorResponse "Item deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id} [get]
func (c *ItemController) GetItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	item, err := c.itemService.Get(ctx, id, middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// ListItems retrieves items with filters and pagination
// @Summary List items
// @Description Retrieves items, newest first. Supports host, search and open filters.
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(20)
// @Param hostId query int false "Filter by host"
// @Param search query string false "Title substring filter"
// @Param open query bool false "Only items open for joining"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Items retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items [get]
func (c *ItemController) ListItems(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := repositories.ItemFilter{}
	if hostStr := ctx.Query("hostId"); hostStr != "" {
		if hostID, err := strconv.ParseInt(hostStr, 10, 64); err == nil {
			filter.HostID = &hostID
		}
	}
	if search := ctx.Query("search"); search != "" {
		filter.Search = &search
	}
	filter.OpenOnly = ctx.Query("open") == "true"
	// Deleted items stay listed for admins only
	filter.IncludeDeleted = middleware.CurrentUserIsAdmin(ctx) && ctx.Query("includeDeleted") == "true"

	items, pagination, err := c.itemService.List(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      items,
			Pagination: pagination,
		},
		Timestamp: time.Now(),
	})
}

// UpdateItem modifies an item's mutable fields
// @Summary Update an item
// @Description Updates title, price, join type or delivery date. The deadline cannot change.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Param request body dto.UpdateItemRequest true "Updated fields"
// @Success 200 {object} dto.APIResponse{data=models.Item} "Item updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id} [put]
func (c *ItemController) UpdateItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	item, err := c.itemService.Update(ctx, id, middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      item,
		Timestamp: time.Now(),
	})
}

// DeleteItem removes an item
// @Summary Delete an item
// @Description Soft-deletes an item. With permanent=true an admin removes it and everything under it.
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Param permanent query bool false "Physically delete (admin only)"
// @Success 200 {object} dto.APIResponse "Item deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id} [delete]
func (c *ItemController) DeleteItem(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var err error
	if ctx.Query("permanent") == "true" {
		err = c.itemService.Delete(ctx, id, middleware.CurrentUserIsAdmin(ctx))
	} else {
		err = c.itemService.SoftDelete(ctx, id, middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Item deleted"},
		Timestamp: time.Now(),
	})
}
