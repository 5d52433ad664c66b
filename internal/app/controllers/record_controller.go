package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/services"
	"github.com/jaeho/gongu/internal/middleware"
)

// RecordController handles participation record operations
type RecordController struct {
	recordService *services.RecordService
}

// NewRecordController creates a new RecordController
func NewRecordController(recordService *services.RecordService) *RecordController {
	return &RecordController{recordService: recordService}
}

// CreateRecord joins the caller to an item
// @Summary Join an item
// @Description Creates a participation record with a quantity and one option per category. The payment total is recomputed.
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Param request body dto.CreateRecordRequest true "Selection and quantity"
// @Success 201 {object} dto.APIResponse{data=dto.RecordResponse} "Record created"
// @Failure 400 {object} dto.ErrorResponse "Bad selection or quantity"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 409 {object} dto.ErrorResponse "Item closed or past deadline"
// @Failure 410 {object} dto.ErrorResponse "Item deleted"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/records [post]
func (c *RecordController) CreateRecord(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	record, cost, err := c.recordService.Create(ctx, itemID, middleware.CurrentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.RecordResponse{Record: record, Cost: cost},
		Timestamp: time.Now(),
	})
}

// ListRecords retrieves all records of an item
// @Summary List an item's records
// @Description Retrieves every record of an item with costs. Host or admin only.
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.RecordResponse} "Records retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/records [get]
func (c *RecordController) ListRecords(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	records, err := c.recordService.ListByItem(ctx, itemID,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      records,
		Timestamp: time.Now(),
	})
}

// ListMyRecords retrieves the caller's records on an item
// @Summary List my records on an item
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]dto.RecordResponse} "Records retrieved"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/records/mine [get]
func (c *RecordController) ListMyRecords(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	records, err := c.recordService.ListMine(ctx, itemID, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      records,
		Timestamp: time.Now(),
	})
}

// GetRecord retrieves a single record with its cost
// @Summary Get a record
// @Description Retrieves a record with its derived cost. Participant, host or admin only.
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.RecordResponse} "Record retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records/{id} [get]
func (c *RecordController) GetRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	record, cost, err := c.recordService.Get(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.RecordResponse{Record: record, Cost: cost},
		Timestamp: time.Now(),
	})
}

// UpdateRecord replaces a record's quantity and selections
// @Summary Update a record
// @Description Replaces quantity and option selections while the item is still joinable. The payment total is recomputed.
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID" Format(int64) minimum(1)
// @Param request body dto.CreateRecordRequest true "New selection and quantity"
// @Success 200 {object} dto.APIResponse{data=dto.RecordResponse} "Record updated"
// @Failure 400 {object} dto.ErrorResponse "Bad selection or quantity"
// @Failure 403 {object} dto.ErrorResponse "Not the participant"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 409 {object} dto.ErrorResponse "Item closed or past deadline"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records/{id} [put]
func (c *RecordController) UpdateRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	record, cost, err := c.recordService.Update(ctx, id, middleware.CurrentUserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.RecordResponse{Record: record, Cost: cost},
		Timestamp: time.Now(),
	})
}

// DeleteRecord withdraws a record
// @Summary Withdraw a record
// @Description Deletes a record and recomputes the payment total from the remaining records
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse "Record deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the participant"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records/{id} [delete]
func (c *RecordController) DeleteRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	err := c.recordService.Delete(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Record deleted"},
		Timestamp: time.Now(),
	})
}
