package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/services"
	"github.com/jaeho/gongu/internal/middleware"
)

// PaymentController handles payment queries and status transitions
type PaymentController struct {
	paymentService *services.PaymentService
}

// NewPaymentController creates a new PaymentController
func NewPaymentController(paymentService *services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// ListPayments retrieves all payments on an item
// @Summary List an item's payments
// @Description Retrieves every payment on an item with participants. Host or admin only.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=[]models.Payment} "Payments retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /items/{id}/payments [get]
func (c *PaymentController) ListPayments(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	payments, err := c.paymentService.ListByItem(ctx, itemID,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payments,
		Timestamp: time.Now(),
	})
}

// ListMyPayments retrieves the caller's payments
// @Summary List my payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Payment} "Payments retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/mine [get]
func (c *PaymentController) ListMyPayments(ctx *gin.Context) {
	payments, err := c.paymentService.ListMine(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payments,
		Timestamp: time.Now(),
	})
}

// GetPayment retrieves a single payment
// @Summary Get a payment
// @Description Retrieves a payment. Participant, host or admin only.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Payment retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not allowed"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{id} [get]
func (c *PaymentController) GetPayment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	payment, err := c.paymentService.Get(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payment,
		Timestamp: time.Now(),
	})
}

// UpdatePaymentStatus advances a payment's lifecycle state
// @Summary Update payment status
// @Description Moves a payment forward through PENDING, JOINED, PAID. Backward transitions are rejected. Host or admin only.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID" Format(int64) minimum(1)
// @Param request body dto.UpdatePaymentStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=models.Payment} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 403 {object} dto.ErrorResponse "Not the host"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Failure 409 {object} dto.ErrorResponse "Backward transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /payments/{id}/status [patch]
func (c *PaymentController) UpdatePaymentStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	payment, err := c.paymentService.UpdateStatus(ctx, id,
		middleware.CurrentUserID(ctx), middleware.CurrentUserIsAdmin(ctx),
		models.PaymentStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      payment,
		Timestamp: time.Now(),
	})
}
