package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/services"
	"github.com/jaeho/gongu/internal/middleware"
	"github.com/jaeho/gongu/internal/pkg/helpers"
)

// UserLogController handles audit log queries
type UserLogController struct {
	userLogService *services.UserLogService
}

// NewUserLogController creates a new UserLogController
func NewUserLogController(userLogService *services.UserLogService) *UserLogController {
	return &UserLogController{userLogService: userLogService}
}

// ListMyLogs retrieves the caller's audit entries
// @Summary List my audit log
// @Description Retrieves the caller's audit entries, newest first. Hidden entries are excluded.
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Entries retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /logs [get]
func (c *UserLogController) ListMyLogs(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	logs, pagination, err := c.userLogService.ListByUser(ctx, middleware.CurrentUserID(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      logs,
			Pagination: pagination,
		},
		Timestamp: time.Now(),
	})
}

// ListAllLogs retrieves every audit entry
// @Summary List all audit entries
// @Description Retrieves every audit entry including hidden and anonymous ones. Admin only.
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Entries retrieved"
// @Failure 403 {object} dto.ErrorResponse "Administrator access required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /logs/all [get]
func (c *UserLogController) ListAllLogs(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	logs, pagination, err := c.userLogService.ListAll(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PaginatedResponse{
			Items:      logs,
			Pagination: pagination,
		},
		Timestamp: time.Now(),
	})
}
