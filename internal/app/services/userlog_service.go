package services

import (
	"context"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/pkg/helpers"
)

// UserLogStore is the audit log persistence surface the log service needs.
type UserLogStore interface {
	Append(ctx context.Context, log *models.UserLog) (int64, error)
	ListByUser(ctx context.Context, userID int64, includeHidden bool, offset uint64, limit int) ([]*models.UserLog, int64, error)
	ListAll(ctx context.Context, includeHidden bool, offset uint64, limit int) ([]*models.UserLog, int64, error)
}

// UserLogService implements audit log queries
type UserLogService struct {
	logs UserLogStore
}

// NewUserLogService creates a new UserLogService
func NewUserLogService(logs UserLogStore) *UserLogService {
	return &UserLogService{logs: logs}
}

// Append records an audit entry and returns it with its assigned ID
func (s *UserLogService) Append(ctx context.Context, entry *models.UserLog) (*models.UserLog, error) {
	if entry.IP == "" {
		entry.IP = models.UnknownIP
	}

	id, err := s.logs.Append(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	return entry, nil
}

// ListByUser retrieves a user's own audit entries, newest first. Hidden
// entries are excluded.
func (s *UserLogService) ListByUser(ctx context.Context, userID int64, page, size int) ([]dto.UserLogResponse, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	logs, total, err := s.logs.ListByUser(ctx, userID, false, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return toUserLogResponses(logs), helpers.NewPaginationInfo(total, page, limit), nil
}

// ListAll retrieves every audit entry including hidden ones. Admin only;
// the route is restricted before this is reached.
func (s *UserLogService) ListAll(ctx context.Context, page, size int) ([]dto.UserLogResponse, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	logs, total, err := s.logs.ListAll(ctx, true, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return toUserLogResponses(logs), helpers.NewPaginationInfo(total, page, limit), nil
}

func toUserLogResponses(logs []*models.UserLog) []dto.UserLogResponse {
	responses := make([]dto.UserLogResponse, 0, len(logs))
	for _, entry := range logs {
		responses = append(responses, dto.UserLogResponse{
			Log:    entry,
			Pretty: entry.Pretty(),
		})
	}
	return responses
}
