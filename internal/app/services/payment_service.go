package services

import (
	"context"
	"errors"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/repositories"
	"github.com/jaeho/gongu/internal/pkg/apperrors"
	"github.com/jaeho/gongu/internal/pkg/logger"
)

// PaymentService implements payment queries and status transitions
type PaymentService struct {
	items    ItemStore
	payments PaymentStore
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(items ItemStore, payments PaymentStore) *PaymentService {
	return &PaymentService{
		items:    items,
		payments: payments,
	}
}

// Get retrieves a payment. Visible to the participant, the item's host and
// admins.
func (s *PaymentService) Get(ctx context.Context, id, viewerID int64, isAdmin bool) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.ParticipantID == viewerID {
		return payment, nil
	}

	item, err := s.items.GetByID(ctx, payment.ItemID)
	if err != nil {
		return nil, err
	}
	if !canModify(viewerID, item.HostID, isAdmin) {
		return nil, apperrors.NewForbiddenError("Not allowed to view this payment")
	}

	return payment, nil
}

// ListByItem retrieves all payments on an item. Host or admin only.
func (s *PaymentService) ListByItem(ctx context.Context, itemID, viewerID int64, isAdmin bool) ([]*models.Payment, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}
	if !canModify(viewerID, item.HostID, isAdmin) {
		return nil, apperrors.NewForbiddenError("Only the host may list an item's payments")
	}

	return s.payments.ListByItem(ctx, itemID)
}

// ListMine retrieves every payment of the requesting participant
func (s *PaymentService) ListMine(ctx context.Context, participantID int64) ([]*models.Payment, error) {
	return s.payments.ListByParticipant(ctx, participantID)
}

// UpdateStatus advances a payment's lifecycle state. Only the item's host or
// an admin may change it, and the state never moves backwards.
func (s *PaymentService) UpdateStatus(ctx context.Context, id, actorID int64, isAdmin bool, next models.PaymentStatus) (*models.Payment, error) {
	if !next.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Status must be PENDING, JOINED or PAID")
	}

	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, err
	}

	item, err := s.items.GetByID(ctx, payment.ItemID)
	if err != nil {
		return nil, err
	}
	if !canModify(actorID, item.HostID, isAdmin) {
		return nil, apperrors.NewForbiddenError("Only the host may update payment status")
	}

	if !payment.Status.CanAdvanceTo(next) {
		return nil, apperrors.ErrPaymentTransition
	}

	if payment.Status == next {
		return payment, nil
	}

	if err := s.payments.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	logger.Info().Int64("paymentID", id).
		Str("from", string(payment.Status)).Str("to", string(next)).
		Msg("Payment status advanced")

	payment.Status = next
	return payment, nil
}
