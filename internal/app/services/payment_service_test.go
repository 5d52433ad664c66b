package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/pkg/apperrors"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *fakePaymentStore, int64) {
	t.Helper()
	ctx := context.Background()

	items := newFakeItemStore()
	payments := newFakePaymentStore()

	itemID, err := items.Create(ctx, &models.Item{
		Title:    "Hoodie group order",
		HostID:   1,
		Price:    1000,
		JoinType: models.JoinTypeOpen,
		Deadline: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	return NewPaymentService(items, payments), payments, itemID
}

func seedPayment(t *testing.T, payments *fakePaymentStore, itemID, participantID, total int64) *models.Payment {
	t.Helper()
	payment := &models.Payment{
		ItemID:        itemID,
		ParticipantID: participantID,
		Total:         total,
		Status:        models.PaymentStatusPending,
	}
	id, err := payments.Upsert(context.Background(), payment)
	require.NoError(t, err)
	payment.ID = id
	return payment
}

func TestPaymentServiceGet(t *testing.T) {
	ctx := context.Background()
	service, payments, itemID := newPaymentFixture(t)
	payment := seedPayment(t, payments, itemID, 5, 2400)

	t.Run("participant sees their payment", func(t *testing.T) {
		got, err := service.Get(ctx, payment.ID, 5, false)
		require.NoError(t, err)
		assert.Equal(t, int64(2400), got.Total)
	})

	t.Run("host sees the payment", func(t *testing.T) {
		_, err := service.Get(ctx, payment.ID, 1, false)
		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := service.Get(ctx, payment.ID, 42, false)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin sees any payment", func(t *testing.T) {
		_, err := service.Get(ctx, payment.ID, 42, true)
		assert.NoError(t, err)
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := service.Get(ctx, 404, 5, false)
		assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
	})
}

func TestPaymentServiceListByItem(t *testing.T) {
	ctx := context.Background()
	service, payments, itemID := newPaymentFixture(t)
	seedPayment(t, payments, itemID, 5, 2400)
	seedPayment(t, payments, itemID, 6, 1000)

	t.Run("host lists all payments", func(t *testing.T) {
		got, err := service.ListByItem(ctx, itemID, 1, false)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("participant cannot list the item", func(t *testing.T) {
		_, err := service.ListByItem(ctx, itemID, 5, false)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("participant lists their own", func(t *testing.T) {
		got, err := service.ListMine(ctx, 5)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2400), got[0].Total)
	})
}

func TestPaymentServiceUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("host advances pending to joined to paid", func(t *testing.T) {
		service, payments, itemID := newPaymentFixture(t)
		payment := seedPayment(t, payments, itemID, 5, 2400)

		got, err := service.UpdateStatus(ctx, payment.ID, 1, false, models.PaymentStatusJoined)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusJoined, got.Status)

		got, err = service.UpdateStatus(ctx, payment.ID, 1, false, models.PaymentStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPaid, got.Status)
	})

	t.Run("status never moves backwards", func(t *testing.T) {
		service, payments, itemID := newPaymentFixture(t)
		payment := seedPayment(t, payments, itemID, 5, 2400)

		_, err := service.UpdateStatus(ctx, payment.ID, 1, false, models.PaymentStatusPaid)
		require.NoError(t, err)

		_, err = service.UpdateStatus(ctx, payment.ID, 1, false, models.PaymentStatusJoined)
		assert.ErrorIs(t, err, apperrors.ErrPaymentTransition)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		service, payments, itemID := newPaymentFixture(t)
		payment := seedPayment(t, payments, itemID, 5, 2400)

		got, err := service.UpdateStatus(ctx, payment.ID, 1, false, models.PaymentStatusPending)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusPending, got.Status)
	})

	t.Run("participant may not change status", func(t *testing.T) {
		service, payments, itemID := newPaymentFixture(t)
		payment := seedPayment(t, payments, itemID, 5, 2400)

		_, err := service.UpdateStatus(ctx, payment.ID, 5, false, models.PaymentStatusJoined)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin may change status", func(t *testing.T) {
		service, payments, itemID := newPaymentFixture(t)
		payment := seedPayment(t, payments, itemID, 5, 2400)

		_, err := service.UpdateStatus(ctx, payment.ID, 99, true, models.PaymentStatusJoined)
		assert.NoError(t, err)
	})

	t.Run("invalid status string", func(t *testing.T) {
		service, payments, itemID := newPaymentFixture(t)
		payment := seedPayment(t, payments, itemID, 5, 2400)

		_, err := service.UpdateStatus(ctx, payment.ID, 1, false, models.PaymentStatus("SETTLED"))
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}
