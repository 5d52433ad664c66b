package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/pkg/apperrors"
)

type recordFixture struct {
	service  *RecordService
	items    *fakeItemStore
	options  *fakeOptionStore
	records  *fakeRecordStore
	payments *fakePaymentStore

	itemID     int64
	sizeS      int64
	sizeXL     int64
	colorRed   int64
	otherOptID int64
}

// newRecordFixture builds a service around an open item priced 1000 with two
// option categories (Size: S +0 / XL +200, Color: red +0) plus a second item
// carrying one unrelated option. The clock is pinned a day before the deadline.
func newRecordFixture(t *testing.T) *recordFixture {
	t.Helper()
	ctx := context.Background()

	f := &recordFixture{
		items:    newFakeItemStore(),
		options:  newFakeOptionStore(),
		records:  newFakeRecordStore(),
		payments: newFakePaymentStore(),
	}

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	itemID, err := f.items.Create(ctx, &models.Item{
		Title:    "Hoodie group order",
		HostID:   1,
		Price:    1000,
		JoinType: models.JoinTypeOpen,
		Deadline: now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	f.itemID = itemID

	sizeCat, err := f.options.CreateCategory(ctx, &models.OptionCategory{ItemID: itemID, Name: "Size"})
	require.NoError(t, err)
	colorCat, err := f.options.CreateCategory(ctx, &models.OptionCategory{ItemID: itemID, Name: "Color"})
	require.NoError(t, err)

	f.sizeS, err = f.options.CreateItem(ctx, &models.OptionItem{CategoryID: sizeCat, Name: "S"})
	require.NoError(t, err)
	f.sizeXL, err = f.options.CreateItem(ctx, &models.OptionItem{CategoryID: sizeCat, Name: "XL", PriceDelta: 200})
	require.NoError(t, err)
	f.colorRed, err = f.options.CreateItem(ctx, &models.OptionItem{CategoryID: colorCat, Name: "red"})
	require.NoError(t, err)

	otherItemID, err := f.items.Create(ctx, &models.Item{
		Title:    "Sticker order",
		HostID:   1,
		Price:    500,
		JoinType: models.JoinTypeOpen,
		Deadline: now.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	otherCat, err := f.options.CreateCategory(ctx, &models.OptionCategory{ItemID: otherItemID, Name: "Finish"})
	require.NoError(t, err)
	f.otherOptID, err = f.options.CreateItem(ctx, &models.OptionItem{CategoryID: otherCat, Name: "matte"})
	require.NoError(t, err)

	f.service = NewRecordService(f.items, f.options, f.records, f.payments)
	f.service.now = func() time.Time { return now }

	return f
}

func TestRecordServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a record and a pending payment", func(t *testing.T) {
		f := newRecordFixture(t)

		record, cost, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeXL, f.colorRed},
			Quantity:      2,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2400), cost)
		assert.Len(t, record.Options, 2)

		payment, err := f.payments.GetByItemAndParticipant(ctx, f.itemID, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(2400), payment.Total)
		assert.Equal(t, models.PaymentStatusPending, payment.Status)
	})

	t.Run("second record accumulates the payment total", func(t *testing.T) {
		f := newRecordFixture(t)

		_, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeXL, f.colorRed},
			Quantity:      2,
		})
		require.NoError(t, err)

		_, cost, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1000), cost)

		payment, err := f.payments.GetByItemAndParticipant(ctx, f.itemID, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(3400), payment.Total)
	})

	t.Run("rejects a deleted item", func(t *testing.T) {
		f := newRecordFixture(t)
		require.NoError(t, f.items.SoftDelete(ctx, f.itemID))

		_, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		assert.ErrorIs(t, err, apperrors.ErrItemDeleted)
	})

	t.Run("rejects a closed item", func(t *testing.T) {
		f := newRecordFixture(t)
		item, err := f.items.GetByID(ctx, f.itemID)
		require.NoError(t, err)
		item.JoinType = models.JoinTypeClosed
		require.NoError(t, f.items.Update(ctx, item))

		_, _, err = f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		assert.ErrorIs(t, err, apperrors.ErrItemClosed)
	})

	t.Run("rejects once the deadline has passed", func(t *testing.T) {
		f := newRecordFixture(t)
		f.service.now = func() time.Time {
			return time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
		}

		_, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		assert.ErrorIs(t, err, apperrors.ErrPastDeadline)
	})

	t.Run("rejects a non-positive quantity", func(t *testing.T) {
		f := newRecordFixture(t)

		_, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      0,
		})
		assert.ErrorIs(t, err, apperrors.ErrQuantityNotPositive)
	})

	t.Run("rejects an unknown option item", func(t *testing.T) {
		f := newRecordFixture(t)

		_, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, 9999},
			Quantity:      1,
		})
		assert.ErrorIs(t, err, apperrors.ErrOptionItemNotFound)
	})

	t.Run("rejects a selection missing a category", func(t *testing.T) {
		f := newRecordFixture(t)

		_, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS},
			Quantity:      1,
		})
		assert.ErrorIs(t, err, apperrors.ErrOptionSelection)
	})

	t.Run("rejects two options from the same category", func(t *testing.T) {
		f := newRecordFixture(t)

		_, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.sizeXL, f.colorRed},
			Quantity:      1,
		})
		assert.ErrorIs(t, err, apperrors.ErrOptionSelection)
	})

	t.Run("rejects an option belonging to another item", func(t *testing.T) {
		f := newRecordFixture(t)

		_, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed, f.otherOptID},
			Quantity:      1,
		})
		assert.ErrorIs(t, err, apperrors.ErrOptionSelection)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newRecordFixture(t)

		_, _, err := f.service.Create(ctx, 404, 5, dto.CreateRecordRequest{Quantity: 1})
		assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
	})
}

func TestRecordServiceGet(t *testing.T) {
	ctx := context.Background()
	f := newRecordFixture(t)

	record, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
		OptionItemIDs: []int64{f.sizeXL, f.colorRed},
		Quantity:      2,
	})
	require.NoError(t, err)

	t.Run("participant sees their record", func(t *testing.T) {
		got, cost, err := f.service.Get(ctx, record.ID, 5, false)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, int64(2400), cost)
	})

	t.Run("host sees the record", func(t *testing.T) {
		_, _, err := f.service.Get(ctx, record.ID, 1, false)
		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, _, err := f.service.Get(ctx, record.ID, 42, false)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin sees any record", func(t *testing.T) {
		_, _, err := f.service.Get(ctx, record.ID, 42, true)
		assert.NoError(t, err)
	})
}

func TestRecordServiceListByItem(t *testing.T) {
	ctx := context.Background()
	f := newRecordFixture(t)

	for _, participant := range []int64{5, 6} {
		_, _, err := f.service.Create(ctx, f.itemID, participant, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		require.NoError(t, err)
	}

	t.Run("host lists all records with costs", func(t *testing.T) {
		responses, err := f.service.ListByItem(ctx, f.itemID, 1, false)
		require.NoError(t, err)
		require.Len(t, responses, 2)
		assert.Equal(t, int64(1000), responses[0].Cost)
	})

	t.Run("participant cannot list the whole item", func(t *testing.T) {
		_, err := f.service.ListByItem(ctx, f.itemID, 5, false)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("participant lists their own records", func(t *testing.T) {
		responses, err := f.service.ListMine(ctx, f.itemID, 5)
		require.NoError(t, err)
		assert.Len(t, responses, 1)
	})
}

func TestRecordServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("participant changes quantity and options", func(t *testing.T) {
		f := newRecordFixture(t)
		record, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		require.NoError(t, err)

		updated, cost, err := f.service.Update(ctx, record.ID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeXL, f.colorRed},
			Quantity:      3,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.Quantity)
		assert.Equal(t, int64(3600), cost)

		payment, err := f.payments.GetByItemAndParticipant(ctx, f.itemID, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(3600), payment.Total)
	})

	t.Run("update keeps an advanced payment status", func(t *testing.T) {
		f := newRecordFixture(t)
		record, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		require.NoError(t, err)

		payment, err := f.payments.GetByItemAndParticipant(ctx, f.itemID, 5)
		require.NoError(t, err)
		require.NoError(t, f.payments.UpdateStatus(ctx, payment.ID, models.PaymentStatusJoined))

		_, _, err = f.service.Update(ctx, record.ID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeXL, f.colorRed},
			Quantity:      2,
		})
		require.NoError(t, err)

		payment, err = f.payments.GetByItemAndParticipant(ctx, f.itemID, 5)
		require.NoError(t, err)
		assert.Equal(t, models.PaymentStatusJoined, payment.Status)
		assert.Equal(t, int64(2400), payment.Total)
	})

	t.Run("only the participant may update", func(t *testing.T) {
		f := newRecordFixture(t)
		record, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		require.NoError(t, err)

		_, _, err = f.service.Update(ctx, record.ID, 6, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      2,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("rejects after the deadline", func(t *testing.T) {
		f := newRecordFixture(t)
		record, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		require.NoError(t, err)

		f.service.now = func() time.Time {
			return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		}
		_, _, err = f.service.Update(ctx, record.ID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      2,
		})
		assert.ErrorIs(t, err, apperrors.ErrPastDeadline)
	})
}

func TestRecordServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("withdrawing recomputes the payment total", func(t *testing.T) {
		f := newRecordFixture(t)
		first, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeXL, f.colorRed},
			Quantity:      2,
		})
		require.NoError(t, err)
		_, _, err = f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(ctx, first.ID, 5, false))

		payment, err := f.payments.GetByItemAndParticipant(ctx, f.itemID, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), payment.Total)
	})

	t.Run("admin may withdraw on behalf of a participant", func(t *testing.T) {
		f := newRecordFixture(t)
		record, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		require.NoError(t, err)

		assert.NoError(t, f.service.Delete(ctx, record.ID, 99, true))
	})

	t.Run("stranger may not withdraw", func(t *testing.T) {
		f := newRecordFixture(t)
		record, _, err := f.service.Create(ctx, f.itemID, 5, dto.CreateRecordRequest{
			OptionItemIDs: []int64{f.sizeS, f.colorRed},
			Quantity:      1,
		})
		require.NoError(t, err)

		err = f.service.Delete(ctx, record.ID, 6, false)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown record", func(t *testing.T) {
		f := newRecordFixture(t)
		err := f.service.Delete(ctx, 404, 5, false)
		assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
	})
}
