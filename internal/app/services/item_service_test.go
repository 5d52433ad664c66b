package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaeho/gongu/internal/app/models"
	"github.com/jaeho/gongu/internal/app/models/dto"
	"github.com/jaeho/gongu/internal/app/repositories"
	"github.com/jaeho/gongu/internal/pkg/apperrors"
)

func newItemFixture(t *testing.T) (*ItemService, *fakeItemStore, *fakeContentStore) {
	t.Helper()
	items := newFakeItemStore()
	contents := newFakeContentStore()
	return NewItemService(items, contents, newFakeOptionStore()), items, contents
}

func TestItemServiceCreate(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newItemFixture(t)
	deadline := time.Now().Add(48 * time.Hour)

	t.Run("creates an open item", func(t *testing.T) {
		item, err := service.Create(ctx, 1, dto.CreateItemRequest{
			Title:    "Hoodie group order",
			Price:    15000,
			JoinType: "OPEN",
			Deadline: deadline,
		})
		require.NoError(t, err)
		assert.NotZero(t, item.ID)
		assert.Equal(t, int64(1), item.HostID)
		assert.Equal(t, models.JoinTypeOpen, item.JoinType)
	})

	t.Run("rejects a blank title", func(t *testing.T) {
		_, err := service.Create(ctx, 1, dto.CreateItemRequest{
			Title:    "   ",
			JoinType: "OPEN",
			Deadline: deadline,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects an unknown join type", func(t *testing.T) {
		_, err := service.Create(ctx, 1, dto.CreateItemRequest{
			Title:    "Hoodie",
			JoinType: "INVITE",
			Deadline: deadline,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestItemServiceGet(t *testing.T) {
	ctx := context.Background()
	service, items, contents := newItemFixture(t)

	itemID, err := items.Create(ctx, &models.Item{
		Title:    "Hoodie",
		HostID:   1,
		JoinType: models.JoinTypeOpen,
		Deadline: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	body := "intro"
	_, err = contents.Create(ctx, &models.Content{
		ItemID: itemID, Type: models.ContentTypeText, Content: &body, Ord: 1,
	})
	require.NoError(t, err)
	hidden := "draft"
	_, err = contents.Create(ctx, &models.Content{
		ItemID: itemID, Type: models.ContentTypeText, Content: &hidden, Ord: 2, IsHidden: true,
	})
	require.NoError(t, err)

	t.Run("viewer sees only visible contents", func(t *testing.T) {
		item, err := service.Get(ctx, itemID, 5, false)
		require.NoError(t, err)
		assert.Len(t, item.Contents, 1)
	})

	t.Run("host sees hidden contents", func(t *testing.T) {
		item, err := service.Get(ctx, itemID, 1, false)
		require.NoError(t, err)
		assert.Len(t, item.Contents, 2)
	})

	t.Run("deleted item hidden from others", func(t *testing.T) {
		require.NoError(t, items.SoftDelete(ctx, itemID))
		defer func() { items.items[itemID].IsDeleted = false }()

		_, err := service.Get(ctx, itemID, 5, false)
		assert.ErrorIs(t, err, apperrors.ErrItemDeleted)

		_, err = service.Get(ctx, itemID, 1, false)
		assert.NoError(t, err)

		_, err = service.Get(ctx, itemID, 99, true)
		assert.NoError(t, err)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := service.Get(ctx, 404, 5, false)
		assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
	})
}

func TestItemServiceList(t *testing.T) {
	ctx := context.Background()
	service, items, _ := newItemFixture(t)
	deadline := time.Now().Add(24 * time.Hour)

	for i := 0; i < 3; i++ {
		_, err := items.Create(ctx, &models.Item{
			Title: "open", HostID: 1, JoinType: models.JoinTypeOpen, Deadline: deadline,
		})
		require.NoError(t, err)
	}
	closedID, err := items.Create(ctx, &models.Item{
		Title: "closed", HostID: 2, JoinType: models.JoinTypeClosed, Deadline: deadline,
	})
	require.NoError(t, err)
	_ = closedID

	t.Run("lists with pagination info", func(t *testing.T) {
		got, pagination, err := service.List(ctx, repositories.ItemFilter{}, 1, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, int64(4), pagination.TotalItems)
		assert.Equal(t, 2, pagination.TotalPages)
	})

	t.Run("open only filter", func(t *testing.T) {
		got, pagination, err := service.List(ctx, repositories.ItemFilter{OpenOnly: true}, 1, 10)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.Equal(t, int64(3), pagination.TotalItems)
	})

	t.Run("host filter", func(t *testing.T) {
		hostID := int64(2)
		got, _, err := service.List(ctx, repositories.ItemFilter{HostID: &hostID}, 1, 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestItemServiceUpdate(t *testing.T) {
	ctx := context.Background()
	service, items, _ := newItemFixture(t)
	deadline := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	itemID, err := items.Create(ctx, &models.Item{
		Title: "Hoodie", HostID: 1, Price: 15000,
		JoinType: models.JoinTypeOpen, Deadline: deadline,
	})
	require.NoError(t, err)

	t.Run("host updates mutable fields, deadline untouched", func(t *testing.T) {
		updated, err := service.Update(ctx, itemID, 1, false, dto.UpdateItemRequest{
			Title:    "Hoodie v2",
			Price:    17000,
			JoinType: "CLOSED",
		})
		require.NoError(t, err)
		assert.Equal(t, "Hoodie v2", updated.Title)
		assert.Equal(t, models.JoinTypeClosed, updated.JoinType)

		stored, err := items.GetByID(ctx, itemID)
		require.NoError(t, err)
		assert.True(t, stored.Deadline.Equal(deadline))
	})

	t.Run("stranger may not update", func(t *testing.T) {
		_, err := service.Update(ctx, itemID, 42, false, dto.UpdateItemRequest{
			Title: "hijack", JoinType: "OPEN",
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("deleted item cannot be updated", func(t *testing.T) {
		require.NoError(t, items.SoftDelete(ctx, itemID))
		defer func() { items.items[itemID].IsDeleted = false }()

		_, err := service.Update(ctx, itemID, 1, false, dto.UpdateItemRequest{
			Title: "late edit", JoinType: "OPEN",
		})
		assert.ErrorIs(t, err, apperrors.ErrItemDeleted)
	})
}

func TestItemServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("host soft deletes", func(t *testing.T) {
		service, items, _ := newItemFixture(t)
		itemID, err := items.Create(ctx, &models.Item{
			Title: "Hoodie", HostID: 1, JoinType: models.JoinTypeOpen,
			Deadline: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		require.NoError(t, service.SoftDelete(ctx, itemID, 1, false))

		stored, err := items.GetByID(ctx, itemID)
		require.NoError(t, err)
		assert.True(t, stored.IsDeleted)
	})

	t.Run("stranger may not soft delete", func(t *testing.T) {
		service, items, _ := newItemFixture(t)
		itemID, err := items.Create(ctx, &models.Item{
			Title: "Hoodie", HostID: 1, JoinType: models.JoinTypeOpen,
			Deadline: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		err = service.SoftDelete(ctx, itemID, 42, false)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("physical delete is admin only", func(t *testing.T) {
		service, items, _ := newItemFixture(t)
		itemID, err := items.Create(ctx, &models.Item{
			Title: "Hoodie", HostID: 1, JoinType: models.JoinTypeOpen,
			Deadline: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		err = service.Delete(ctx, itemID, false)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

		require.NoError(t, service.Delete(ctx, itemID, true))
		_, err = items.GetByID(ctx, itemID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
