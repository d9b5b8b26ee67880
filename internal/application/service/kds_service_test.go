package service

import (
	"context"
	"testing"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKdsOrder(t *testing.T, repo *memKdsRepo, statuses ...enum.KdsStatus) *entity.KdsOrder {
	t.Helper()

	items := make([]entity.KdsItem, 0, len(statuses))
	for _, status := range statuses {
		items = append(items, entity.KdsItem{
			ID:        uuid.New(),
			ProductID: uuid.New(),
			Qty:       1,
			Status:    status,
		})
	}
	order := &entity.KdsOrder{
		SaleID:        uuid.New(),
		SaleInvoiceNo: "INV-TEST",
		Status:        rollUpOrderStatus(items),
		Items:         items,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestUpdateKdsItemStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("ticket follows the least advanced active item", func(t *testing.T) {
		repo := &memKdsRepo{}
		svc := NewKdsService(repo)
		order := newKdsOrder(t, repo, enum.KdsStatusNew, enum.KdsStatusNew)

		updated, err := svc.UpdateItemStatus(ctx, order.ID, order.Items[0].ID, enum.KdsStatusCooking)
		require.NoError(t, err)
		assert.Equal(t, enum.KdsStatusNew, updated.Status)

		updated, err = svc.UpdateItemStatus(ctx, order.ID, order.Items[1].ID, enum.KdsStatusReady)
		require.NoError(t, err)
		assert.Equal(t, enum.KdsStatusCooking, updated.Status)
	})

	t.Run("ticket is served once every item is served or cancelled", func(t *testing.T) {
		repo := &memKdsRepo{}
		svc := NewKdsService(repo)
		order := newKdsOrder(t, repo, enum.KdsStatusReady, enum.KdsStatusCancelled)

		updated, err := svc.UpdateItemStatus(ctx, order.ID, order.Items[0].ID, enum.KdsStatusServed)
		require.NoError(t, err)
		assert.Equal(t, enum.KdsStatusServed, updated.Status)
	})

	t.Run("ticket is cancelled when all items are cancelled", func(t *testing.T) {
		repo := &memKdsRepo{}
		svc := NewKdsService(repo)
		order := newKdsOrder(t, repo, enum.KdsStatusNew)

		updated, err := svc.UpdateItemStatus(ctx, order.ID, order.Items[0].ID, enum.KdsStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, enum.KdsStatusCancelled, updated.Status)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		repo := &memKdsRepo{}
		svc := NewKdsService(repo)
		order := newKdsOrder(t, repo, enum.KdsStatusNew)

		_, err := svc.UpdateItemStatus(ctx, order.ID, order.Items[0].ID, enum.KdsStatus("BURNT"))
		assert.Error(t, err)
	})

	t.Run("unknown order or item is rejected", func(t *testing.T) {
		repo := &memKdsRepo{}
		svc := NewKdsService(repo)
		order := newKdsOrder(t, repo, enum.KdsStatusNew)

		_, err := svc.UpdateItemStatus(ctx, uuid.New(), order.Items[0].ID, enum.KdsStatusCooking)
		assert.Error(t, err)

		_, err = svc.UpdateItemStatus(ctx, order.ID, uuid.New(), enum.KdsStatusCooking)
		assert.Error(t, err)
	})
}
