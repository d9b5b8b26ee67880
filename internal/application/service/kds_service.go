package service

import (
	"context"
	"time"

	"github.com/ardiwinata/cuepos/internal/domain/entity"
	"github.com/ardiwinata/cuepos/internal/domain/enum"
	"github.com/ardiwinata/cuepos/internal/domain/repository"
	"github.com/ardiwinata/cuepos/pkg/apperror"
	"github.com/google/uuid"
)

// KdsService manages the kitchen display queue
type KdsService struct {
	kdsRepo repository.KdsRepository
}

// NewKdsService creates a new KDS service
func NewKdsService(kdsRepo repository.KdsRepository) *KdsService {
	return &KdsService{kdsRepo: kdsRepo}
}

// ListActiveOrders returns tickets the kitchen still has to work
func (s *KdsService) ListActiveOrders(ctx context.Context) ([]entity.KdsOrder, error) {
	return s.kdsRepo.ListActive(ctx)
}

// ListOrdersByDate returns every ticket created on the given day
func (s *KdsService) ListOrdersByDate(ctx context.Context, day time.Time) ([]entity.KdsOrder, error) {
	return s.kdsRepo.ListByDate(ctx, day)
}

// UpdateItemStatus advances one dish through the kitchen flow and rolls the
// ticket status up from its items.
func (s *KdsService) UpdateItemStatus(ctx context.Context, orderID, itemID uuid.UUID, status enum.KdsStatus) (*entity.KdsOrder, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid KDS status")
	}

	order, err := s.kdsRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("KDS order")
	}

	found := false
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			order.Items[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return nil, apperror.NewNotFoundError("KDS item")
	}

	if err := s.kdsRepo.UpdateItemStatus(ctx, itemID, status); err != nil {
		return nil, err
	}

	rolled := rollUpOrderStatus(order.Items)
	if rolled != order.Status {
		order.Status = rolled
		if err := s.kdsRepo.Update(ctx, order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// rollUpOrderStatus derives a ticket status from its items: SERVED when all
// items are served or cancelled, otherwise the least-advanced active item.
func rollUpOrderStatus(items []entity.KdsItem) enum.KdsStatus {
	rank := map[enum.KdsStatus]int{
		enum.KdsStatusNew:      0,
		enum.KdsStatusAccepted: 1,
		enum.KdsStatusCooking:  2,
		enum.KdsStatusReady:    3,
	}

	lowest := -1
	var lowestStatus enum.KdsStatus
	allCancelled := len(items) > 0
	for _, item := range items {
		if item.Status == enum.KdsStatusCancelled {
			continue
		}
		allCancelled = false
		if item.Status == enum.KdsStatusServed {
			continue
		}
		r := rank[item.Status]
		if lowest == -1 || r < lowest {
			lowest = r
			lowestStatus = item.Status
		}
	}

	if allCancelled {
		return enum.KdsStatusCancelled
	}
	if lowest == -1 {
		return enum.KdsStatusServed
	}
	return lowestStatus
}
