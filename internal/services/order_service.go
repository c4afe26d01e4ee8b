package services

import (
	"context"
	"fmt"

	"redheart/internal/domain"
	"redheart/internal/events"
	"redheart/internal/validate"
)

const (
	MsgOrdersFetchFailed  = "Failed to fetch orders"
	MsgOrderUpdateFailed  = "Failed to update status"
	MsgOrdersUnexpected   = "Something went wrong while fetching orders"
	MsgInvalidOrderStatus = "Invalid order status"
)

var ErrInvalidStatus = &validate.Problem{Msg: MsgInvalidOrderStatus}

type OrderBackend interface {
	ListOrders(ctx context.Context, filters map[string]string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}

type OrderService struct {
	API    OrderBackend
	Guard  *BusyID
	Events events.Publisher
}

func NewOrderService(api OrderBackend, guard *BusyID, pub events.Publisher) *OrderService {
	return &OrderService{API: api, Guard: guard, Events: pub}
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.API.ListOrders(ctx, nil)
}

// Updating reports which order ids have a status change in flight.
func (s *OrderService) Updating() map[string]bool { return s.Guard.InFlight() }

// UpdateStatus moves one order to status. current is the list the operator was
// looking at; nil means fetch it first. The returned error is only for requests
// that never reached the backend (bad status, guard held); a backend failure is
// reported in MutateErr with the refetched list alongside.
func (s *OrderService) UpdateStatus(ctx context.Context, actor, orderID, status string, current []domain.Order) (Reconciled[[]domain.Order], error) {
	st, ok := validate.OrderStatus(status)
	if !ok {
		return Reconciled[[]domain.Order]{}, ErrInvalidStatus
	}
	release, err := s.Guard.Acquire(orderID)
	if err != nil {
		return Reconciled[[]domain.Order]{}, err
	}
	defer release()

	if current == nil {
		current, _ = s.API.ListOrders(ctx, nil)
	}

	r := MutateThenReconcile(ctx, current,
		func(orders []domain.Order) []domain.Order {
			return domain.WithStatus(orders, orderID, string(st))
		},
		func(ctx context.Context) error {
			if err := s.API.UpdateOrderStatus(ctx, orderID, st); err != nil {
				return fmt.Errorf("update order %s: %w", orderID, err)
			}
			return nil
		},
		func(ctx context.Context) ([]domain.Order, error) {
			return s.API.ListOrders(ctx, nil)
		},
		MsgOrdersFetchFailed,
	)
	if r.MutateErr != nil {
		r.Message = MsgOrderUpdateFailed
		return r, nil
	}
	publish(ctx, s.Events, events.New(events.OrderStatusUpdated, "order", orderID, actor,
		map[string]any{"status": string(st)}))
	return r, nil
}
