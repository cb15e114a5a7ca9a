package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/tenantctx"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// Generates the order number, builds the aggregate in either detailed or
// quick-drop mode, and commits the calculated ready-by promise.
type CreateOrderCommandHandler struct {
	uowFactory          OrderUoWFactory
	publisher           ports.EventPublisher
	scheduler           services.ReadyByScheduler
	policy              *services.BusinessHoursPolicy
	categoryTurnarounds map[string]float64
}

// NewCreateOrderCommandHandler creates a handler for order intake.
// policy may be nil when the tenant has no business-hours restriction, and
// categoryTurnarounds may be nil when no category overrides the base
// turnaround.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	policy *services.BusinessHoursPolicy,
	categoryTurnarounds map[string]float64,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:          uowFactory,
		publisher:           publisher,
		scheduler:           services.NewReadyByScheduler(),
		policy:              policy,
		categoryTurnarounds: categoryTurnarounds,
	}
}

// Handle processes the order intake command inside one transaction: reserve
// the next order number, build the aggregate at the workflow's starting
// status, calculate ready-by, persist. The created event is published only
// after the transaction commits.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor, err := tenantctx.FromContext(ctx)
	if err != nil {
		return err
	}

	receivedAt := cmd.ReceivedAt()
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	wf, err := uow.WorkflowRepository().Get(ctx, cmd.ServiceCategory())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	seq, err := orderRepo.NextNumberSequence(ctx, receivedAt)
	if err != nil {
		return err
	}
	number := orderNumber(receivedAt, seq)

	var aggregate *order.Order
	if cmd.IsQuickDrop() {
		aggregate, err = order.NewQuickDropOrder(cmd.OrderID(), actor.Tenant, cmd.CustomerID(),
			number, cmd.ServiceCategory(), cmd.Priority(), receivedAt, wf, actor.UserID, cmd.BagQuantity())
	} else {
		aggregate, err = order.NewOrder(cmd.OrderID(), actor.Tenant, cmd.CustomerID(),
			number, cmd.ServiceCategory(), cmd.Priority(), receivedAt, wf, actor.UserID)
	}
	if err != nil {
		return err
	}

	for _, line := range cmd.Items() {
		unitPrice, priceErr := kernel.NewMoney(line.UnitPriceCents)
		if priceErr != nil {
			return priceErr
		}
		item, itemErr := order.NewItem(line.ProductID, line.Quantity, unitPrice)
		if itemErr != nil {
			return itemErr
		}
		if line.TrackPieces {
			item.GeneratePieces(line.Quantity)
		}
		if addErr := aggregate.AddItem(item); addErr != nil {
			return addErr
		}
	}

	readyBy, err := h.scheduler.Calculate(services.ReadyByInput{
		ReceivedAt:              receivedAt,
		TurnaroundHours:         cmd.TurnaroundHours(),
		CategoryTurnaroundHours: h.categoryTurnaround(cmd.ServiceCategory()),
		Priority:                cmd.Priority(),
		Policy:                  h.policy,
		Override:                cmd.ReadyByOverride(),
	})
	if err != nil {
		return err
	}
	aggregate.SetReadyBy(readyBy)

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Fire-and-forget: the publisher handles its own failures.
	_ = h.publisher.Publish(ctx, ports.OrderEvent{
		Kind:       ports.EventOrderCreated,
		Tenant:     actor.Tenant.String(),
		OrderID:    aggregate.ID().String(),
		Number:     number,
		ToStatus:   aggregate.Status(),
		OccurredAt: receivedAt,
	})

	return nil
}

func (h *CreateOrderCommandHandler) categoryTurnaround(category string) *float64 {
	if category == "" {
		return nil
	}
	hours, ok := h.categoryTurnarounds[category]
	if !ok {
		return nil
	}
	return &hours
}
