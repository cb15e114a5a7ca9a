package commands_test

import (
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func splitParent(t *testing.T, tenant kernel.TenantID) (*order.Order, *order.Item, *order.Item) {
	t.Helper()
	wf := workflow.DefaultWorkflow(tenant)
	parent, err := order.NewOrder(kernel.NewUUID(), tenant, kernel.NewUUID(),
		"ORD-20251030-0003", "", order.PriorityNormal, time.Now().UTC(), wf, "operator-1")
	require.NoError(t, err)

	shirts, err := order.NewItem(kernel.NewUUID(), 3, 400)
	require.NoError(t, err)
	suits, err := order.NewItem(kernel.NewUUID(), 2, 2500)
	require.NoError(t, err)
	require.NoError(t, parent.AddItem(shirts))
	require.NoError(t, parent.AddItem(suits))
	return parent, shirts, suits
}

func TestSplitOrderCommandHandler_Handle_MovesItemsOntoChild(t *testing.T) {
	ctx, actor := boundContext(t)
	parent, _, suits := splitParent(t, actor.Tenant)
	totalBefore := parent.ItemCount()

	cmd, err := commands.NewSplitOrderCommand(parent.ID(), "suits need specialty pressing",
		[]services.SplitSpec{{ItemIDs: []kernel.UUID{suits.ID()}}})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, parent.ID()).Return(parent, nil).Once()
	repo.On("CountChildren", mock.Anything, parent.ID()).Return(0, nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	repo.On("Update", mock.Anything, parent).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Kind == ports.EventOrderSplit && e.Number == "ORD-20251030-0003-S1"
	})).Return(nil).Once()

	h := commands.NewSplitOrderCommandHandler(factory, publisher)
	childIDs, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	child := repo.Calls[2].Arguments.Get(1).(*order.Order)
	assert.Equal(t, "ORD-20251030-0003-S1", child.OrderNumber())
	assert.Equal(t, parent.ID(), *child.ParentID())
	assert.Equal(t, parent.Status(), child.Status())
	assert.Equal(t, parent.CustomerID(), child.CustomerID())

	// Callers get the created child identifiers back.
	require.Len(t, childIDs, 1)
	assert.Equal(t, child.ID(), childIDs[0])

	// Quantity is conserved across the split.
	assert.Equal(t, totalBefore, parent.ItemCount()+child.ItemCount())
	assert.Equal(t, 3, parent.ItemCount())
	assert.Equal(t, 2, child.ItemCount())

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSplitOrderCommandHandler_Handle_SecondSplitContinuesNumbering(t *testing.T) {
	ctx, actor := boundContext(t)
	parent, shirts, _ := splitParent(t, actor.Tenant)

	cmd, err := commands.NewSplitOrderCommand(parent.ID(), "customer picks up shirts later",
		[]services.SplitSpec{{ItemIDs: []kernel.UUID{shirts.ID()}}})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, parent.ID()).Return(parent, nil).Once()
	// One child already exists from an earlier split.
	repo.On("CountChildren", mock.Anything, parent.ID()).Return(1, nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	repo.On("Update", mock.Anything, parent).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Kind == ports.EventOrderSplit && e.Number == "ORD-20251030-0003-S2"
	})).Return(nil).Once()

	h := commands.NewSplitOrderCommandHandler(factory, publisher)
	childIDs, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, childIDs, 1)

	child := repo.Calls[2].Arguments.Get(1).(*order.Order)
	assert.Equal(t, "ORD-20251030-0003-S2", child.OrderNumber())

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSplitOrderCommandHandler_Handle_RejectsShortReason(t *testing.T) {
	_, err := commands.NewSplitOrderCommand(kernel.NewUUID(), "oops",
		[]services.SplitSpec{{QuickDropQuantity: 1}})
	require.ErrorIs(t, err, commands.ErrSplitReasonIsTooShort)
}

func TestSplitOrderCommandHandler_Handle_RollsBackWhenChildInsertFails(t *testing.T) {
	ctx, actor := boundContext(t)
	parent, shirts, _ := splitParent(t, actor.Tenant)

	cmd, err := commands.NewSplitOrderCommand(parent.ID(), "customer picks up shirts later",
		[]services.SplitSpec{{ItemIDs: []kernel.UUID{shirts.ID()}}})
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, parent.ID()).Return(parent, nil).Once()
	repo.On("CountChildren", mock.Anything, parent.ID()).Return(0, nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
		Return(assert.AnError).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewSplitOrderCommandHandler(factory, publisher)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit")
	publisher.AssertNotCalled(t, "Publish")
}
