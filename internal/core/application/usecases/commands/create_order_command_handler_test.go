package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/issue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/tenantctx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetByNumber(_ context.Context, _ string) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetOverdue(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) CountChildren(ctx context.Context, parentID kernel.UUID) (int, error) {
	args := m.Called(ctx, parentID)
	return args.Int(0), args.Error(1)
}
func (m *MockOrderRepository) NextNumberSequence(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type MockWorkflowRepository struct{ mock.Mock }

func (m *MockWorkflowRepository) Get(ctx context.Context, serviceCategory string) (*workflow.Workflow, error) {
	args := m.Called(ctx, serviceCategory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Workflow), args.Error(1)
}
func (m *MockWorkflowRepository) Save(ctx context.Context, wf *workflow.Workflow) error {
	args := m.Called(ctx, wf)
	return args.Error(0)
}

type MockIssueRepository struct{ mock.Mock }

func (m *MockIssueRepository) Add(ctx context.Context, i *issue.Issue) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}
func (m *MockIssueRepository) Update(ctx context.Context, i *issue.Issue) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}
func (m *MockIssueRepository) Get(ctx context.Context, id kernel.UUID) (*issue.Issue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*issue.Issue), args.Error(1)
}
func (m *MockIssueRepository) GetAllByOrder(_ context.Context, _ kernel.UUID) ([]*issue.Issue, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockIssueRepository) CountUnresolvedByOrder(ctx context.Context, orderID kernel.UUID) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockIssueRepository) GetUnresolvedOlderThan(_ context.Context, _ time.Time) ([]*issue.Issue, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) WorkflowRepository() ports.WorkflowRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkflowRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func boundContext(t *testing.T) (context.Context, tenantctx.Actor) {
	t.Helper()
	actor := tenantctx.Actor{UserID: "operator-1", Tenant: kernel.NewTenantID(), Role: "operator"}
	return tenantctx.Bind(t.Context(), actor), actor
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx, actor := boundContext(t)
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		"dry_cleaning", order.PriorityNormal, validItems(), false, 0, 48, nil, time.Time{})

	repo := new(MockOrderRepository)
	wfRepo := new(MockWorkflowRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("WorkflowRepository").Return(wfRepo).Once(),
		wfRepo.On("Get", mock.Anything, "dry_cleaning").Return(workflow.DefaultWorkflow(actor.Tenant), nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("NextNumberSequence", mock.Anything, mock.AnythingOfType("time.Time")).Return(7, nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e ports.OrderEvent) bool {
		return e.Kind == ports.EventOrderCreated && e.Tenant == actor.Tenant.String()
	})).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher, nil, nil)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	added := repo.Calls[1].Arguments.Get(1).(*order.Order)
	assert.Equal(t, workflow.StatusDraft, added.Status())
	assert.Equal(t, 2, added.ItemCount())
	assert.NotNil(t, added.ReadyBy())
	assert.Regexp(t, `^ORD-\d{8}-0007$`, added.OrderNumber())

	repo.AssertExpectations(t)
	wfRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_QuickDropSkipsDraft(t *testing.T) {
	ctx, actor := boundContext(t)
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		"", order.PriorityExpress, nil, true, 4, 24, nil, time.Time{})

	repo := new(MockOrderRepository)
	wfRepo := new(MockWorkflowRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkflowRepository").Return(wfRepo).Once()
	wfRepo.On("Get", mock.Anything, "").Return(workflow.DefaultWorkflow(actor.Tenant), nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("NextNumberSequence", mock.Anything, mock.AnythingOfType("time.Time")).Return(1, nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, publisher, nil, nil)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	added := repo.Calls[1].Arguments.Get(1).(*order.Order)
	assert.Equal(t, workflow.StatusIntake, added.Status())
	assert.True(t, added.IsQuickDrop())
	assert.Equal(t, 4, added.ItemCount())

	repo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_TenantContextMissing(t *testing.T) {
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		"", order.PriorityNormal, validItems(), false, 0, 48, nil, time.Time{})

	factory := new(MockOrderUoWFactory)
	publisher := new(MockEventPublisher)
	h := commands.NewCreateOrderCommandHandler(factory, publisher, nil, nil)

	err := h.Handle(t.Context(), cmd)
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx, actor := boundContext(t)
	cmd, _ := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(),
		"", order.PriorityNormal, validItems(), false, 0, 48, nil, time.Time{})

	repo := new(MockOrderRepository)
	wfRepo := new(MockWorkflowRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("WorkflowRepository").Return(wfRepo).Once()
	wfRepo.On("Get", mock.Anything, "").Return(workflow.DefaultWorkflow(actor.Tenant), nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("NextNumberSequence", mock.Anything, mock.AnythingOfType("time.Time")).Return(1, nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, publisher, nil, nil)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	publisher.AssertNotCalled(t, "Publish")
	uow.AssertNotCalled(t, "Commit")
}
