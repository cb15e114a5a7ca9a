package cmd

import (
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"

	"gorm.io/gorm"
)

// defaultCategoryTurnarounds maps service categories to their standard
// turnaround in hours. A request's explicit turnaround always wins.
var defaultCategoryTurnarounds = map[string]float64{
	"laundry":      24,
	"dry_cleaning": 48,
	"alterations":  72,
}

type CompositionRoot struct {
	config       Config
	gormDB       *gorm.DB
	uowFactory   ports.UnitOfWorkFactory
	publisher    ports.EventPublisher
	hoursPolicy  *services.BusinessHoursPolicy
	queryTimeout time.Duration
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.EventPublisher,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: uowFactory,
		publisher:  publisher,
		hoursPolicy: &services.BusinessHoursPolicy{
			OpenHour:  8,
			CloseHour: 20,
			WorkingDays: []time.Weekday{
				time.Monday, time.Tuesday, time.Wednesday,
				time.Thursday, time.Friday, time.Saturday,
			},
		},
		queryTimeout: config.QueryTimeout,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.hoursPolicy, defaultCategoryTurnarounds)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSplitOrderCommandHandler() commands.SplitOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSplitOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreateIssueCommandHandler() commands.CreateIssueCommandHandler {
	var f commands.IssueUoWFactory = FuncIssueUoWFactory(func() commands.IssueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateIssueCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateResolveIssueCommandHandler() commands.ResolveIssueCommandHandler {
	var f commands.IssueUoWFactory = FuncIssueUoWFactory(func() commands.IssueUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveIssueCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRecordProcessingStepCommandHandler() commands.RecordProcessingStepCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordProcessingStepCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdatePiecesCommandHandler() commands.UpdatePiecesCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePiecesCommandHandler(f)
}

func (c *CompositionRoot) CreateConfigureWorkflowCommandHandler() commands.ConfigureWorkflowCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfigureWorkflowCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.queryTimeout)
}

func (c *CompositionRoot) CreateListActiveOrdersQueryHandler() queries.ListActiveOrdersQueryHandler {
	return queries.NewListActiveOrdersQueryHandler(c.gormDB, c.queryTimeout)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncIssueUoWFactory func() commands.IssueUoW

func (f FuncIssueUoWFactory) Create() commands.IssueUoW {
	return f()
}

type FuncWorkflowUoWFactory func() commands.WorkflowUoW

func (f FuncWorkflowUoWFactory) Create() commands.WorkflowUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
