package postgres_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	postgres_adapter "laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/issuerepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/tenantguard"
	"laundry/internal/adapters/out/postgres/workflowrepo"
	"laundry/internal/core/domain/model/issue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/tenantctx"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory

	tenant kernel.TenantID
	ctx    context.Context
}

// SetupSuite initializes the PostgreSQL container and database connection and
// runs migrations to prepare the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PieceDTO{},
		&orderrepo.StepDTO{},
		&orderrepo.HistoryDTO{},
		&orderrepo.NumberSequenceDTO{},
		&workflowrepo.WorkflowDTO{},
		&issuerepo.IssueDTO{},
	)
	suite.Require().NoError(err)

	guard := tenantguard.NewGuard(tenantguard.Hardened, slog.Default())
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, guard)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, order_pieces, order_steps, order_history, order_number_sequences, workflows, issues",
	).Error
	suite.Require().NoError(err)

	suite.tenant = kernel.NewTenantID()
	suite.ctx = tenantctx.Bind(context.Background(), tenantctx.Actor{
		UserID: "user-1",
		Tenant: suite.tenant,
		Role:   "attendant",
	})
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
	wf := workflow.DefaultWorkflow(suite.tenant)
	receivedAt := time.Date(2025, 10, 30, 10, 0, 0, 0, time.UTC)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), suite.tenant, kernel.NewUUID(),
		"ORD-20251030-0001", "laundry", order.PriorityNormal, receivedAt, wf, "user-1",
	)
	suite.Require().NoError(err)

	item, err := order.NewItem(kernel.NewUUID(), 1, kernel.Money(500))
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItem(item))

	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.WorkflowRepository())
	suite.NotNil(uow1.IssueRepository())
	suite.NotNil(uow2.OrderRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Multiple begin calls are safe.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Commit and rollback without an active transaction fail.
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAcrossRepositories() {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(suite.ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(suite.ctx, testOrder))

	issueEntity, err := issue.NewIssue(
		testOrder.ID(), testOrder.Items()[0].ID(),
		issue.CodeStain, "ink stain on collar", issue.PriorityMedium,
		"", "user-1", time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.IssueRepository().Add(suite.ctx, issueEntity))

	// The issue count is visible inside the transaction before commit.
	count, err := uow.IssueRepository().CountUnresolvedByOrder(suite.ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	suite.Require().NoError(uow.Commit(suite.ctx))

	verify := suite.factory.Create()
	retrieved, err := verify.OrderRepository().Get(suite.ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())

	issues, err := verify.IssueRepository().GetAllByOrder(suite.ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(issues, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChanges() {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(suite.ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(suite.ctx, testOrder))

	suite.Require().NoError(uow.Rollback(suite.ctx))

	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WorkflowRepositoryDefaultsAndSaves() {
	uow := suite.factory.Create()

	// No stored configuration yet: the default progression applies.
	wf, err := uow.WorkflowRepository().Get(suite.ctx, "")
	suite.Require().NoError(err)
	suite.Equal(workflow.StatusDraft, wf.InitialStep())

	custom, err := workflow.NewWorkflow(suite.tenant, "",
		[]workflow.Step{
			{Code: "draft", Stage: workflow.StageIntake},
			{Code: "washing", Stage: workflow.StageOperational},
			{Code: "closed", Stage: workflow.StageClosed},
		},
		map[string][]string{
			"draft":   {"washing"},
			"washing": {"closed"},
		},
		nil,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.WorkflowRepository().Save(suite.ctx, custom))

	stored, err := uow.WorkflowRepository().Get(suite.ctx, "")
	suite.Require().NoError(err)
	suite.Len(stored.Steps(), 3)
	suite.NoError(stored.CanTransition("draft", "washing"))
	suite.Error(stored.CanTransition("draft", "closed"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WorkflowRepositoryResolvesByCategory() {
	uow := suite.factory.Create()

	tenantWide, err := workflow.NewWorkflow(suite.tenant, "",
		[]workflow.Step{
			{Code: "draft", Stage: workflow.StageIntake},
			{Code: "washing", Stage: workflow.StageOperational},
			{Code: "closed", Stage: workflow.StageClosed},
		},
		map[string][]string{
			"draft":   {"washing"},
			"washing": {"closed"},
		},
		nil,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.WorkflowRepository().Save(suite.ctx, tenantWide))

	// A category without its own configuration falls back to the tenant-wide
	// one.
	resolved, err := uow.WorkflowRepository().Get(suite.ctx, "alterations")
	suite.Require().NoError(err)
	suite.Equal("", resolved.ServiceCategory())
	suite.NoError(resolved.CanTransition("draft", "washing"))

	alterations, err := workflow.NewWorkflow(suite.tenant, "alterations",
		[]workflow.Step{
			{Code: "draft", Stage: workflow.StageIntake},
			{Code: "fitting", Stage: workflow.StageOperational},
			{Code: "closed", Stage: workflow.StageClosed},
		},
		map[string][]string{
			"draft":   {"fitting"},
			"fitting": {"closed"},
		},
		nil,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.WorkflowRepository().Save(suite.ctx, alterations))

	// Once stored, the category-specific configuration wins.
	resolved, err = uow.WorkflowRepository().Get(suite.ctx, "alterations")
	suite.Require().NoError(err)
	suite.Equal("alterations", resolved.ServiceCategory())
	suite.NoError(resolved.CanTransition("draft", "fitting"))
	suite.Error(resolved.CanTransition("draft", "washing"))

	// Other categories keep resolving to the tenant-wide configuration.
	resolved, err = uow.WorkflowRepository().Get(suite.ctx, "laundry")
	suite.Require().NoError(err)
	suite.Equal("", resolved.ServiceCategory())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
