package workflowrepo_test

import (
	"context"
	"log/slog"
	"testing"

	"laundry/internal/adapters/out/postgres/tenantguard"
	"laundry/internal/adapters/out/postgres/workflowrepo"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/tenantctx"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type WorkflowRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *workflowrepo.GormWorkflowRepository

	tenant kernel.TenantID
	ctx    context.Context
}

func (suite *WorkflowRepositoryTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open("file:workflowrepo_test?mode=memory&cache=shared"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(db.AutoMigrate(&workflowrepo.WorkflowDTO{}))
	suite.db = db
}

func (suite *WorkflowRepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("DELETE FROM workflows").Error)

	guard := tenantguard.NewGuard(tenantguard.Hardened, slog.Default())
	suite.repo = workflowrepo.NewGormWorkflowRepository(suite.db, guard)

	suite.tenant = kernel.NewTenantID()
	suite.ctx = tenantctx.Bind(context.Background(), tenantctx.Actor{
		UserID: "user-1",
		Tenant: suite.tenant,
		Role:   "attendant",
	})
}

// newWorkflow builds a minimal draft -> middle -> closed progression for the
// given category.
func (suite *WorkflowRepositoryTestSuite) newWorkflow(category, middle string) *workflow.Workflow {
	wf, err := workflow.NewWorkflow(suite.tenant, category,
		[]workflow.Step{
			{Code: "draft", Stage: workflow.StageIntake},
			{Code: middle, Stage: workflow.StageOperational},
			{Code: "closed", Stage: workflow.StageClosed},
		},
		map[string][]string{
			"draft": {middle},
			middle:  {"closed"},
		},
		nil,
	)
	suite.Require().NoError(err)
	return wf
}

func (suite *WorkflowRepositoryTestSuite) TestGet_NoStoredConfiguration_ReturnsDefault() {
	wf, err := suite.repo.Get(suite.ctx, "laundry")

	suite.Require().NoError(err)
	suite.Equal(workflow.StatusDraft, wf.InitialStep())
	suite.Equal("", wf.ServiceCategory())
}

func (suite *WorkflowRepositoryTestSuite) TestGet_CategorySpecificWinsOverTenantWide() {
	suite.Require().NoError(suite.repo.Save(suite.ctx, suite.newWorkflow("", "washing")))
	suite.Require().NoError(suite.repo.Save(suite.ctx, suite.newWorkflow("alterations", "fitting")))

	resolved, err := suite.repo.Get(suite.ctx, "alterations")

	suite.Require().NoError(err)
	suite.Equal("alterations", resolved.ServiceCategory())
	suite.NoError(resolved.CanTransition("draft", "fitting"))
	suite.Error(resolved.CanTransition("draft", "washing"))
}

func (suite *WorkflowRepositoryTestSuite) TestGet_UnknownCategory_FallsBackToTenantWide() {
	suite.Require().NoError(suite.repo.Save(suite.ctx, suite.newWorkflow("", "washing")))
	suite.Require().NoError(suite.repo.Save(suite.ctx, suite.newWorkflow("alterations", "fitting")))

	resolved, err := suite.repo.Get(suite.ctx, "laundry")

	suite.Require().NoError(err)
	suite.Equal("", resolved.ServiceCategory())
	suite.NoError(resolved.CanTransition("draft", "washing"))
}

func (suite *WorkflowRepositoryTestSuite) TestGet_ScopesToTenant() {
	suite.Require().NoError(suite.repo.Save(suite.ctx, suite.newWorkflow("", "washing")))

	otherCtx := tenantctx.Bind(context.Background(), tenantctx.Actor{
		UserID: "user-2",
		Tenant: kernel.NewTenantID(),
		Role:   "attendant",
	})
	resolved, err := suite.repo.Get(otherCtx, "")

	suite.Require().NoError(err)
	suite.Equal(workflow.StatusDraft, resolved.InitialStep())
	suite.Error(resolved.CanTransition("draft", "washing"))
}

func (suite *WorkflowRepositoryTestSuite) TestGet_UnboundContext_Fails() {
	_, err := suite.repo.Get(context.Background(), "")

	suite.Require().ErrorIs(err, errs.ErrTenantContextMissing)
}

func (suite *WorkflowRepositoryTestSuite) TestSave_ReplacesExistingConfiguration() {
	suite.Require().NoError(suite.repo.Save(suite.ctx, suite.newWorkflow("", "washing")))
	suite.Require().NoError(suite.repo.Save(suite.ctx, suite.newWorkflow("", "pressing")))

	resolved, err := suite.repo.Get(suite.ctx, "")

	suite.Require().NoError(err)
	suite.NoError(resolved.CanTransition("draft", "pressing"))
	suite.Error(resolved.CanTransition("draft", "washing"))
}

func TestWorkflowRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowRepositoryTestSuite))
}
