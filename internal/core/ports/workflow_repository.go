package ports

import (
	"context"

	"laundry/internal/core/domain/model/workflow"
)

// WorkflowRepository defines the persistence contract for tenant workflow
// configurations. A tenant has one tenant-wide workflow plus optional
// per-service-category overrides.
type WorkflowRepository interface {
	// Get resolves the workflow for the given service category: the
	// category-specific configuration when one is stored, otherwise the
	// tenant-wide one, otherwise the default progression.
	Get(ctx context.Context, serviceCategory string) (*workflow.Workflow, error)

	// Save replaces the current tenant's workflow with a validated one.
	// In-flight orders keep their status; only future transitions are
	// evaluated against the new graph.
	Save(ctx context.Context, wf *workflow.Workflow) error
}
