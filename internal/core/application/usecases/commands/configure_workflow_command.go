package commands

import (
	"errors"

	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/guard"
)

var (
	ErrConfigureWorkflowCommandIsNotConstructed = errors.New(
		"ConfigureWorkflowCommand must be created via NewConfigureWorkflowCommand constructor",
	)
	ErrWorkflowStepsAreRequired = errors.New("at least one workflow step is required")
)

// ConfigureWorkflowCommand represents a request to replace the tenant's
// workflow configuration. Graph validation happens in the handler once the
// tenant is known, so a rejected graph never reaches storage.
type ConfigureWorkflowCommand struct { //nolint:recvcheck //using for validation
	serviceCategory string
	steps           []workflow.Step
	transitions     map[string][]string
	gates           map[workflow.Edge][]string

	guard guard.ConstructorGuard
}

// NewConfigureWorkflowCommand creates a workflow configuration request.
// serviceCategory may be empty for the tenant-wide default.
func NewConfigureWorkflowCommand(
	serviceCategory string,
	steps []workflow.Step,
	transitions map[string][]string,
	gates map[workflow.Edge][]string,
) (ConfigureWorkflowCommand, error) {
	cmd := ConfigureWorkflowCommand{
		guard: guard.NewConstructorGuard(),
	}

	if len(steps) == 0 {
		return ConfigureWorkflowCommand{}, ErrWorkflowStepsAreRequired
	}

	cmd.serviceCategory = serviceCategory
	cmd.steps = steps
	cmd.transitions = transitions
	cmd.gates = gates
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfigureWorkflowCommand) Validate() error {
	return c.guard.Validate(ErrConfigureWorkflowCommandIsNotConstructed)
}

// ServiceCategory returns the category the configuration applies to.
func (c ConfigureWorkflowCommand) ServiceCategory() string {
	return c.serviceCategory
}

// Steps returns the ordered step list.
func (c ConfigureWorkflowCommand) Steps() []workflow.Step {
	return c.steps
}

// Transitions returns the allowed-transition adjacency map.
func (c ConfigureWorkflowCommand) Transitions() map[string][]string {
	return c.transitions
}

// Gates returns the gate names attached to each edge.
func (c ConfigureWorkflowCommand) Gates() map[workflow.Edge][]string {
	return c.gates
}
