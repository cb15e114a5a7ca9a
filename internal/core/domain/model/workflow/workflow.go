package workflow

import (
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// ErrWorkflowIsNotConstructed is returned when a Workflow instance was not
// created through NewWorkflow or DefaultWorkflow.
var ErrWorkflowIsNotConstructed = fmt.Errorf("Workflow must be created via NewWorkflow constructor")

// Stage is a coarse grouping of status codes used by dashboards. Derived from
// the step a status belongs to, never stored independently.
type Stage string

const (
	StageIntake      Stage = "intake"
	StageOperational Stage = "operational"
	StageQA          Stage = "qa"
	StageDelivery    Stage = "delivery"
	StageClosed      Stage = "closed"
)

// Step is one status code in a tenant's configured progression, together with
// the stage it reports under.
type Step struct {
	Code  string
	Stage Stage
}

// Edge identifies one allowed from->to transition.
type Edge struct {
	From string
	To   string
}

// Workflow is the per-tenant (optionally per-service-category) configuration
// the order state machine executes against: the ordered step list, the
// adjacency map of allowed transitions, and the named quality gates attached
// to each edge.
//
// A Workflow is validated at construction time, so a loaded configuration can
// be trusted by the state machine: every edge references known steps, every
// non-initial step is reachable from the initial step, nothing transitions
// back into the initial step, and no edge is a self-loop.
//
// Gate semantics on an edge are conjunctive: every named gate must pass.
// An edge with zero gates is unconditionally allowed.
type Workflow struct {
	tenantID        kernel.TenantID
	serviceCategory string
	steps           []Step
	transitions     map[string][]string
	gates           map[Edge][]string

	guard guard.ConstructorGuard
}

// NewWorkflow creates a validated workflow configuration.
// serviceCategory may be empty for the tenant-wide default configuration.
func NewWorkflow(
	tenantID kernel.TenantID,
	serviceCategory string,
	steps []Step,
	transitions map[string][]string,
	gates map[Edge][]string,
) (*Workflow, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, errs.NewValueIsRequiredError("steps")
	}

	w := &Workflow{
		tenantID:        tenantID,
		serviceCategory: serviceCategory,
		steps:           steps,
		transitions:     transitions,
		gates:           gates,
		guard:           guard.NewConstructorGuard(),
	}
	if err := w.validateGraph(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate ensures the workflow was created through its constructor.
func (w *Workflow) Validate() error {
	if w == nil {
		return ErrWorkflowIsNotConstructed
	}
	return w.guard.Validate(ErrWorkflowIsNotConstructed)
}

// TenantID returns the owning tenant.
func (w *Workflow) TenantID() kernel.TenantID {
	return w.tenantID
}

// ServiceCategory returns the category this configuration applies to,
// or "" for the tenant default.
func (w *Workflow) ServiceCategory() string {
	return w.serviceCategory
}

// Steps returns the ordered step list.
func (w *Workflow) Steps() []Step {
	return w.steps
}

// InitialStep returns the first step of the configured progression.
func (w *Workflow) InitialStep() string {
	return w.steps[0].Code
}

// HasStep reports whether code is one of the configured status codes.
func (w *Workflow) HasStep(code string) bool {
	for _, s := range w.steps {
		if s.Code == code {
			return true
		}
	}
	return false
}

// StageOf returns the stage grouping for a status code.
func (w *Workflow) StageOf(code string) (Stage, error) {
	for _, s := range w.steps {
		if s.Code == code {
			return s.Stage, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a configured workflow step", code))
}

// IsTerminal reports whether a status has no outgoing transitions.
func (w *Workflow) IsTerminal(code string) bool {
	return len(w.transitions[code]) == 0
}

// CanTransition checks whether to is reachable from from in one step.
// A transition to the current status is rejected: self-loops are not modeled
// as valid edges.
func (w *Workflow) CanTransition(from, to string) error {
	if !w.HasStep(to) || from == to {
		return errs.NewInvalidTransitionError(from, to)
	}
	for _, next := range w.transitions[from] {
		if next == to {
			return nil
		}
	}
	return errs.NewInvalidTransitionError(from, to)
}

// Gates returns the named quality gates attached to an edge. All returned
// gates must pass for the transition to be allowed; an empty result means the
// edge is unconditional.
func (w *Workflow) Gates(from, to string) []string {
	return w.gates[Edge{From: from, To: to}]
}

// AllowedFrom returns the status codes reachable from the given status.
func (w *Workflow) AllowedFrom(from string) []string {
	return w.transitions[from]
}

// validateGraph rejects configurations the state machine could not execute
// safely: unknown or duplicate step codes, edges referencing unknown steps,
// self-loops, transitions back into the initial step, and steps unreachable
// from the initial step.
func (w *Workflow) validateGraph() error {
	known := make(map[string]bool, len(w.steps))
	for _, s := range w.steps {
		if s.Code == "" {
			return errs.NewValueIsRequiredError("step code")
		}
		if known[s.Code] {
			return errs.NewValueIsInvalidErrorWithCause("steps",
				fmt.Errorf("duplicate step code %q", s.Code))
		}
		known[s.Code] = true
	}

	initial := w.InitialStep()
	for from, tos := range w.transitions {
		if !known[from] {
			return errs.NewValueIsInvalidErrorWithCause("transitions",
				fmt.Errorf("unknown step %q in adjacency map", from))
		}
		for _, to := range tos {
			if !known[to] {
				return errs.NewValueIsInvalidErrorWithCause("transitions",
					fmt.Errorf("unknown step %q reachable from %q", to, from))
			}
			if to == from {
				return errs.NewValueIsInvalidErrorWithCause("transitions",
					fmt.Errorf("self-loop on %q", from))
			}
			if to == initial {
				return errs.NewValueIsInvalidErrorWithCause("transitions",
					fmt.Errorf("transition from %q back into initial step %q", from, initial))
			}
		}
	}

	for edge := range w.gates {
		if !known[edge.From] || !known[edge.To] {
			return errs.NewValueIsInvalidErrorWithCause("gates",
				fmt.Errorf("gate attached to unknown edge %s -> %s", edge.From, edge.To))
		}
	}

	// Every non-initial step must be reachable from the initial step.
	reached := map[string]bool{initial: true}
	frontier := []string{initial}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, next := range w.transitions[current] {
			if !reached[next] {
				reached[next] = true
				frontier = append(frontier, next)
			}
		}
	}
	for code := range known {
		if !reached[code] {
			return errs.NewValueIsInvalidErrorWithCause("transitions",
				fmt.Errorf("step %q is unreachable from %q", code, initial))
		}
	}

	return nil
}
