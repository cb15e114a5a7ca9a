package workflow

import "laundry/internal/core/domain/model/kernel"

// Default status codes. Tenants may configure their own progression; these are
// the codes a fresh tenant starts with and the ones the standard gates assume.
const (
	StatusDraft          = "draft"
	StatusIntake         = "intake"
	StatusPreparation    = "preparation"
	StatusProcessing     = "processing"
	StatusAssembly       = "assembly"
	StatusQA             = "qa"
	StatusPacking        = "packing"
	StatusReady          = "ready"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusClosed         = "closed"
	StatusCancelled      = "cancelled"
)

// Standard gate names evaluated by the gate evaluator. Configurations may
// attach any subset of these to an edge.
const (
	GateAllItemsProcessed  = "all_items_processed"
	GateAllItemsAssembled  = "all_items_assembled"
	GateAllPiecesScanned   = "all_pieces_scanned"
	GateQAPassed           = "qa_passed"
	GateNoUnresolvedIssues = "no_unresolved_issues"
)

// DefaultWorkflow builds the standard laundry progression for a tenant:
//
//	draft -> intake -> preparation -> processing -> assembly -> qa
//	      -> packing -> ready -> out_for_delivery -> delivered -> closed
//
// with cancelled reachable from every non-terminal status. The construction is
// known-valid, so the error from NewWorkflow is impossible by construction and
// treated as a programming error.
func DefaultWorkflow(tenantID kernel.TenantID) *Workflow {
	steps := []Step{
		{Code: StatusDraft, Stage: StageIntake},
		{Code: StatusIntake, Stage: StageIntake},
		{Code: StatusPreparation, Stage: StageOperational},
		{Code: StatusProcessing, Stage: StageOperational},
		{Code: StatusAssembly, Stage: StageOperational},
		{Code: StatusQA, Stage: StageQA},
		{Code: StatusPacking, Stage: StageDelivery},
		{Code: StatusReady, Stage: StageDelivery},
		{Code: StatusOutForDelivery, Stage: StageDelivery},
		{Code: StatusDelivered, Stage: StageDelivery},
		{Code: StatusClosed, Stage: StageClosed},
		{Code: StatusCancelled, Stage: StageClosed},
	}

	chain := []string{
		StatusDraft, StatusIntake, StatusPreparation, StatusProcessing,
		StatusAssembly, StatusQA, StatusPacking, StatusReady,
		StatusOutForDelivery, StatusDelivered, StatusClosed,
	}

	transitions := make(map[string][]string, len(chain))
	for i := 0; i < len(chain)-1; i++ {
		transitions[chain[i]] = []string{chain[i+1]}
	}
	// cancelled is reachable from every non-terminal status;
	// closed and cancelled themselves stay terminal.
	for _, code := range chain[:len(chain)-1] {
		transitions[code] = append(transitions[code], StatusCancelled)
	}

	gates := map[Edge][]string{
		{From: StatusProcessing, To: StatusAssembly}: {GateAllItemsProcessed},
		{From: StatusAssembly, To: StatusQA}:         {GateAllItemsAssembled},
		{From: StatusQA, To: StatusPacking}:          {GateQAPassed, GateNoUnresolvedIssues},
		{From: StatusPacking, To: StatusReady}:       {GateAllPiecesScanned},
	}

	w, err := NewWorkflow(tenantID, "", steps, transitions, gates)
	if err != nil {
		panic("workflow: default workflow failed validation: " + err.Error())
	}
	return w
}
