// Package workflowrepo persists tenant workflow configurations. The step
// list, transition map, and gate attachments are stored as one JSON document
// per tenant and category; the graph is re-validated on load so storage can
// never hand the state machine an unvalidated configuration.
package workflowrepo

import (
	"encoding/json"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workflow"

	"github.com/google/uuid"
)

// WorkflowDTO represents the database structure for one workflow
// configuration.
type WorkflowDTO struct {
	TenantID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceCategory string    `gorm:"primaryKey"`
	Definition      string
}

// TableName specifies the database table name for workflow configurations.
func (WorkflowDTO) TableName() string {
	return "workflows"
}

// TenantValue returns the stored tenant column.
func (d *WorkflowDTO) TenantValue() uuid.UUID { return d.TenantID }

// SetTenant overwrites the stored tenant column.
func (d *WorkflowDTO) SetTenant(id uuid.UUID) { d.TenantID = id }

type stepDef struct {
	Code  string `json:"code"`
	Stage string `json:"stage"`
}

type gateDef struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Gates []string `json:"gates"`
}

type workflowDef struct {
	Steps       []stepDef           `json:"steps"`
	Transitions map[string][]string `json:"transitions"`
	Gates       []gateDef           `json:"gates,omitempty"`
}

// fromDomain serializes a workflow into its stored JSON definition.
func fromDomain(wf *workflow.Workflow) (WorkflowDTO, error) {
	def := workflowDef{
		Transitions: map[string][]string{},
	}
	for _, step := range wf.Steps() {
		def.Steps = append(def.Steps, stepDef{Code: step.Code, Stage: string(step.Stage)})
		if targets := wf.AllowedFrom(step.Code); len(targets) > 0 {
			def.Transitions[step.Code] = targets
			for _, to := range targets {
				if gates := wf.Gates(step.Code, to); len(gates) > 0 {
					def.Gates = append(def.Gates, gateDef{From: step.Code, To: to, Gates: gates})
				}
			}
		}
	}

	raw, err := json.Marshal(def)
	if err != nil {
		return WorkflowDTO{}, err
	}
	return WorkflowDTO{
		TenantID:        wf.TenantID().Bytes(),
		ServiceCategory: wf.ServiceCategory(),
		Definition:      string(raw),
	}, nil
}

// toDomain rebuilds and re-validates a workflow from its stored definition.
func toDomain(dto WorkflowDTO) (*workflow.Workflow, error) {
	var def workflowDef
	if err := json.Unmarshal([]byte(dto.Definition), &def); err != nil {
		return nil, err
	}

	tenantID, err := kernel.TenantIDFromString(dto.TenantID.String())
	if err != nil {
		return nil, err
	}

	steps := make([]workflow.Step, 0, len(def.Steps))
	for _, s := range def.Steps {
		steps = append(steps, workflow.Step{Code: s.Code, Stage: workflow.Stage(s.Stage)})
	}
	gates := make(map[workflow.Edge][]string, len(def.Gates))
	for _, g := range def.Gates {
		gates[workflow.Edge{From: g.From, To: g.To}] = g.Gates
	}

	return workflow.NewWorkflow(tenantID, dto.ServiceCategory, steps, def.Transitions, gates)
}
