package http

import "time"

// ErrorBody is the JSON error payload returned by every failing request.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func errorBody(code int, message string) ErrorBody {
	return ErrorBody{Code: code, Message: message}
}

// CreateOrderItemRequest is one line item of an intake request.
type CreateOrderItemRequest struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	TrackPieces    bool   `json:"trackPieces"`
}

// CreateOrderRequest is the intake payload. Either items or quickDrop with a
// bag quantity; the command constructor rejects mixtures.
type CreateOrderRequest struct {
	CustomerID      string                   `json:"customerId"`
	ServiceCategory string                   `json:"serviceCategory"`
	Priority        string                   `json:"priority"`
	Items           []CreateOrderItemRequest `json:"items"`
	QuickDrop       bool                     `json:"quickDrop"`
	BagQuantity     int                      `json:"bagQuantity"`
	TurnaroundHours float64                  `json:"turnaroundHours"`
	ReadyByOverride *time.Time               `json:"readyByOverride"`
}

// CreateOrderResponse returns the identifier of the new order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// TransitionOrderRequest moves an order to a target status.
type TransitionOrderRequest struct {
	ToStatus string            `json:"toStatus"`
	Notes    string            `json:"notes"`
	Metadata map[string]string `json:"metadata"`
}

// TransitionOrderResponse returns the committed order summary after a
// transition.
type TransitionOrderResponse struct {
	ID      string     `json:"id"`
	Status  string     `json:"status"`
	Stage   string     `json:"stage"`
	Version int        `json:"version"`
	ReadyBy *time.Time `json:"readyBy"`
}

// SplitSpecRequest describes one child order of a split.
type SplitSpecRequest struct {
	ItemIDs           []string `json:"itemIds"`
	PieceIDs          []string `json:"pieceIds"`
	QuickDropQuantity int      `json:"quickDropQuantity"`
}

// SplitOrderRequest divides an order into child orders.
type SplitOrderRequest struct {
	Reason string             `json:"reason"`
	Specs  []SplitSpecRequest `json:"specs"`
}

// SplitOrderResponse returns the identifiers of the created child orders,
// one per split spec.
type SplitOrderResponse struct {
	ChildOrderIDs []string `json:"childOrderIds"`
}

// CreateIssueRequest raises a quality issue against an order item.
type CreateIssueRequest struct {
	Code     string `json:"code"`
	Text     string `json:"text"`
	Priority string `json:"priority"`
	PhotoRef string `json:"photoRef"`
}

// ResolveIssueRequest closes an issue.
type ResolveIssueRequest struct {
	Notes string `json:"notes"`
}

// RecordStepRequest appends one processing step to an item's log.
type RecordStepRequest struct {
	Code  string `json:"code"`
	Notes string `json:"notes"`
}

// PieceUpdateRequest is one entry of a batch piece update. Absent fields are
// left untouched.
type PieceUpdateRequest struct {
	PieceID      string  `json:"pieceId"`
	Barcode      *string `json:"barcode"`
	Status       *string `json:"status"`
	RackLocation *string `json:"rackLocation"`
	Rejected     *bool   `json:"rejected"`
	Notes        *string `json:"notes"`
}

// UpdatePiecesRequest is the batch piece update payload.
type UpdatePiecesRequest struct {
	Updates []PieceUpdateRequest `json:"updates"`
}

// WorkflowStepRequest is one step of a workflow configuration.
type WorkflowStepRequest struct {
	Code  string `json:"code"`
	Stage string `json:"stage"`
}

// WorkflowGateRequest attaches gates to one transition edge.
type WorkflowGateRequest struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Gates []string `json:"gates"`
}

// ConfigureWorkflowRequest replaces the tenant's workflow configuration.
type ConfigureWorkflowRequest struct {
	ServiceCategory string                `json:"serviceCategory"`
	Steps           []WorkflowStepRequest `json:"steps"`
	Transitions     map[string][]string   `json:"transitions"`
	Gates           []WorkflowGateRequest `json:"gates"`
}
