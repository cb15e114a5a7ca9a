// Package http exposes the order lifecycle engine over an echo HTTP API.
// Every business route sits behind the tenant middleware; handlers translate
// JSON payloads into commands and queries and map the error taxonomy onto
// status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/issue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	transitionOrderHandler   commands.TransitionOrderCommandHandler
	splitOrderHandler        commands.SplitOrderCommandHandler
	createIssueHandler       commands.CreateIssueCommandHandler
	resolveIssueHandler      commands.ResolveIssueCommandHandler
	recordStepHandler        commands.RecordProcessingStepCommandHandler
	updatePiecesHandler      commands.UpdatePiecesCommandHandler
	configureWorkflowHandler commands.ConfigureWorkflowCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	listActiveOrdersHandler queries.ListActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	splitOrderHandler commands.SplitOrderCommandHandler,
	createIssueHandler commands.CreateIssueCommandHandler,
	resolveIssueHandler commands.ResolveIssueCommandHandler,
	recordStepHandler commands.RecordProcessingStepCommandHandler,
	updatePiecesHandler commands.UpdatePiecesCommandHandler,
	configureWorkflowHandler commands.ConfigureWorkflowCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listActiveOrdersHandler queries.ListActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		transitionOrderHandler:   transitionOrderHandler,
		splitOrderHandler:        splitOrderHandler,
		createIssueHandler:       createIssueHandler,
		resolveIssueHandler:      resolveIssueHandler,
		recordStepHandler:        recordStepHandler,
		updatePiecesHandler:      updatePiecesHandler,
		configureWorkflowHandler: configureWorkflowHandler,
		getOrderHandler:          getOrderHandler,
		listActiveOrdersHandler:  listActiveOrdersHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1 behind the tenant middleware.
// The health probe stays outside it.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret []byte) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", TenantMiddleware(jwtSecret))
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/split", s.SplitOrder)
	api.POST("/orders/:id/items/:itemID/issues", s.CreateIssue)
	api.POST("/orders/:id/items/:itemID/steps", s.RecordStep)
	api.PATCH("/orders/:id/items/:itemID/pieces", s.UpdatePieces)
	api.POST("/issues/:id/resolve", s.ResolveIssue)
	api.PUT("/workflow", s.ConfigureWorkflow)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "invalid customer id: "+err.Error())
	}

	items := make([]commands.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, itemErr := kernel.UUIDFromString(item.ProductID)
		if itemErr != nil {
			return badRequest(ctx, "invalid product id: "+itemErr.Error())
		}
		items = append(items, commands.CreateOrderItem{
			ProductID:      productID,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			TrackPieces:    item.TrackPieces,
		})
	}

	// A zero receivedAt lets the command handler stamp the current time.
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, req.ServiceCategory, order.Priority(req.Priority),
		items, req.QuickDrop, req.BagQuantity,
		req.TurnaroundHours, req.ReadyByOverride, time.Time{},
	)
	if err != nil {
		return badRequest(ctx, "invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req TransitionOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, req.ToStatus, req.Notes, req.Metadata)
	if err != nil {
		return badRequest(ctx, "invalid transition data: "+err.Error())
	}

	result, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, TransitionOrderResponse{
		ID:      result.OrderID,
		Status:  result.Status,
		Stage:   result.Stage,
		Version: result.Version,
		ReadyBy: result.ReadyBy,
	})
}

// SplitOrder handles POST /api/v1/orders/:id/split.
func (s *Server) SplitOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req SplitOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	specs := make([]services.SplitSpec, 0, len(req.Specs))
	for _, spec := range req.Specs {
		itemIDs, specErr := parseUUIDs(spec.ItemIDs)
		if specErr != nil {
			return badRequest(ctx, "invalid item id: "+specErr.Error())
		}
		pieceIDs, specErr := parseUUIDs(spec.PieceIDs)
		if specErr != nil {
			return badRequest(ctx, "invalid piece id: "+specErr.Error())
		}
		specs = append(specs, services.SplitSpec{
			ItemIDs:           itemIDs,
			PieceIDs:          pieceIDs,
			QuickDropQuantity: spec.QuickDropQuantity,
		})
	}

	cmd, err := commands.NewSplitOrderCommand(orderID, req.Reason, specs)
	if err != nil {
		return badRequest(ctx, "invalid split data: "+err.Error())
	}

	childIDs, err := s.splitOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	response := SplitOrderResponse{ChildOrderIDs: make([]string, 0, len(childIDs))}
	for _, id := range childIDs {
		response.ChildOrderIDs = append(response.ChildOrderIDs, id.String())
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateIssue handles POST /api/v1/orders/:id/items/:itemID/issues.
func (s *Server) CreateIssue(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	itemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req CreateIssueRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateIssueCommand(
		orderID, itemID, issue.Code(req.Code), req.Text, issue.Priority(req.Priority), req.PhotoRef,
	)
	if err != nil {
		return badRequest(ctx, "invalid issue data: "+err.Error())
	}

	if err = s.createIssueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// ResolveIssue handles POST /api/v1/issues/:id/resolve.
func (s *Server) ResolveIssue(ctx echo.Context) error {
	issueID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req ResolveIssueRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewResolveIssueCommand(issueID, req.Notes)
	if err != nil {
		return badRequest(ctx, "invalid resolution data: "+err.Error())
	}

	if err = s.resolveIssueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RecordStep handles POST /api/v1/orders/:id/items/:itemID/steps.
func (s *Server) RecordStep(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	itemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req RecordStepRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRecordProcessingStepCommand(orderID, itemID, order.StepCode(req.Code), req.Notes)
	if err != nil {
		return badRequest(ctx, "invalid step data: "+err.Error())
	}

	if err = s.recordStepHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// UpdatePieces handles PATCH /api/v1/orders/:id/items/:itemID/pieces.
func (s *Server) UpdatePieces(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	itemID, err := pathUUID(ctx, "itemID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var req UpdatePiecesRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	updates := make([]order.PieceUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		pieceID, updateErr := kernel.UUIDFromString(u.PieceID)
		if updateErr != nil {
			return badRequest(ctx, "invalid piece id: "+updateErr.Error())
		}
		var status *order.PieceStatus
		if u.Status != nil {
			converted := order.PieceStatus(*u.Status)
			status = &converted
		}
		updates = append(updates, order.PieceUpdate{
			PieceID:      pieceID,
			Barcode:      u.Barcode,
			Status:       status,
			RackLocation: u.RackLocation,
			Rejected:     u.Rejected,
			Notes:        u.Notes,
		})
	}

	cmd, err := commands.NewUpdatePiecesCommand(orderID, itemID, updates)
	if err != nil {
		return badRequest(ctx, "invalid piece batch: "+err.Error())
	}

	if err = s.updatePiecesHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfigureWorkflow handles PUT /api/v1/workflow - replaces the tenant's
// workflow configuration.
func (s *Server) ConfigureWorkflow(ctx echo.Context) error {
	var req ConfigureWorkflowRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	steps := make([]workflow.Step, 0, len(req.Steps))
	for _, step := range req.Steps {
		steps = append(steps, workflow.Step{Code: step.Code, Stage: workflow.Stage(step.Stage)})
	}
	gates := make(map[workflow.Edge][]string, len(req.Gates))
	for _, gate := range req.Gates {
		gates[workflow.Edge{From: gate.From, To: gate.To}] = gate.Gates
	}

	cmd, err := commands.NewConfigureWorkflowCommand(req.ServiceCategory, steps, req.Transitions, gates)
	if err != nil {
		return badRequest(ctx, "invalid workflow data: "+err.Error())
	}

	if err = s.configureWorkflowHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with items,
// pieces, and unresolved issue count.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves the tenant's
// non-terminal orders ordered by ready-by.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewListActiveOrdersQuery()

	response, err := s.listActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, response)
}

// mapError translates the error taxonomy onto HTTP status codes. Unclassified
// errors return an opaque 500 so internals never leak to clients.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrTenantContextMissing):
		return ctx.JSON(http.StatusUnauthorized, errorBody(http.StatusUnauthorized, "tenant context missing"))
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorBody(http.StatusNotFound, err.Error()))
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrGateNotSatisfied),
		errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, errs.ErrAlreadyResolved):
		return ctx.JSON(http.StatusConflict, errorBody(http.StatusConflict, err.Error()))
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, err.Error()))
	default:
		return ctx.JSON(http.StatusInternalServerError, errorBody(http.StatusInternalServerError, "internal error"))
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorBody(http.StatusBadRequest, message))
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func parseUUIDs(raw []string) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
