package queries

import (
	"context"
	"errors"
	"time"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/tenantctx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultQueryTimeout is the latency ceiling applied to read queries when no
// explicit timeout is configured.
const DefaultQueryTimeout = 2 * time.Second

// ListActiveOrdersQueryHandler reads the tenant's active order board from the
// database. Terminal orders (stage closed) are excluded.
type ListActiveOrdersQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewListActiveOrdersQueryHandler creates a handler for the active order
// board. A non-positive timeout falls back to DefaultQueryTimeout.
func NewListActiveOrdersQueryHandler(db *gorm.DB, timeout time.Duration) ListActiveOrdersQueryHandler {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return ListActiveOrdersQueryHandler{db: db, timeout: timeout}
}

// Handle executes the board query under the configured latency ceiling.
// Exceeding the ceiling yields a QueryTimeout error rather than an unbounded
// wait.
func (h ListActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListActiveOrdersQuery,
) ([]ListActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	tenant, err := tenantctx.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	orders := make([]ListActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			stage,
			priority,
			item_count,
			total_amount,
			ready_by,
			has_issue
		FROM orders
		WHERE tenant_id = ? AND stage != ?
		ORDER BY (ready_by IS NULL), ready_by, order_number
	`, tenant.Bytes(), "closed").Rows()
	if err != nil {
		return nil, h.mapTimeout("ListActiveOrders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var resp ListActiveOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.Status,
			&resp.Stage,
			&resp.Priority,
			&resp.ItemCount,
			&resp.TotalAmountCents,
			&resp.ReadyBy,
			&resp.HasIssue,
		)
		if err != nil {
			return nil, err
		}
		resp.ID = id.String()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, h.mapTimeout("ListActiveOrders", err)
	}

	return orders, nil
}

func (h ListActiveOrdersQueryHandler) mapTimeout(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewQueryTimeoutError(operation, err)
	}
	return err
}
