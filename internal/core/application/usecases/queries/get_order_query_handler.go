package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/tenantctx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order's detail view from the database.
// An order belonging to another tenant is reported as not found, exactly like
// a nonexistent one.
type GetOrderQueryHandler struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGetOrderQueryHandler creates a handler for order detail reads.
// A non-positive timeout falls back to DefaultQueryTimeout.
func NewGetOrderQueryHandler(db *gorm.DB, timeout time.Duration) GetOrderQueryHandler {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return GetOrderQueryHandler{db: db, timeout: timeout}
}

// Handle executes the detail query under the configured latency ceiling.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}
	tenant, err := tenantctx.Tenant(ctx)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp, err := h.header(ctx, tenant.Bytes(), query)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Items, err = h.items(ctx, query)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM issues WHERE tenant_id = ? AND order_id = ? AND solved_at IS NULL
	`, tenant.Bytes(), query.OrderID().Bytes()).Row()
	if err = row.Scan(&resp.UnresolvedIssues); err != nil {
		return GetOrderQueryResponse{}, h.mapTimeout(err)
	}

	return resp, nil
}

func (h GetOrderQueryHandler) header(ctx context.Context, tenant uuid.UUID, query GetOrderQuery) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var id, customerID uuid.UUID
	var parentID *uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id, customer_id, order_number, service_category,
			status, stage, priority,
			quick_drop, quick_drop_quantity,
			item_count, total_amount,
			received_at, ready_by,
			has_issue, rejected, parent_id
		FROM orders
		WHERE tenant_id = ? AND id = ?
	`, tenant, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id, &customerID, &resp.OrderNumber, &resp.ServiceCategory,
		&resp.Status, &resp.Stage, &resp.Priority,
		&resp.QuickDrop, &resp.QuickDropQuantity,
		&resp.ItemCount, &resp.TotalAmountCents,
		&resp.ReceivedAt, &resp.ReadyBy,
		&resp.HasIssue, &resp.Rejected, &parentID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, h.mapTimeout(err)
	}

	resp.ID = id.String()
	resp.CustomerID = customerID.String()
	if parentID != nil {
		s := parentID.String()
		resp.ParentID = &s
	}
	return resp, nil
}

func (h GetOrderQueryHandler) items(ctx context.Context, query GetOrderQuery) ([]GetOrderItemResponse, error) {
	items := make([]GetOrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.id, i.product_id, i.quantity, i.unit_price, i.total_price,
			i.status, i.last_step, i.has_stain, i.has_damage,
			(SELECT COUNT(*) FROM order_pieces p WHERE p.item_id = i.id)
		FROM order_items i
		WHERE i.order_id = ?
		ORDER BY i.id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, h.mapTimeout(err)
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderItemResponse
		var id, productID uuid.UUID

		err = rows.Scan(
			&id, &productID, &item.Quantity, &item.UnitPriceCents, &item.TotalAmountCents,
			&item.Status, &item.LastStep, &item.HasStain, &item.HasDamage,
			&item.PieceCount,
		)
		if err != nil {
			return nil, err
		}
		item.ID = id.String()
		item.ProductID = productID.String()
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, h.mapTimeout(err)
	}

	return items, nil
}

func (h GetOrderQueryHandler) mapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.NewQueryTimeoutError("GetOrder", err)
	}
	return err
}
