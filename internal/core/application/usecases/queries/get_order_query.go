package queries

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its items for the detail view.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's detail view.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderItemResponse is one item line of the order detail view.
type GetOrderItemResponse struct {
	ID               string
	ProductID        string
	Quantity         int
	UnitPriceCents   int64
	TotalAmountCents int64
	Status           string
	LastStep         string
	HasStain         bool
	HasDamage        bool
	PieceCount       int
}

// GetOrderQueryResponse is the order detail view: the header row plus its
// item lines and the live count of unresolved issues.
type GetOrderQueryResponse struct {
	ID                string
	OrderNumber       string
	CustomerID        string
	ServiceCategory   string
	Status            string
	Stage             string
	Priority          string
	QuickDrop         bool
	QuickDropQuantity int
	ItemCount         int
	TotalAmountCents  int64
	ReceivedAt        time.Time
	ReadyBy           *time.Time
	HasIssue          bool
	Rejected          bool
	ParentID          *string
	Items             []GetOrderItemResponse
	UnresolvedIssues  int64
}
