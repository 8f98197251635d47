package entities

import "time"

// OrderStatus represents the lifecycle of an order.
//
// Orders are born pending_payment by the accept-quote transition. The payment
// recorder moves them to paid. cancelled is reserved for an administrative
// transition that no operation performs yet.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPendingPayment, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the commitment created when a quote is accepted.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (rfq_id-index): rfq_id
type Order struct {
	ID        string      `json:"id"`
	RFQID     string      `json:"rfq_id"`
	QuoteID   string      `json:"quote_id"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderFilter narrows ListOrders. Zero values match everything.
type OrderFilter struct {
	RFQID  string
	Status OrderStatus
}

func (f OrderFilter) Match(o Order) bool {
	if f.RFQID != "" && o.RFQID != f.RFQID {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	return true
}
