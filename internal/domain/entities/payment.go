package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus has a single terminal value: payments are ledger entries,
// never settled, refunded or partially applied.
type PaymentStatus string

const (
	PaymentStatusRecorded PaymentStatus = "recorded"
)

// Payment is the immutable ledger record of an order's settlement.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//
// Amount always equals the accepted quote's price.
type Payment struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    PaymentStatus   `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}
