package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle of a supplier quote.
//
// Transitions:
//   - open -> accepted                (the buyer accepts this quote)
//   - open -> rejected-by-supersede   (a sibling quote on the same RFQ was accepted)
//
// Both target states are terminal.
type QuoteStatus string

const (
	QuoteStatusOpen       QuoteStatus = "open"
	QuoteStatusAccepted   QuoteStatus = "accepted"
	QuoteStatusSuperseded QuoteStatus = "rejected-by-supersede"
)

// DefaultCurrency is implied for every price and amount.
const DefaultCurrency = "EUR"

// QuoteSubmission is the supplier-provided content of a new quote.
type QuoteSubmission struct {
	SupplierName string
	Price        decimal.Decimal
	LeadTimeDays int
	Notes        string
}

func (s QuoteSubmission) Normalize() QuoteSubmission {
	s.SupplierName = strings.TrimSpace(s.SupplierName)
	s.Notes = strings.TrimSpace(s.Notes)
	return s
}

func (s QuoteSubmission) Validate() error {
	if s.SupplierName == "" {
		return NewValidationError("supplier_name", "must not be empty")
	}
	if s.Price.IsNegative() {
		return NewValidationError("price", "must not be negative")
	}
	if s.LeadTimeDays < 0 {
		return NewValidationError("lead_time_days", "must not be negative")
	}
	return nil
}

// Quote is a supplier's priced response to an RFQ.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (rfq_id-index): rfq_id
//
// Monetary representation:
//   - Price is an exact decimal, persisted as its string form.
type Quote struct {
	ID           string          `json:"id"`
	RFQID        string          `json:"rfq_id"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Price        decimal.Decimal `json:"price"`
	Currency     string          `json:"currency"`
	LeadTimeDays int             `json:"lead_time_days"`
	Notes        string          `json:"notes,omitempty"`
	Status       QuoteStatus     `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (q Quote) IsOpen() bool { return q.Status == QuoteStatusOpen }

// QuoteFilter narrows ListQuotes. An empty RFQID matches every visible RFQ.
type QuoteFilter struct {
	RFQID string
}
