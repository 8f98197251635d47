package response

import (
	"time"

	"milling_aggregator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type RFQResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Material        string    `json:"material"`
	Quantity        int       `json:"quantity"`
	Tolerance       string    `json:"tolerance,omitempty"`
	Roughness       string    `json:"roughness,omitempty"`
	PartMarking     bool      `json:"part_marking"`
	Certification   string    `json:"certification"`
	Notes           string    `json:"notes,omitempty"`
	CADFilename     string    `json:"cad_filename,omitempty"`
	CADFileID       string    `json:"cad_file_id,omitempty"`
	AcceptedQuoteID string    `json:"accepted_quote_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func FromRFQ(r entities.RFQ) RFQResponse {
	return RFQResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		Material:        string(r.Material),
		Quantity:        r.Quantity,
		Tolerance:       r.Tolerance,
		Roughness:       r.Roughness,
		PartMarking:     r.PartMarking,
		Certification:   string(r.Certification),
		Notes:           r.Notes,
		CADFilename:     r.CADFilename,
		CADFileID:       r.CADFileID,
		AcceptedQuoteID: r.AcceptedQuoteID,
		CreatedAt:       r.CreatedAt,
	}
}

func FromRFQs(items []entities.RFQ) []RFQResponse {
	out := make([]RFQResponse, 0, len(items))
	for _, r := range items {
		out = append(out, FromRFQ(r))
	}
	return out
}

type QuoteResponse struct {
	ID           string    `json:"id"`
	RFQID        string    `json:"rfq_id"`
	SupplierID   string    `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	Price        string    `json:"price" example:"99.50"`
	Currency     string    `json:"currency" example:"EUR"`
	LeadTimeDays int       `json:"lead_time_days"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status" example:"open"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:           q.ID,
		RFQID:        q.RFQID,
		SupplierID:   q.SupplierID,
		SupplierName: q.SupplierName,
		Price:        FormatMoney(q.Price),
		Currency:     q.Currency,
		LeadTimeDays: q.LeadTimeDays,
		Notes:        q.Notes,
		Status:       string(q.Status),
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func FromQuotes(items []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(items))
	for _, q := range items {
		out = append(out, FromQuote(q))
	}
	return out
}

type OrderResponse struct {
	ID        string    `json:"id"`
	RFQID     string    `json:"rfq_id"`
	QuoteID   string    `json:"quote_id"`
	Status    string    `json:"status" example:"pending_payment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		RFQID:     o.RFQID,
		QuoteID:   o.QuoteID,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func FromOrders(items []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(items))
	for _, o := range items {
		out = append(out, FromOrder(o))
	}
	return out
}

type PaymentResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Amount    string    `json:"amount" example:"99.50"`
	Currency  string    `json:"currency" example:"EUR"`
	Status    string    `json:"status" example:"recorded"`
	CreatedAt time.Time `json:"created_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    FormatMoney(p.Amount),
		Currency:  p.Currency,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func FromPayments(items []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromPayment(p))
	}
	return out
}

// FormatMoney renders at least two fraction digits without dropping precision.
func FormatMoney(d decimal.Decimal) string {
	places := int32(2)
	if -d.Exponent() > places {
		places = -d.Exponent()
	}
	return d.StringFixed(places)
}
