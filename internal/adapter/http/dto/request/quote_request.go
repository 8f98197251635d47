package request

import (
	"milling_aggregator/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// QuoteRequest is a supplier's quote. Price accepts a JSON number or a decimal string.
type QuoteRequest struct {
	SupplierName string           `json:"supplier_name" example:"Acme Milling"`
	Price        *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"99.50"`
	LeadTimeDays int              `json:"lead_time_days" example:"14"`
	Notes        string           `json:"notes"`
}

func (r QuoteRequest) ToSubmission() entities.QuoteSubmission {
	sub := entities.QuoteSubmission{
		SupplierName: r.SupplierName,
		LeadTimeDays: r.LeadTimeDays,
		Notes:        r.Notes,
	}
	if r.Price != nil {
		sub.Price = *r.Price
	}
	return sub
}
