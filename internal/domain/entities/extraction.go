package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtractedItem is one line candidate pulled out of a document. Every field is
// independently optional; the model is allowed to return null for anything it
// cannot find.
type ExtractedItem struct {
	Name      *string          `json:"name"`
	Quantity  *decimal.Decimal `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Subtotal  *decimal.Decimal `json:"subtotal"`
}

// ExtractionResult is the immutable outcome of one extraction attempt.
// A failed attempt carries Success=false and an ErrorMessage; it is never
// surfaced as a Go error to callers.
type ExtractionResult struct {
	Success      bool             `json:"success"`
	InvoiceDate  *time.Time       `json:"invoice_date"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	Vendor       *string          `json:"vendor"`
	Items        []ExtractedItem  `json:"items"`
	RawText      string           `json:"-"`
	ErrorMessage string           `json:"error_message,omitempty"`
}
