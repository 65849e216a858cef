package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the review lifecycle of a submitted invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "PENDING"
	InvoiceStatusApproved InvoiceStatus = "APPROVED"
	InvoiceStatusRejected InvoiceStatus = "REJECTED"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusApproved, InvoiceStatusRejected:
		return true
	}
	return false
}

// InvoiceSource records how an invoice was constructed.
type InvoiceSource string

const (
	InvoiceSourceFile   InvoiceSource = "FILE"   // uploaded document only
	InvoiceSourceForm   InvoiceSource = "FORM"   // manually entered product lines only
	InvoiceSourceHybrid InvoiceSource = "HYBRID" // uploaded document plus product lines
)

// FileKind is the coarse document category detected at upload time.
type FileKind string

const (
	FileKindPDF   FileKind = "PDF"
	FileKindImage FileKind = "IMAGE"
)

// LineItem is a product line attached to an invoice. UnitPrice is a snapshot
// taken when the line was resolved; later product price changes do not touch
// existing invoices. Subtotal is always recomputed as Quantity × UnitPrice and
// is never trusted from external input.
type LineItem struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Invoice is the aggregate persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id (number)
//   - Active implements soft delete; listings always filter on it.
//
// LineItems and the audit log are owned by the invoice: the slice attached
// here is the only reference, audit entries are append-only.
type Invoice struct {
	ID               int64           `json:"id"`
	OwnerID          int64           `json:"owner_id"`
	OwnerUsername    string          `json:"owner_username"`
	Date             time.Time       `json:"date"`
	Source           InvoiceSource   `json:"source"`
	Vendor           string          `json:"vendor,omitempty"`
	StoredFileName   string          `json:"stored_file_name,omitempty"`
	OriginalFileName string          `json:"original_file_name,omitempty"`
	FileKind         FileKind        `json:"file_kind,omitempty"`
	FileSize         int64           `json:"file_size,omitempty"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Status           InvoiceStatus   `json:"status"`
	LineItems        []LineItem      `json:"line_items"`
	AuditLog         []AuditEntry    `json:"-"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// HasFile reports whether a stored document backs this invoice.
func (i *Invoice) HasFile() bool {
	return i.StoredFileName != ""
}
