package interfaces

import (
	"context"

	"invoicetracker/internal/domain/entities"
)

// InvoiceFilter narrows List results. Zero values mean "no constraint".
// Cursor is the opaque pagination token returned by a previous page.
type InvoiceFilter struct {
	OwnerID int64
	Status  entities.InvoiceStatus
	Limit   int32
	Cursor  string
}

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// List applies "active" soft-delete filtering as a query predicate; nothing
// is ever physically removed by this subsystem.

type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id int64) (entities.Invoice, error)
	Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, filter InvoiceFilter) ([]entities.Invoice, string, error)
}
