package interfaces

import (
	"context"

	"invoicetracker/internal/domain/entities"
)

// IAuditRepository persists the append-only audit trail. Entries are never
// updated or deleted once written.

type IAuditRepository interface {
	Append(ctx context.Context, e entities.AuditEntry) error
	ListByInvoiceID(ctx context.Context, invoiceID int64) ([]entities.AuditEntry, error)
}
