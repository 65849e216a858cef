package entities

import "time"

// AuditAction is the kind of mutation or access an audit entry records.
type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionUpdate   AuditAction = "UPDATE"
	AuditActionDelete   AuditAction = "DELETE"
	AuditActionView     AuditAction = "VIEW"
	AuditActionUpload   AuditAction = "UPLOAD"
	AuditActionDownload AuditAction = "DOWNLOAD"
)

// AuditEntry is an immutable record of one invoice mutation or access.
// OldValues/NewValues are populated only for UPDATE entries; every other
// action carries nil maps. Entries are owned by the invoice and append-only.
type AuditEntry struct {
	ID            int64             `json:"id"`
	InvoiceID     int64             `json:"invoice_id"`
	ActorID       int64             `json:"actor_id"`
	ActorUsername string            `json:"actor_username"`
	Action        AuditAction       `json:"action"`
	Timestamp     time.Time         `json:"timestamp"`
	OldValues     map[string]string `json:"old_values,omitempty"`
	NewValues     map[string]string `json:"new_values,omitempty"`
	Description   string            `json:"description"`
}
