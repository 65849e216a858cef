package response

import (
	"time"

	"invoicetracker/internal/domain/entities"
)

type AuditEntryResponse struct {
	ID            string            `json:"id"`
	InvoiceID     string            `json:"invoice_id"`
	ActorID       string            `json:"actor_id"`
	ActorUsername string            `json:"actor_username"`
	Action        string            `json:"action"`
	Timestamp     time.Time         `json:"timestamp"`
	OldValues     map[string]string `json:"old_values,omitempty"`
	NewValues     map[string]string `json:"new_values,omitempty"`
	Description   string            `json:"description"`
}

func FromAuditEntries(entries []entities.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:            formatID(e.ID),
			InvoiceID:     formatID(e.InvoiceID),
			ActorID:       formatID(e.ActorID),
			ActorUsername: e.ActorUsername,
			Action:        string(e.Action),
			Timestamp:     e.Timestamp,
			OldValues:     e.OldValues,
			NewValues:     e.NewValues,
			Description:   e.Description,
		})
	}
	return out
}
