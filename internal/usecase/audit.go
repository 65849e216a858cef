package usecase

import (
	"fmt"
	"strings"
	"time"

	"invoicetracker/internal/domain/entities"
)

// AuditTrail captures before/after snapshots of invoice mutations and
// renders human-readable change descriptions.
type AuditTrail struct{}

func NewAuditTrail() *AuditTrail {
	return &AuditTrail{}
}

// CaptureState snapshots the fields tracked for change descriptions, in
// display-ready string form so before/after diffs compare consistently.
// Calling it twice on an unmodified invoice yields identical maps.
func (a *AuditTrail) CaptureState(inv *entities.Invoice) map[string]string {
	return map[string]string{
		"date":        inv.Date.Format("2006-01-02"),
		"fileType":    string(inv.FileKind),
		"fileName":    inv.OriginalFileName,
		"totalAmount": inv.TotalAmount.StringFixed(2),
		"status":      string(inv.Status),
	}
}

// Record appends an immutable entry to the invoice's audit log and returns
// it. Old/new value maps are retained only for UPDATE; other actions always
// carry nil maps. A nil actor is a programming error and panics rather than
// silently skipping the record.
func (a *AuditTrail) Record(inv *entities.Invoice, actor *entities.User, action entities.AuditAction, oldValues, newValues map[string]string) entities.AuditEntry {
	if actor == nil {
		panic("audit: recording an entry without an actor")
	}
	if action != entities.AuditActionUpdate {
		oldValues, newValues = nil, nil
	}
	entry := entities.AuditEntry{
		ID:            newID(),
		InvoiceID:     inv.ID,
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		Action:        action,
		Timestamp:     time.Now().UTC(),
		OldValues:     oldValues,
		NewValues:     newValues,
	}
	entry.Description = a.Describe(entry)
	inv.AuditLog = append(inv.AuditLog, entry)
	return entry
}

var auditActionPhrases = map[entities.AuditAction]string{
	entities.AuditActionCreate:   "created the invoice",
	entities.AuditActionUpdate:   "updated the invoice",
	entities.AuditActionDelete:   "deleted the invoice",
	entities.AuditActionView:     "viewed the invoice",
	entities.AuditActionUpload:   "uploaded an invoice document",
	entities.AuditActionDownload: "downloaded the invoice file",
}

// describedFields is the fixed evaluation order for transition phrases; the
// description must never depend on map iteration order.
var describedFields = []string{"status", "totalAmount", "fileName"}

// Describe renders "<actor> <past-tense action phrase>" and, for UPDATE
// entries carrying both value maps, appends the recognized field transitions
// as "<field> from <old> to <new>". A field missing its matching key in the
// other map is silently ignored; untracked fields never appear.
func (a *AuditTrail) Describe(e entities.AuditEntry) string {
	phrase, ok := auditActionPhrases[e.Action]
	if !ok {
		phrase = strings.ToLower(string(e.Action)) + " the invoice"
	}
	desc := e.ActorUsername + " " + phrase

	if e.Action != entities.AuditActionUpdate || e.OldValues == nil || e.NewValues == nil {
		return desc
	}
	var changes []string
	for _, field := range describedFields {
		oldV, okOld := e.OldValues[field]
		newV, okNew := e.NewValues[field]
		if !okOld || !okNew || oldV == newV {
			continue
		}
		changes = append(changes, fmt.Sprintf("%s from %s to %s", field, oldV, newV))
	}
	if len(changes) > 0 {
		desc += ": " + strings.Join(changes, ", ")
	}
	return desc
}
