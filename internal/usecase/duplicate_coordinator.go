package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TemporaryIDThreshold separates temporary fingerprint ids from persisted
// invoice ids: anything at or above it refers to a fingerprint minted before
// the invoice existed. Snowflake ids stay far below this value.
const TemporaryIDThreshold int64 = 1 << 62

// NewTemporaryFingerprintID mints a sentinel id for a fingerprint tracked
// before the invoice is persisted.
func NewTemporaryFingerprintID() int64 {
	return TemporaryIDThreshold | newID()
}

func IsTemporaryID(id int64) bool {
	return id >= TemporaryIDThreshold
}

// DuplicateCoordinator drives the fingerprint lifecycle against the external
// duplicate-detection service. Every operation is best-effort: downstream
// failures are logged and converted to safe defaults, because duplicate
// screening must never block invoice creation. It is safe to call zero, one
// or two times per logical invoice; fingerprint identity uniqueness is owned
// by the external service.
type DuplicateCoordinator struct {
	client interfaces.IDuplicateClient
	log    zerolog.Logger
}

func NewDuplicateCoordinator(client interfaces.IDuplicateClient, log zerolog.Logger) *DuplicateCoordinator {
	return &DuplicateCoordinator{client: client, log: log}
}

// SaveTemporaryFingerprint registers a fingerprint under a temporary id
// during the upload-and-screen phase, before a final invoice id exists.
func (c *DuplicateCoordinator) SaveTemporaryFingerprint(ctx context.Context, tempID int64, date time.Time, total decimal.Decimal, vendor, textDigest string, actor entities.User) {
	if c.client == nil {
		return
	}
	rec := fingerprintRecord(tempID, date, total, vendor, textDigest, actor)
	if err := c.client.SaveTemporaryFingerprint(ctx, rec); err != nil {
		c.log.Warn().Err(err).Int64("temp_id", tempID).Msg("saving temporary fingerprint failed")
	}
}

// ReplaceTemporaryWithFinal retargets the temporary fingerprint onto the
// final invoice id once persistence succeeded. The invoice row stays valid
// even when the remote rename fails; at worst duplicate screening degrades.
func (c *DuplicateCoordinator) ReplaceTemporaryWithFinal(ctx context.Context, tempID, finalID int64, date time.Time, total decimal.Decimal, vendor string, items []entities.LineItem, actor entities.User) {
	if c.client == nil {
		return
	}
	digest := BuildTextDigest(finalID, vendor, date, total, items, actor.Username)
	rec := fingerprintRecord(finalID, date, total, vendor, digest, actor)
	if err := c.client.ReplaceTemporaryFingerprint(ctx, tempID, rec); err != nil {
		c.log.Warn().Err(err).Int64("temp_id", tempID).Int64("invoice_id", finalID).Msg("replacing temporary fingerprint failed")
	}
}

// SaveFingerprint registers a fingerprint directly under the final invoice
// id, for invoices created without an upload-screening phase.
func (c *DuplicateCoordinator) SaveFingerprint(ctx context.Context, finalID int64, date time.Time, total decimal.Decimal, vendor string, items []entities.LineItem, actor entities.User) {
	if c.client == nil {
		return
	}
	digest := BuildTextDigest(finalID, vendor, date, total, items, actor.Username)
	rec := fingerprintRecord(finalID, date, total, vendor, digest, actor)
	if err := c.client.SaveFingerprint(ctx, rec); err != nil {
		c.log.Warn().Err(err).Int64("invoice_id", finalID).Msg("saving fingerprint failed")
	}
}

// CheckForDuplicates screens an upload synchronously. On any transport or
// service error it returns a "service unavailable, not a duplicate, proceed"
// verdict rather than blocking the caller.
func (c *DuplicateCoordinator) CheckForDuplicates(ctx context.Context, file []byte, fileName string, date time.Time, total decimal.Decimal, vendor string, actor entities.User, candidateID int64) interfaces.DuplicateCheckResult {
	unavailable := interfaces.DuplicateCheckResult{
		ServiceAvailable: false,
		Message:          "duplicate detection unavailable",
	}
	if c.client == nil {
		return unavailable
	}
	res, err := c.client.CheckDuplicate(ctx, interfaces.DuplicateCheckRequest{
		File:        file,
		FileName:    fileName,
		InvoiceDate: date.Format("2006-01-02"),
		TotalAmount: total.StringFixed(2),
		Vendor:      vendor,
		Username:    actor.Username,
		Role:        string(actor.Role),
		CandidateID: candidateID,
	})
	if err != nil {
		c.log.Warn().Err(err).Int64("candidate_id", candidateID).Msg("duplicate check failed, proceeding")
		return unavailable
	}
	res.ServiceAvailable = true
	return res
}

// BuildTextDigest serializes the fingerprint content deterministically:
// InvoiceID:<id>|Vendor:<v>|Date:<d>|Amount:<a>|Products:<name(qty),...>|User:<actor>
func BuildTextDigest(id int64, vendor string, date time.Time, amount decimal.Decimal, items []entities.LineItem, username string) string {
	products := make([]string, 0, len(items))
	for _, it := range items {
		products = append(products, fmt.Sprintf("%s(%s)", it.ProductName, it.Quantity.String()))
	}
	return fmt.Sprintf("InvoiceID:%d|Vendor:%s|Date:%s|Amount:%s|Products:%s|User:%s",
		id, vendor, date.Format("2006-01-02"), amount.StringFixed(2), strings.Join(products, ","), username)
}

func fingerprintRecord(id int64, date time.Time, total decimal.Decimal, vendor, digest string, actor entities.User) interfaces.FingerprintRecord {
	return interfaces.FingerprintRecord{
		ID:          id,
		InvoiceDate: date.Format("2006-01-02"),
		TotalAmount: total.StringFixed(2),
		Vendor:      vendor,
		TextDigest:  digest,
		Username:    actor.Username,
		Role:        string(actor.Role),
	}
}
