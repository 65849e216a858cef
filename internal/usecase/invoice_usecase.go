package usecase

import (
	"context"
	"errors"
	"time"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvoiceForbidden = errors.New("not allowed to access this invoice")
	ErrInvalidStatus    = errors.New("invalid invoice status")
	ErrNoInvoiceFile    = errors.New("invoice has no stored file")
)

// UpdateInvoiceRequest carries a partial invoice mutation. A nil Quantities
// map still reaches the aggregator, which clears existing product lines;
// callers that want lines kept must resend them.
type UpdateInvoiceRequest struct {
	Date       *time.Time
	Status     *entities.InvoiceStatus
	Quantities map[int64]decimal.Decimal
}

// UploadScreeningRequest is the upload-and-screen phase payload: the document
// is screened for duplicates before any invoice exists.
type UploadScreeningRequest struct {
	FileBytes       []byte
	FileContentType string
	FileName        string
}

// ScreeningResult hands the caller the temporary fingerprint id to pass back
// on the subsequent Create, together with the advisory extraction and the
// duplicate verdict.
type ScreeningResult struct {
	TempFingerprintID int64                           `json:"temp_fingerprint_id"`
	Extraction        entities.ExtractionResult       `json:"extraction"`
	Duplicate         interfaces.DuplicateCheckResult `json:"duplicate"`
}

// IInvoiceUseCase exposes the invoice lifecycle operations.

type IInvoiceUseCase interface {
	ScreenUpload(ctx context.Context, actor *entities.User, req UploadScreeningRequest) (ScreeningResult, error)
	Create(ctx context.Context, actor *entities.User, req CreateInvoiceRequest) (*entities.Invoice, error)
	Update(ctx context.Context, actor *entities.User, id int64, req UpdateInvoiceRequest) (*entities.Invoice, error)
	Delete(ctx context.Context, actor *entities.User, id int64) error
	Get(ctx context.Context, actor *entities.User, id int64) (*entities.Invoice, error)
	List(ctx context.Context, actor *entities.User, filter interfaces.InvoiceFilter) ([]entities.Invoice, string, error)
	DownloadFile(ctx context.Context, actor *entities.User, id int64) ([]byte, string, error)
	AuditLog(ctx context.Context, actor *entities.User, id int64) ([]entities.AuditEntry, error)
}

// InvoiceUseCase orchestrates the lifecycle engine: strategy selection,
// extraction, aggregation, audit recording and fingerprint coordination.
// Extraction and duplicate screening are advisory and degrade gracefully;
// validation, persistence and audit failures propagate.
type InvoiceUseCase struct {
	invoices   interfaces.IInvoiceRepository
	audits     interfaces.IAuditRepository
	storage    interfaces.IFileStorage
	builder    *InvoiceBuilder
	aggregator *LineItemAggregator
	extractor  *ExtractionEngine
	duplicates *DuplicateCoordinator
	audit      *AuditTrail
	log        zerolog.Logger
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	invoices interfaces.IInvoiceRepository,
	audits interfaces.IAuditRepository,
	storage interfaces.IFileStorage,
	builder *InvoiceBuilder,
	aggregator *LineItemAggregator,
	extractor *ExtractionEngine,
	duplicates *DuplicateCoordinator,
	log zerolog.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices:   invoices,
		audits:     audits,
		storage:    storage,
		builder:    builder,
		aggregator: aggregator,
		extractor:  extractor,
		duplicates: duplicates,
		audit:      NewAuditTrail(),
		log:        log,
	}
}

// ScreenUpload validates an uploaded document, extracts advisory fields and
// screens it against the duplicate-detection service under a freshly minted
// temporary fingerprint id. Nothing is persisted locally.
func (u *InvoiceUseCase) ScreenUpload(ctx context.Context, actor *entities.User, req UploadScreeningRequest) (ScreeningResult, error) {
	if err := u.builder.ValidateUpload(req.FileContentType, req.FileName, int64(len(req.FileBytes))); err != nil {
		return ScreeningResult{}, err
	}

	res := ScreeningResult{TempFingerprintID: NewTemporaryFingerprintID()}
	if u.extractor != nil {
		res.Extraction = u.extractor.Extract(ctx, req.FileBytes, req.FileContentType)
	}

	date := time.Now().UTC()
	if res.Extraction.InvoiceDate != nil {
		date = *res.Extraction.InvoiceDate
	}
	total := decimal.Zero
	if res.Extraction.TotalAmount != nil {
		total = *res.Extraction.TotalAmount
	}
	vendor := ""
	if res.Extraction.Vendor != nil {
		vendor = *res.Extraction.Vendor
	}

	res.Duplicate = u.duplicates.CheckForDuplicates(ctx, req.FileBytes, req.FileName, date, total, vendor, *actor, res.TempFingerprintID)
	digest := BuildTextDigest(res.TempFingerprintID, vendor, date, total, nil, actor.Username)
	u.duplicates.SaveTemporaryFingerprint(ctx, res.TempFingerprintID, date, total, vendor, digest, *actor)
	return res, nil
}

func (u *InvoiceUseCase) Create(ctx context.Context, actor *entities.User, req CreateInvoiceRequest) (*entities.Invoice, error) {
	draft, err := u.builder.BuildDraft(ctx, req, *actor)
	if err != nil {
		return nil, err
	}

	if draft.HasFile() && u.extractor != nil {
		res := u.extractor.Extract(ctx, req.FileBytes, req.FileContentType)
		if res.Success {
			if res.Vendor != nil {
				draft.Vendor = *res.Vendor
			}
			if req.Date == nil && res.InvoiceDate != nil {
				draft.Date = *res.InvoiceDate
			}
			if res.TotalAmount != nil {
				draft.TotalAmount = *res.TotalAmount
			}
		} else {
			u.log.Warn().
				Int64("invoice_id", draft.ID).
				Str("reason", res.ErrorMessage).
				Msg("extraction failed, continuing with zero total")
		}
	}

	if len(req.Quantities) > 0 {
		total, err := u.aggregator.ReplaceLineItems(ctx, draft, req.Quantities)
		if err != nil {
			if draft.HasFile() {
				// the draft is abandoned; don't leave its document behind
				if delErr := u.storage.Delete(ctx, draft.StoredFileName); delErr != nil {
					u.log.Warn().Err(delErr).Str("stored_name", draft.StoredFileName).Msg("cleanup of stored file failed")
				}
			}
			return nil, err
		}
		draft.TotalAmount = total
	}

	created, err := u.invoices.Create(ctx, *draft)
	if err != nil {
		return nil, err
	}

	if created.HasFile() {
		if err := u.audits.Append(ctx, u.audit.Record(&created, actor, entities.AuditActionUpload, nil, nil)); err != nil {
			return nil, err
		}
	}
	if err := u.audits.Append(ctx, u.audit.Record(&created, actor, entities.AuditActionCreate, nil, nil)); err != nil {
		return nil, err
	}

	if req.TempFingerprintID != 0 {
		u.duplicates.ReplaceTemporaryWithFinal(ctx, req.TempFingerprintID, created.ID, created.Date, created.TotalAmount, created.Vendor, created.LineItems, *actor)
	} else {
		u.duplicates.SaveFingerprint(ctx, created.ID, created.Date, created.TotalAmount, created.Vendor, created.LineItems, *actor)
	}

	return &created, nil
}

func (u *InvoiceUseCase) Update(ctx context.Context, actor *entities.User, id int64, req UpdateInvoiceRequest) (*entities.Invoice, error) {
	inv, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	oldState := u.audit.CaptureState(&inv)

	if req.Date != nil {
		inv.Date = *req.Date
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		inv.Status = *req.Status
	}
	if len(req.Quantities) > 0 || len(inv.LineItems) > 0 {
		total, err := u.aggregator.ReplaceLineItems(ctx, &inv, req.Quantities)
		if err != nil {
			return nil, err
		}
		inv.TotalAmount = total
	}
	inv.UpdatedAt = time.Now().UTC()

	updated, err := u.invoices.Update(ctx, inv)
	if err != nil {
		return nil, err
	}

	newState := u.audit.CaptureState(&updated)
	if err := u.audits.Append(ctx, u.audit.Record(&updated, actor, entities.AuditActionUpdate, oldState, newState)); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (u *InvoiceUseCase) Delete(ctx context.Context, actor *entities.User, id int64) error {
	inv, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := u.invoices.Deactivate(ctx, inv.ID); err != nil {
		return err
	}
	return u.audits.Append(ctx, u.audit.Record(&inv, actor, entities.AuditActionDelete, nil, nil))
}

func (u *InvoiceUseCase) Get(ctx context.Context, actor *entities.User, id int64) (*entities.Invoice, error) {
	inv, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := u.audits.Append(ctx, u.audit.Record(&inv, actor, entities.AuditActionView, nil, nil)); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (u *InvoiceUseCase) List(ctx context.Context, actor *entities.User, filter interfaces.InvoiceFilter) ([]entities.Invoice, string, error) {
	if !actor.IsAdmin() {
		filter.OwnerID = actor.ID
	}
	return u.invoices.List(ctx, filter)
}

func (u *InvoiceUseCase) DownloadFile(ctx context.Context, actor *entities.User, id int64) ([]byte, string, error) {
	inv, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	if !inv.HasFile() {
		return nil, "", ErrNoInvoiceFile
	}
	data, err := u.storage.Load(ctx, inv.StoredFileName)
	if err != nil {
		return nil, "", err
	}
	if err := u.audits.Append(ctx, u.audit.Record(&inv, actor, entities.AuditActionDownload, nil, nil)); err != nil {
		return nil, "", err
	}
	return data, inv.OriginalFileName, nil
}

func (u *InvoiceUseCase) AuditLog(ctx context.Context, actor *entities.User, id int64) ([]entities.AuditEntry, error) {
	inv, err := u.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return u.audits.ListByInvoiceID(ctx, inv.ID)
}

// loadOwned fetches an active invoice and enforces ownership: admins see
// everything, users only their own.
func (u *InvoiceUseCase) loadOwned(ctx context.Context, actor *entities.User, id int64) (entities.Invoice, error) {
	inv, err := u.invoices.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == 0 || !inv.Active {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	if !actor.IsAdmin() && inv.OwnerID != actor.ID {
		return entities.Invoice{}, ErrInvoiceForbidden
	}
	return inv, nil
}
