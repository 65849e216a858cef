package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrNoSuitableCreator   = errors.New("no suitable invoice creator for this request")
	ErrFileTooLarge        = errors.New("uploaded file exceeds the 10 MiB limit")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrExtensionMismatch   = errors.New("file extension does not match its content type")
)

const maxUploadBytes = 10 << 20

// allowedUploadTypes maps an accepted content type to its valid extensions.
var allowedUploadTypes = map[string][]string{
	"application/pdf": {".pdf"},
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/png":       {".png"},
	"image/gif":       {".gif"},
}

// fileKindRules is an ordered (predicate, kind) list, evaluated first match
// wins, like the creation strategies below.
var fileKindRules = []struct {
	matches func(contentType string) bool
	kind    entities.FileKind
}{
	{func(ct string) bool { return ct == "application/pdf" }, entities.FileKindPDF},
	{func(ct string) bool { return strings.HasPrefix(ct, "image/") }, entities.FileKindImage},
}

func detectFileKind(contentType string) (entities.FileKind, bool) {
	for _, r := range fileKindRules {
		if r.matches(contentType) {
			return r.kind, true
		}
	}
	return "", false
}

// CreateInvoiceRequest is the normalized inbound payload for invoice
// creation, independent of its HTTP encoding. TempFingerprintID carries the
// sentinel id minted by an earlier ScreenUpload call, or zero when screening
// did not run.
type CreateInvoiceRequest struct {
	RequestedName     string
	Date              *time.Time
	FileBytes         []byte
	FileContentType   string
	OriginalFileName  string
	Quantities        map[int64]decimal.Decimal
	TempFingerprintID int64
}

func (r CreateInvoiceRequest) hasFile() bool     { return len(r.FileBytes) > 0 }
func (r CreateInvoiceRequest) hasProducts() bool { return len(r.Quantities) > 0 }

type creationStrategy struct {
	source   entities.InvoiceSource
	supports func(r CreateInvoiceRequest) bool
	build    func(ctx context.Context, r CreateInvoiceRequest, owner entities.User, source entities.InvoiceSource) (*entities.Invoice, error)
}

// InvoiceBuilder picks exactly one construction strategy per request.
// Strategies are evaluated in a fixed priority order so a request carrying
// both a file and products is never silently treated as file-only.
type InvoiceBuilder struct {
	storage    interfaces.IFileStorage
	log        zerolog.Logger
	strategies []creationStrategy
}

func NewInvoiceBuilder(storage interfaces.IFileStorage, log zerolog.Logger) *InvoiceBuilder {
	b := &InvoiceBuilder{storage: storage, log: log}
	b.strategies = []creationStrategy{
		{
			source:   entities.InvoiceSourceHybrid,
			supports: func(r CreateInvoiceRequest) bool { return r.hasFile() && r.hasProducts() },
			build:    b.buildWithFile,
		},
		{
			source:   entities.InvoiceSourceFile,
			supports: func(r CreateInvoiceRequest) bool { return r.hasFile() && !r.hasProducts() },
			build:    b.buildWithFile,
		},
		{
			source:   entities.InvoiceSourceForm,
			supports: func(r CreateInvoiceRequest) bool { return !r.hasFile() && r.hasProducts() },
			build:    b.buildFormOnly,
		},
	}
	return b
}

// BuildDraft produces exactly one not-yet-persisted invoice, or fails.
func (b *InvoiceBuilder) BuildDraft(ctx context.Context, req CreateInvoiceRequest, owner entities.User) (*entities.Invoice, error) {
	for _, s := range b.strategies {
		if s.supports(req) {
			return s.build(ctx, req, owner, s.source)
		}
	}
	return nil, ErrNoSuitableCreator
}

// ValidateUpload rejects oversized files, content types outside the
// allow-list and filenames whose extension contradicts the declared type.
// It runs before any byte is stored so a failed validation never leaves a
// partial file behind.
func (b *InvoiceBuilder) ValidateUpload(contentType, fileName string, size int64) error {
	if size > maxUploadBytes {
		return ErrFileTooLarge
	}
	extensions, ok := allowedUploadTypes[contentType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range extensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s for %s", ErrExtensionMismatch, ext, contentType)
}

func (b *InvoiceBuilder) buildWithFile(ctx context.Context, req CreateInvoiceRequest, owner entities.User, source entities.InvoiceSource) (*entities.Invoice, error) {
	if err := b.ValidateUpload(req.FileContentType, req.OriginalFileName, int64(len(req.FileBytes))); err != nil {
		return nil, err
	}
	kind, ok := detectFileKind(req.FileContentType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, req.FileContentType)
	}

	storedName, err := b.storage.Store(ctx, req.FileBytes, req.OriginalFileName)
	if err != nil {
		return nil, err
	}

	draft := newDraft(req, owner, source)
	draft.StoredFileName = storedName
	draft.OriginalFileName = resolveFileName(req)
	draft.FileKind = kind
	draft.FileSize = int64(len(req.FileBytes))
	b.log.Info().
		Int64("invoice_id", draft.ID).
		Str("source", string(source)).
		Str("file_kind", string(kind)).
		Int64("file_size", draft.FileSize).
		Msg("stored invoice document")
	return draft, nil
}

func (b *InvoiceBuilder) buildFormOnly(_ context.Context, req CreateInvoiceRequest, owner entities.User, source entities.InvoiceSource) (*entities.Invoice, error) {
	return newDraft(req, owner, source), nil
}

// resolveFileName applies the display-name precedence: explicit requested
// name, then the original uploaded name, then a generated fallback.
func resolveFileName(req CreateInvoiceRequest) string {
	if name := strings.TrimSpace(req.RequestedName); name != "" {
		return name
	}
	if name := strings.TrimSpace(req.OriginalFileName); name != "" {
		return name
	}
	return fmt.Sprintf("invoice-%d%s", time.Now().UTC().Unix(), strings.ToLower(filepath.Ext(req.OriginalFileName)))
}

func newDraft(req CreateInvoiceRequest, owner entities.User, source entities.InvoiceSource) *entities.Invoice {
	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	return &entities.Invoice{
		ID:            newID(),
		OwnerID:       owner.ID,
		OwnerUsername: owner.Username,
		Date:          date,
		Source:        source,
		Status:        entities.InvoiceStatusPending,
		TotalAmount:   decimal.Zero,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
