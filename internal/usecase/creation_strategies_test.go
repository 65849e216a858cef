package usecase

import (
	"context"
	"errors"
	"testing"

	"invoicetracker/internal/domain/entities"
	mock_interfaces "invoicetracker/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

var testOwner = entities.User{ID: 7, Username: "alice", Role: entities.RoleUser, Active: true}

func TestInvoiceBuilder_BuildDraft(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake")

	t.Run("file only request yields a FILE draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		storage := mock_interfaces.NewMockIFileStorage(ctrl)
		builder := NewInvoiceBuilder(storage, zerolog.Nop())

		storage.EXPECT().Store(gomock.Any(), pdfBytes, "scan.pdf").Return("ab12.pdf", nil)

		draft, err := builder.BuildDraft(context.Background(), CreateInvoiceRequest{
			FileBytes:        pdfBytes,
			FileContentType:  "application/pdf",
			OriginalFileName: "scan.pdf",
		}, testOwner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if draft.Source != entities.InvoiceSourceFile {
			t.Fatalf("expected FILE source, got %s", draft.Source)
		}
		if draft.FileKind != entities.FileKindPDF {
			t.Fatalf("expected PDF kind, got %s", draft.FileKind)
		}
		if draft.StoredFileName != "ab12.pdf" || draft.OriginalFileName != "scan.pdf" {
			t.Fatalf("unexpected file names: %q %q", draft.StoredFileName, draft.OriginalFileName)
		}
		if draft.Status != entities.InvoiceStatusPending || !draft.TotalAmount.IsZero() {
			t.Fatalf("expected pending draft with zero total, got %s %s", draft.Status, draft.TotalAmount)
		}
		if draft.OwnerID != testOwner.ID || !draft.Active || draft.ID == 0 {
			t.Fatalf("unexpected draft identity: %+v", draft)
		}
	})

	t.Run("file plus products yields a HYBRID draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		storage := mock_interfaces.NewMockIFileStorage(ctrl)
		builder := NewInvoiceBuilder(storage, zerolog.Nop())

		storage.EXPECT().Store(gomock.Any(), pdfBytes, "scan.pdf").Return("cd34.pdf", nil)

		draft, err := builder.BuildDraft(context.Background(), CreateInvoiceRequest{
			FileBytes:        pdfBytes,
			FileContentType:  "application/pdf",
			OriginalFileName: "scan.pdf",
			Quantities:       map[int64]decimal.Decimal{1: dec("2")},
		}, testOwner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if draft.Source != entities.InvoiceSourceHybrid {
			t.Fatalf("expected HYBRID source, got %s", draft.Source)
		}
	})

	t.Run("products only yields a FORM draft without touching storage", func(t *testing.T) {
		builder := NewInvoiceBuilder(nil, zerolog.Nop())

		draft, err := builder.BuildDraft(context.Background(), CreateInvoiceRequest{
			Quantities: map[int64]decimal.Decimal{1: dec("2")},
		}, testOwner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if draft.Source != entities.InvoiceSourceForm {
			t.Fatalf("expected FORM source, got %s", draft.Source)
		}
		if draft.HasFile() {
			t.Fatalf("form draft must not carry a file: %+v", draft)
		}
	})

	t.Run("neither file nor products is rejected", func(t *testing.T) {
		builder := NewInvoiceBuilder(nil, zerolog.Nop())
		_, err := builder.BuildDraft(context.Background(), CreateInvoiceRequest{}, testOwner)
		if !errors.Is(err, ErrNoSuitableCreator) {
			t.Fatalf("expected ErrNoSuitableCreator, got %v", err)
		}
	})

	t.Run("storage failure aborts the draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		storage := mock_interfaces.NewMockIFileStorage(ctrl)
		builder := NewInvoiceBuilder(storage, zerolog.Nop())

		storage.EXPECT().Store(gomock.Any(), pdfBytes, "scan.pdf").Return("", errors.New("disk full"))

		_, err := builder.BuildDraft(context.Background(), CreateInvoiceRequest{
			FileBytes:        pdfBytes,
			FileContentType:  "application/pdf",
			OriginalFileName: "scan.pdf",
		}, testOwner)
		if err == nil || err.Error() != "disk full" {
			t.Fatalf("expected disk full error, got %v", err)
		}
	})

	t.Run("requested name takes precedence over the uploaded name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		storage := mock_interfaces.NewMockIFileStorage(ctrl)
		builder := NewInvoiceBuilder(storage, zerolog.Nop())

		storage.EXPECT().Store(gomock.Any(), pdfBytes, "scan.pdf").Return("ef56.pdf", nil)

		draft, err := builder.BuildDraft(context.Background(), CreateInvoiceRequest{
			RequestedName:    "March utilities",
			FileBytes:        pdfBytes,
			FileContentType:  "application/pdf",
			OriginalFileName: "scan.pdf",
		}, testOwner)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if draft.OriginalFileName != "March utilities" {
			t.Fatalf("expected requested name to win, got %q", draft.OriginalFileName)
		}
	})
}

func TestInvoiceBuilder_ValidateUpload(t *testing.T) {
	builder := NewInvoiceBuilder(nil, zerolog.Nop())

	t.Run("oversized file", func(t *testing.T) {
		err := builder.ValidateUpload("application/pdf", "big.pdf", maxUploadBytes+1)
		if !errors.Is(err, ErrFileTooLarge) {
			t.Fatalf("expected ErrFileTooLarge, got %v", err)
		}
	})

	t.Run("content type outside the allow list", func(t *testing.T) {
		err := builder.ValidateUpload("application/zip", "archive.zip", 100)
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
		}
	})

	t.Run("extension contradicting the content type", func(t *testing.T) {
		err := builder.ValidateUpload("application/pdf", "photo.png", 100)
		if !errors.Is(err, ErrExtensionMismatch) {
			t.Fatalf("expected ErrExtensionMismatch, got %v", err)
		}
	})

	t.Run("jpeg accepts both extensions", func(t *testing.T) {
		for _, name := range []string{"a.jpg", "b.jpeg", "C.JPG"} {
			if err := builder.ValidateUpload("image/jpeg", name, 100); err != nil {
				t.Fatalf("expected %s to validate, got %v", name, err)
			}
		}
	})
}
