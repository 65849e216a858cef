package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"
	mock_interfaces "invoicetracker/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type invoiceUseCaseMocks struct {
	invoices *mock_interfaces.MockIInvoiceRepository
	audits   *mock_interfaces.MockIAuditRepository
	storage  *mock_interfaces.MockIFileStorage
	products *mock_interfaces.MockIProductRepository
	dupes    *mock_interfaces.MockIDuplicateClient
}

func newTestInvoiceUseCase(ctrl *gomock.Controller) (*InvoiceUseCase, invoiceUseCaseMocks) {
	m := invoiceUseCaseMocks{
		invoices: mock_interfaces.NewMockIInvoiceRepository(ctrl),
		audits:   mock_interfaces.NewMockIAuditRepository(ctrl),
		storage:  mock_interfaces.NewMockIFileStorage(ctrl),
		products: mock_interfaces.NewMockIProductRepository(ctrl),
		dupes:    mock_interfaces.NewMockIDuplicateClient(ctrl),
	}
	log := zerolog.Nop()
	uc := NewInvoiceUseCase(
		m.invoices,
		m.audits,
		m.storage,
		NewInvoiceBuilder(m.storage, log),
		NewLineItemAggregator(m.products, log),
		nil,
		NewDuplicateCoordinator(m.dupes, log),
		log,
	)
	return uc, m
}

var (
	regularUser = entities.User{ID: 7, Username: "alice", Role: entities.RoleUser, Active: true}
	adminUser   = entities.User{ID: 1, Username: "root", Role: entities.RoleAdmin, Active: true}
)

func storedInvoice() entities.Invoice {
	return entities.Invoice{
		ID:               42,
		OwnerID:          regularUser.ID,
		OwnerUsername:    regularUser.Username,
		Date:             time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Source:           entities.InvoiceSourceForm,
		TotalAmount:      dec("130.00"),
		Status:           entities.InvoiceStatusPending,
		Active:           true,
		StoredFileName:   "ab12.pdf",
		OriginalFileName: "scan.pdf",
		FileKind:         entities.FileKindPDF,
	}
}

func TestInvoiceUseCase_Create(t *testing.T) {
	t.Run("form only creation with products and fingerprint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.products.EXPECT().GetByIDs(gomock.Any(), []int64{1, 2}).Return([]entities.Product{
			{ID: 1, Name: "Engine Oil", UnitPrice: dec("50.00"), Active: true},
			{ID: 2, Name: "Oil Filter", UnitPrice: dec("30.00"), Active: true},
		}, nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
				if inv.Source != entities.InvoiceSourceForm {
					t.Fatalf("expected FORM source, got %s", inv.Source)
				}
				if inv.TotalAmount.StringFixed(2) != "130.00" {
					t.Fatalf("expected total 130.00, got %s", inv.TotalAmount)
				}
				return inv, nil
			})
		m.audits.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.AuditEntry) error {
				if e.Action != entities.AuditActionCreate {
					t.Fatalf("expected CREATE audit, got %s", e.Action)
				}
				return nil
			})
		m.dupes.EXPECT().SaveFingerprint(gomock.Any(), gomock.Any()).Return(nil)

		inv, err := uc.Create(context.Background(), &regularUser, CreateInvoiceRequest{
			Quantities: map[int64]decimal.Decimal{1: dec("2"), 2: dec("1")},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(inv.LineItems) != 2 {
			t.Fatalf("expected 2 line items, got %d", len(inv.LineItems))
		}
	})

	t.Run("screened upload replaces its temporary fingerprint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		tempID := NewTemporaryFingerprintID()
		m.storage.EXPECT().Store(gomock.Any(), gomock.Any(), "scan.pdf").Return("ab12.pdf", nil)
		m.invoices.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) { return inv, nil })
		m.audits.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		m.dupes.EXPECT().ReplaceTemporaryFingerprint(gomock.Any(), tempID, gomock.Any()).Return(nil)

		_, err := uc.Create(context.Background(), &regularUser, CreateInvoiceRequest{
			FileBytes:         []byte("%PDF"),
			FileContentType:   "application/pdf",
			OriginalFileName:  "scan.pdf",
			TempFingerprintID: tempID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("aggregation failure cleans up the stored file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.storage.EXPECT().Store(gomock.Any(), gomock.Any(), "scan.pdf").Return("ab12.pdf", nil)
		m.products.EXPECT().GetByIDs(gomock.Any(), []int64{99}).Return(nil, nil)
		m.storage.EXPECT().Delete(gomock.Any(), "ab12.pdf").Return(nil)

		_, err := uc.Create(context.Background(), &regularUser, CreateInvoiceRequest{
			FileBytes:        []byte("%PDF"),
			FileContentType:  "application/pdf",
			OriginalFileName: "scan.pdf",
			Quantities:       map[int64]decimal.Decimal{99: dec("1")},
		})
		if !errors.Is(err, ErrProductsNotFound) {
			t.Fatalf("expected ErrProductsNotFound, got %v", err)
		}
	})

	t.Run("empty request finds no creator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newTestInvoiceUseCase(ctrl)

		_, err := uc.Create(context.Background(), &regularUser, CreateInvoiceRequest{})
		if !errors.Is(err, ErrNoSuitableCreator) {
			t.Fatalf("expected ErrNoSuitableCreator, got %v", err)
		}
	})
}

func TestInvoiceUseCase_Update(t *testing.T) {
	t.Run("status change is audited with a transition description", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(storedInvoice(), nil)
		m.invoices.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) { return inv, nil })
		m.audits.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.AuditEntry) error {
				if e.Action != entities.AuditActionUpdate {
					t.Fatalf("expected UPDATE audit, got %s", e.Action)
				}
				if !strings.Contains(e.Description, "status from PENDING to APPROVED") {
					t.Fatalf("unexpected description: %q", e.Description)
				}
				return nil
			})

		approved := entities.InvoiceStatusApproved
		inv, err := uc.Update(context.Background(), &regularUser, 42, UpdateInvoiceRequest{Status: &approved})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.Status != entities.InvoiceStatusApproved {
			t.Fatalf("expected APPROVED, got %s", inv.Status)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(storedInvoice(), nil)

		bogus := entities.InvoiceStatus("SHREDDED")
		_, err := uc.Update(context.Background(), &regularUser, 42, UpdateInvoiceRequest{Status: &bogus})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("resent quantities replace the line items", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(storedInvoice(), nil)
		m.products.EXPECT().GetByIDs(gomock.Any(), []int64{2}).Return([]entities.Product{
			{ID: 2, Name: "Oil Filter", UnitPrice: dec("30.00"), Active: true},
		}, nil)
		m.invoices.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) { return inv, nil })
		m.audits.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

		inv, err := uc.Update(context.Background(), &regularUser, 42, UpdateInvoiceRequest{
			Quantities: map[int64]decimal.Decimal{2: dec("3")},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if inv.TotalAmount.StringFixed(2) != "90.00" {
			t.Fatalf("expected total 90.00, got %s", inv.TotalAmount)
		}
	})
}

func TestInvoiceUseCase_AccessControl(t *testing.T) {
	t.Run("missing invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(entities.Invoice{}, nil)

		_, err := uc.Get(context.Background(), &regularUser, 42)
		if !errors.Is(err, ErrInvoiceNotFound) {
			t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
		}
	})

	t.Run("deactivated invoice reads as missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		inv := storedInvoice()
		inv.Active = false
		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(inv, nil)

		_, err := uc.Get(context.Background(), &regularUser, 42)
		if !errors.Is(err, ErrInvoiceNotFound) {
			t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
		}
	})

	t.Run("another user's invoice is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		other := entities.User{ID: 8, Username: "bob", Role: entities.RoleUser, Active: true}
		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(storedInvoice(), nil)

		_, err := uc.Get(context.Background(), &other, 42)
		if !errors.Is(err, ErrInvoiceForbidden) {
			t.Fatalf("expected ErrInvoiceForbidden, got %v", err)
		}
	})

	t.Run("admins bypass ownership", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(storedInvoice(), nil)
		m.audits.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.AuditEntry) error {
				if e.Action != entities.AuditActionView {
					t.Fatalf("expected VIEW audit, got %s", e.Action)
				}
				return nil
			})

		if _, err := uc.Get(context.Background(), &adminUser, 42); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestInvoiceUseCase_List(t *testing.T) {
	t.Run("non admin listing is scoped to the caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.invoices.EXPECT().List(gomock.Any(), interfaces.InvoiceFilter{OwnerID: regularUser.ID}).Return(nil, "", nil)

		if _, _, err := uc.List(context.Background(), &regularUser, interfaces.InvoiceFilter{OwnerID: 999}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("admins may list everything", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.invoices.EXPECT().List(gomock.Any(), interfaces.InvoiceFilter{}).Return(nil, "", nil)

		if _, _, err := uc.List(context.Background(), &adminUser, interfaces.InvoiceFilter{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestInvoiceUseCase_DeleteAndDownload(t *testing.T) {
	t.Run("delete deactivates and audits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(storedInvoice(), nil)
		m.invoices.EXPECT().Deactivate(gomock.Any(), int64(42)).Return(nil)
		m.audits.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.AuditEntry) error {
				if e.Action != entities.AuditActionDelete {
					t.Fatalf("expected DELETE audit, got %s", e.Action)
				}
				return nil
			})

		if err := uc.Delete(context.Background(), &regularUser, 42); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("download returns the original file name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(storedInvoice(), nil)
		m.storage.EXPECT().Load(gomock.Any(), "ab12.pdf").Return([]byte("%PDF"), nil)
		m.audits.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e entities.AuditEntry) error {
				if e.Action != entities.AuditActionDownload {
					t.Fatalf("expected DOWNLOAD audit, got %s", e.Action)
				}
				return nil
			})

		data, name, err := uc.DownloadFile(context.Background(), &regularUser, 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "%PDF" || name != "scan.pdf" {
			t.Fatalf("unexpected download: %q %q", data, name)
		}
	})

	t.Run("download without a stored file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		inv := storedInvoice()
		inv.StoredFileName = ""
		m.invoices.EXPECT().GetByID(gomock.Any(), int64(42)).Return(inv, nil)

		_, _, err := uc.DownloadFile(context.Background(), &regularUser, 42)
		if !errors.Is(err, ErrNoInvoiceFile) {
			t.Fatalf("expected ErrNoInvoiceFile, got %v", err)
		}
	})
}

func TestInvoiceUseCase_ScreenUpload(t *testing.T) {
	t.Run("invalid upload is rejected before screening", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newTestInvoiceUseCase(ctrl)

		_, err := uc.ScreenUpload(context.Background(), &regularUser, UploadScreeningRequest{
			FileBytes:       []byte("data"),
			FileContentType: "application/zip",
			FileName:        "archive.zip",
		})
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Fatalf("expected ErrUnsupportedFileType, got %v", err)
		}
	})

	t.Run("screening mints a temporary fingerprint", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newTestInvoiceUseCase(ctrl)

		m.dupes.EXPECT().CheckDuplicate(gomock.Any(), gomock.Any()).Return(interfaces.DuplicateCheckResult{IsDuplicate: false}, nil)
		m.dupes.EXPECT().SaveTemporaryFingerprint(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, rec interfaces.FingerprintRecord) error {
				if !IsTemporaryID(rec.ID) {
					t.Fatalf("expected a temporary id, got %d", rec.ID)
				}
				return nil
			})

		res, err := uc.ScreenUpload(context.Background(), &regularUser, UploadScreeningRequest{
			FileBytes:       []byte("%PDF"),
			FileContentType: "application/pdf",
			FileName:        "scan.pdf",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !IsTemporaryID(res.TempFingerprintID) {
			t.Fatalf("expected a temporary id, got %d", res.TempFingerprintID)
		}
		if !res.Duplicate.ServiceAvailable {
			t.Fatalf("expected service available verdict, got %+v", res.Duplicate)
		}
	})
}
