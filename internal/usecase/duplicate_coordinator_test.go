package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"
	mock_interfaces "invoicetracker/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

var coordActor = entities.User{ID: 7, Username: "alice", Role: entities.RoleUser}

func TestTemporaryFingerprintIDs(t *testing.T) {
	id := NewTemporaryFingerprintID()
	if !IsTemporaryID(id) {
		t.Fatalf("minted id %d is below the temporary threshold", id)
	}
	if IsTemporaryID(newID()) {
		t.Fatal("a regular id must never look temporary")
	}
}

func TestDuplicateCoordinator_CheckForDuplicates(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("verdict passes through on success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mock_interfaces.NewMockIDuplicateClient(ctrl)
		coord := NewDuplicateCoordinator(client, zerolog.Nop())

		client.EXPECT().CheckDuplicate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req interfaces.DuplicateCheckRequest) (interfaces.DuplicateCheckResult, error) {
				if req.InvoiceDate != "2026-03-15" || req.TotalAmount != "130.00" || req.Username != "alice" {
					t.Fatalf("unexpected request: %+v", req)
				}
				return interfaces.DuplicateCheckResult{IsDuplicate: true, Similarity: 0.97, MatchedInvoiceID: 11}, nil
			})

		res := coord.CheckForDuplicates(context.Background(), []byte("doc"), "scan.pdf", date, dec("130.00"), "Acme", coordActor, 99)
		if !res.ServiceAvailable || !res.IsDuplicate || res.MatchedInvoiceID != 11 {
			t.Fatalf("unexpected verdict: %+v", res)
		}
	})

	t.Run("transport failure degrades to service unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mock_interfaces.NewMockIDuplicateClient(ctrl)
		coord := NewDuplicateCoordinator(client, zerolog.Nop())

		client.EXPECT().CheckDuplicate(gomock.Any(), gomock.Any()).Return(interfaces.DuplicateCheckResult{}, errors.New("timeout"))

		res := coord.CheckForDuplicates(context.Background(), []byte("doc"), "scan.pdf", date, dec("130.00"), "Acme", coordActor, 99)
		if res.ServiceAvailable || res.IsDuplicate {
			t.Fatalf("expected unavailable non-duplicate verdict, got %+v", res)
		}
		if res.Message != "duplicate detection unavailable" {
			t.Fatalf("unexpected message: %q", res.Message)
		}
	})

	t.Run("nil client behaves like an outage", func(t *testing.T) {
		coord := NewDuplicateCoordinator(nil, zerolog.Nop())
		res := coord.CheckForDuplicates(context.Background(), nil, "", date, dec("0"), "", coordActor, 0)
		if res.ServiceAvailable {
			t.Fatalf("expected unavailable verdict, got %+v", res)
		}
	})
}

func TestDuplicateCoordinator_FingerprintLifecycle(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	items := []entities.LineItem{
		{ProductID: 1, ProductName: "Engine Oil", Quantity: dec("2"), UnitPrice: dec("50"), Subtotal: dec("100")},
		{ProductID: 2, ProductName: "Oil Filter", Quantity: dec("1"), UnitPrice: dec("30"), Subtotal: dec("30")},
	}

	t.Run("temporary fingerprint is replaced with the final record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mock_interfaces.NewMockIDuplicateClient(ctrl)
		coord := NewDuplicateCoordinator(client, zerolog.Nop())

		tempID := NewTemporaryFingerprintID()
		client.EXPECT().ReplaceTemporaryFingerprint(gomock.Any(), tempID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, rec interfaces.FingerprintRecord) error {
				if rec.ID != 42 || rec.TotalAmount != "130.00" || rec.Vendor != "Acme" {
					t.Fatalf("unexpected record: %+v", rec)
				}
				want := "InvoiceID:42|Vendor:Acme|Date:2026-03-15|Amount:130.00|Products:Engine Oil(2),Oil Filter(1)|User:alice"
				if rec.TextDigest != want {
					t.Fatalf("digest mismatch:\n got %q\nwant %q", rec.TextDigest, want)
				}
				return nil
			})

		coord.ReplaceTemporaryWithFinal(context.Background(), tempID, 42, date, dec("130.00"), "Acme", items, coordActor)
	})

	t.Run("save failures are absorbed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mock_interfaces.NewMockIDuplicateClient(ctrl)
		coord := NewDuplicateCoordinator(client, zerolog.Nop())

		client.EXPECT().SaveFingerprint(gomock.Any(), gomock.Any()).Return(errors.New("boom"))
		client.EXPECT().SaveTemporaryFingerprint(gomock.Any(), gomock.Any()).Return(errors.New("boom"))
		client.EXPECT().ReplaceTemporaryFingerprint(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))

		coord.SaveFingerprint(context.Background(), 42, date, dec("130.00"), "Acme", items, coordActor)
		coord.SaveTemporaryFingerprint(context.Background(), 99, date, dec("130.00"), "Acme", "digest", coordActor)
		coord.ReplaceTemporaryWithFinal(context.Background(), 99, 42, date, dec("130.00"), "Acme", items, coordActor)
	})
}

func TestBuildTextDigest_EmptyItems(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	got := BuildTextDigest(42, "Acme", date, dec("130"), nil, "alice")
	want := "InvoiceID:42|Vendor:Acme|Date:2026-03-15|Amount:130.00|Products:|User:alice"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
