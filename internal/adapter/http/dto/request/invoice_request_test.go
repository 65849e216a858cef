package request

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"invoicetracker/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestCreateInvoiceForm_ResolveDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		form := CreateInvoiceForm{Date: "2026-03-15"}
		got, err := form.ResolveDate()
		if err != nil {
			t.Fatalf("ResolveDate: %v", err)
		}
		want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		if got == nil || !got.Equal(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("empty date is nil", func(t *testing.T) {
		form := CreateInvoiceForm{Date: "  "}
		got, err := form.ResolveDate()
		if err != nil {
			t.Fatalf("ResolveDate: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("wrong layout", func(t *testing.T) {
		form := CreateInvoiceForm{Date: "15/03/2026"}
		if _, err := form.ResolveDate(); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})
}

func TestCreateInvoiceForm_ResolveQuantities(t *testing.T) {
	t.Run("numbers and numeric strings", func(t *testing.T) {
		form := CreateInvoiceForm{Quantities: `{"1": 2, "2": "3.5"}`}
		got, err := form.ResolveQuantities()
		if err != nil {
			t.Fatalf("ResolveQuantities: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(got))
		}
		if !got[1].Equal(decimal.NewFromInt(2)) || !got[2].Equal(decimal.RequireFromString("3.5")) {
			t.Fatalf("unexpected quantities: %v", got)
		}
	})

	t.Run("empty field is nil", func(t *testing.T) {
		form := CreateInvoiceForm{}
		got, err := form.ResolveQuantities()
		if err != nil {
			t.Fatalf("ResolveQuantities: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("rejects non numeric product ids", func(t *testing.T) {
		form := CreateInvoiceForm{Quantities: `{"oil": 2}`}
		if _, err := form.ResolveQuantities(); !errors.Is(err, ErrInvalidQuantities) {
			t.Fatalf("expected ErrInvalidQuantities, got %v", err)
		}
	})

	t.Run("rejects zero and negative quantities", func(t *testing.T) {
		for _, payload := range []string{`{"1": 0}`, `{"1": -2}`, `{"1": "-1.5"}`} {
			form := CreateInvoiceForm{Quantities: payload}
			if _, err := form.ResolveQuantities(); !errors.Is(err, ErrInvalidQuantities) {
				t.Fatalf("expected ErrInvalidQuantities for %s, got %v", payload, err)
			}
		}
	})

	t.Run("rejects non numeric quantity values", func(t *testing.T) {
		for _, payload := range []string{`{"1": true}`, `{"1": "many"}`, `[1, 2]`} {
			form := CreateInvoiceForm{Quantities: payload}
			if _, err := form.ResolveQuantities(); !errors.Is(err, ErrInvalidQuantities) {
				t.Fatalf("expected ErrInvalidQuantities for %s, got %v", payload, err)
			}
		}
	})
}

func TestUpdateInvoiceRequest_ResolveStatus(t *testing.T) {
	t.Run("absent status is nil", func(t *testing.T) {
		req := UpdateInvoiceRequest{}
		if got := req.ResolveStatus(); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("status is trimmed and uppercased", func(t *testing.T) {
		raw := "  approved "
		req := UpdateInvoiceRequest{Status: &raw}
		got := req.ResolveStatus()
		if got == nil || *got != entities.InvoiceStatusApproved {
			t.Fatalf("expected APPROVED, got %v", got)
		}
	})
}

func TestUpdateInvoiceRequest_ResolveQuantities(t *testing.T) {
	t.Run("json null is nil", func(t *testing.T) {
		req := UpdateInvoiceRequest{Quantities: json.RawMessage("null")}
		got, err := req.ResolveQuantities()
		if err != nil {
			t.Fatalf("ResolveQuantities: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})

	t.Run("empty object clears the line items", func(t *testing.T) {
		req := UpdateInvoiceRequest{Quantities: json.RawMessage("{}")}
		got, err := req.ResolveQuantities()
		if err != nil {
			t.Fatalf("ResolveQuantities: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("expected an empty non-nil map, got %v", got)
		}
	})
}
