package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"invoicetracker/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidQuantities = errors.New("invalid quantities payload")
)

// CreateInvoiceForm is the multipart form accompanying an invoice creation.
// The document itself travels as the "file" part; Quantities is a JSON object
// mapping product id to quantity, encoded as a form field because multipart
// forms carry no structure.
type CreateInvoiceForm struct {
	Name              string `form:"name"`
	Date              string `form:"date"`
	Quantities        string `form:"quantities"`
	TempFingerprintID int64  `form:"temp_fingerprint_id"`
}

func (f CreateInvoiceForm) ResolveDate() (*time.Time, error) {
	return parseOptionalDate(f.Date)
}

func (f CreateInvoiceForm) ResolveQuantities() (map[int64]decimal.Decimal, error) {
	if strings.TrimSpace(f.Quantities) == "" {
		return nil, nil
	}
	return parseQuantities([]byte(f.Quantities))
}

// UpdateInvoiceRequest is the JSON body of a partial invoice update. Absent
// fields are left untouched; quantities, when present, replace the whole
// line-item set.
type UpdateInvoiceRequest struct {
	Date       *string         `json:"date"`
	Status     *string         `json:"status"`
	Quantities json.RawMessage `json:"quantities"`
}

func (r UpdateInvoiceRequest) ResolveDate() (*time.Time, error) {
	if r.Date == nil {
		return nil, nil
	}
	return parseOptionalDate(*r.Date)
}

func (r UpdateInvoiceRequest) ResolveStatus() *entities.InvoiceStatus {
	if r.Status == nil {
		return nil
	}
	s := entities.InvoiceStatus(strings.ToUpper(strings.TrimSpace(*r.Status)))
	return &s
}

func (r UpdateInvoiceRequest) ResolveQuantities() (map[int64]decimal.Decimal, error) {
	if len(r.Quantities) == 0 || string(r.Quantities) == "null" {
		return nil, nil
	}
	return parseQuantities(r.Quantities)
}

func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// parseQuantities accepts {"<product id>": <quantity>} with quantities as
// JSON numbers or numeric strings.
func parseQuantities(raw []byte) (map[int64]decimal.Decimal, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuantities, err)
	}

	out := make(map[int64]decimal.Decimal, len(m))
	for key, val := range m {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad product id %q", ErrInvalidQuantities, key)
		}
		var qty decimal.Decimal
		switch v := val.(type) {
		case float64:
			qty = decimal.NewFromFloat(v)
		case string:
			qty, err = decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("%w: bad quantity %q", ErrInvalidQuantities, v)
			}
		default:
			return nil, fmt.Errorf("%w: bad quantity for product %s", ErrInvalidQuantities, key)
		}
		if qty.IsNegative() || qty.IsZero() {
			return nil, fmt.Errorf("%w: quantity for product %s must be positive", ErrInvalidQuantities, key)
		}
		out[id] = qty
	}
	return out, nil
}
