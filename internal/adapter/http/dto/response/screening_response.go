package response

import (
	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"
)

type ExtractedItemResponse struct {
	Name      *string `json:"name"`
	Quantity  *string `json:"quantity"`
	UnitPrice *string `json:"unit_price"`
	Subtotal  *string `json:"subtotal"`
}

type ExtractionResponse struct {
	Success      bool                    `json:"success"`
	InvoiceDate  *string                 `json:"invoice_date"`
	TotalAmount  *string                 `json:"total_amount"`
	Vendor       *string                 `json:"vendor"`
	Items        []ExtractedItemResponse `json:"items"`
	ErrorMessage string                  `json:"error_message,omitempty"`
}

type DuplicateVerdictResponse struct {
	IsDuplicate      bool    `json:"is_duplicate"`
	Similarity       float64 `json:"similarity"`
	MatchedInvoiceID string  `json:"matched_invoice_id,omitempty"`
	Message          string  `json:"message,omitempty"`
	ServiceAvailable bool    `json:"service_available"`
}

// ScreeningResponse is the upload-and-screen verdict: a temporary fingerprint
// id to pass back on the eventual create, plus advisory extraction and
// duplicate results.
type ScreeningResponse struct {
	TempFingerprintID string                   `json:"temp_fingerprint_id"`
	Extraction        ExtractionResponse       `json:"extraction"`
	Duplicate         DuplicateVerdictResponse `json:"duplicate"`
}

func FromScreening(tempID int64, ext entities.ExtractionResult, dup interfaces.DuplicateCheckResult) ScreeningResponse {
	return ScreeningResponse{
		TempFingerprintID: formatID(tempID),
		Extraction:        FromExtraction(ext),
		Duplicate:         fromDuplicateVerdict(dup),
	}
}

func FromExtraction(ext entities.ExtractionResult) ExtractionResponse {
	res := ExtractionResponse{
		Success:      ext.Success,
		Vendor:       ext.Vendor,
		ErrorMessage: ext.ErrorMessage,
	}
	if ext.InvoiceDate != nil {
		d := ext.InvoiceDate.Format("2006-01-02")
		res.InvoiceDate = &d
	}
	if ext.TotalAmount != nil {
		a := ext.TotalAmount.StringFixed(2)
		res.TotalAmount = &a
	}
	res.Items = make([]ExtractedItemResponse, 0, len(ext.Items))
	for _, it := range ext.Items {
		item := ExtractedItemResponse{Name: it.Name}
		if it.Quantity != nil {
			q := it.Quantity.String()
			item.Quantity = &q
		}
		if it.UnitPrice != nil {
			p := it.UnitPrice.StringFixed(2)
			item.UnitPrice = &p
		}
		if it.Subtotal != nil {
			s := it.Subtotal.StringFixed(2)
			item.Subtotal = &s
		}
		res.Items = append(res.Items, item)
	}
	return res
}

func fromDuplicateVerdict(dup interfaces.DuplicateCheckResult) DuplicateVerdictResponse {
	res := DuplicateVerdictResponse{
		IsDuplicate:      dup.IsDuplicate,
		Similarity:       dup.Similarity,
		Message:          dup.Message,
		ServiceAvailable: dup.ServiceAvailable,
	}
	if dup.MatchedInvoiceID != 0 {
		res.MatchedInvoiceID = formatID(dup.MatchedInvoiceID)
	}
	return res
}
