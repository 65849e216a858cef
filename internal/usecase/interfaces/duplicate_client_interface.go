package interfaces

import "context"

// FingerprintRecord is the payload the duplicate-detection service stores per
// invoice. ID is either a final invoice id or a temporary sentinel id minted
// before persistence. All amount/date values travel as strings so the remote
// service owns their interpretation.
type FingerprintRecord struct {
	ID          int64  `json:"id"`
	InvoiceDate string `json:"invoice_date"`
	TotalAmount string `json:"total_amount"`
	Vendor      string `json:"vendor"`
	TextDigest  string `json:"text_digest"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

// DuplicateCheckRequest is the synchronous upload-time screening call.
type DuplicateCheckRequest struct {
	File        []byte
	FileName    string
	InvoiceDate string
	TotalAmount string
	Vendor      string
	Username    string
	Role        string
	CandidateID int64
}

// DuplicateCheckResult is the service verdict. ServiceAvailable=false means
// the check could not run and the caller should proceed.
type DuplicateCheckResult struct {
	IsDuplicate      bool    `json:"is_duplicate"`
	Similarity       float64 `json:"similarity"`
	MatchedInvoiceID int64   `json:"matched_invoice_id,omitempty"`
	Message          string  `json:"message,omitempty"`
	ServiceAvailable bool    `json:"service_available"`
}

// IDuplicateClient is the raw transport to the duplicate-detection
// microservice. Errors from these calls must never reach the invoice
// orchestrator; the coordinator wrapper absorbs them.

type IDuplicateClient interface {
	SaveFingerprint(ctx context.Context, rec FingerprintRecord) error
	SaveTemporaryFingerprint(ctx context.Context, rec FingerprintRecord) error
	ReplaceTemporaryFingerprint(ctx context.Context, tempID int64, rec FingerprintRecord) error
	CheckDuplicate(ctx context.Context, req DuplicateCheckRequest) (DuplicateCheckResult, error)
}
