package duplicates

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strconv"
	"time"

	"invoicetracker/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

const (
	duplicatesDialTimeout  = 30 * time.Second
	duplicatesTotalTimeout = 60 * time.Second
)

// HTTPClient talks to the duplicate-detection microservice. It is a dumb
// transport: every failure surfaces as an error and the coordinator above it
// decides how to degrade.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var _ interfaces.IDuplicateClient = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, log zerolog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: duplicatesTotalTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: duplicatesDialTimeout}).DialContext,
			},
		},
		log: log,
	}
}

func (c *HTTPClient) SaveFingerprint(ctx context.Context, rec interfaces.FingerprintRecord) error {
	return c.postJSON(ctx, "/fingerprints", rec)
}

func (c *HTTPClient) SaveTemporaryFingerprint(ctx context.Context, rec interfaces.FingerprintRecord) error {
	return c.postJSON(ctx, "/fingerprints/temporary", rec)
}

func (c *HTTPClient) ReplaceTemporaryFingerprint(ctx context.Context, tempID int64, rec interfaces.FingerprintRecord) error {
	path := fmt.Sprintf("/fingerprints/temporary/%d/replace", tempID)
	return c.postJSON(ctx, path, rec)
}

// CheckDuplicate uploads the document as multipart form data together with
// the candidate metadata and returns the service verdict.
func (c *HTTPClient) CheckDuplicate(ctx context.Context, req interfaces.DuplicateCheckRequest) (interfaces.DuplicateCheckResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", req.FileName)
	if err != nil {
		return interfaces.DuplicateCheckResult{}, err
	}
	if _, err := part.Write(req.File); err != nil {
		return interfaces.DuplicateCheckResult{}, err
	}
	fields := map[string]string{
		"invoice_date": req.InvoiceDate,
		"total_amount": req.TotalAmount,
		"vendor":       req.Vendor,
		"username":     req.Username,
		"role":         req.Role,
		"candidate_id": strconv.FormatInt(req.CandidateID, 10),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return interfaces.DuplicateCheckResult{}, err
		}
	}
	if err := w.Close(); err != nil {
		return interfaces.DuplicateCheckResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/check", &buf)
	if err != nil {
		return interfaces.DuplicateCheckResult{}, err
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return interfaces.DuplicateCheckResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return interfaces.DuplicateCheckResult{}, fmt.Errorf("duplicate service returned status %d: %s", resp.StatusCode, body)
	}

	var result interfaces.DuplicateCheckResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return interfaces.DuplicateCheckResult{}, fmt.Errorf("decoding duplicate verdict: %w", err)
	}
	return result, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("duplicate service returned status %d on %s: %s", resp.StatusCode, path, body)
	}
	c.log.Debug().Str("path", path).Msg("fingerprint call succeeded")
	return nil
}
