package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"invoicetracker/internal/domain/entities"
	"invoicetracker/internal/usecase/interfaces"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tailscale/hujson"
)

// Documents above this size are rejected before the model call; the inline
// payload is base64-inflated, so this limit is tighter than the upload limit.
const extractionMaxDocumentBytes = 4 << 20

const extractionPrompt = `Extract structured invoice data from the attached document.
Return ONLY a JSON object, with no surrounding text, using exactly these keys:
  "invoiceDate": the invoice date in ISO-8601 format (YYYY-MM-DD), or null
  "totalAmount": the grand total as a plain number with currency symbols stripped, or null
  "vendor": the vendor or supplier name, or null
  "items": an array of line items, each an object with "name", "quantity", "unitPrice" and "subtotal"
Any field you cannot find must be null. If an item's subtotal is missing,
compute it as quantity multiplied by unitPrice. Do not invent values.`

// ExtractionEngine turns a raw model response, which is meant to be JSON but
// is frequently malformed, into a validated invoice payload. It never returns
// a Go error: every failure becomes a result with Success=false.
type ExtractionEngine struct {
	model interfaces.IModelClient
	log   zerolog.Logger
}

func NewExtractionEngine(model interfaces.IModelClient, log zerolog.Logger) *ExtractionEngine {
	return &ExtractionEngine{model: model, log: log}
}

func (e *ExtractionEngine) Extract(ctx context.Context, document []byte, mimeType string) entities.ExtractionResult {
	if len(document) > extractionMaxDocumentBytes {
		return failedExtraction("", "document exceeds the 4 MiB extraction limit")
	}

	raw, err := e.model.GenerateContent(ctx, interfaces.ModelRequest{
		Prompt:   extractionPrompt,
		Document: document,
		MIMEType: mimeType,
	})
	if err != nil {
		e.log.Warn().Err(err).Msg("language model request failed")
		return failedExtraction("", "language model request failed: "+err.Error())
	}

	obj, err := parseModelJSON(raw)
	if err != nil {
		e.log.Warn().Err(err).Str("response", truncateForLog(raw)).Msg("model response is not repairable JSON")
		return failedExtraction(raw, "model response could not be parsed as JSON: "+err.Error())
	}

	res := entities.ExtractionResult{Success: true, RawText: raw}
	res.InvoiceDate = e.dateField(obj, "invoiceDate")
	res.TotalAmount = e.amountField(obj, "totalAmount")
	res.Vendor = stringField(obj, "vendor")
	res.Items = e.itemsField(obj)

	if res.TotalAmount == nil {
		res.TotalAmount = reconcileTotal(res.Items)
	}

	if res.TotalAmount == nil && res.InvoiceDate == nil && res.Vendor == nil && len(res.Items) == 0 {
		res.Success = false
		res.ErrorMessage = "no useful data extracted"
	}
	return res
}

func failedExtraction(raw, message string) entities.ExtractionResult {
	return entities.ExtractionResult{Success: false, RawText: raw, ErrorMessage: message}
}

// parseModelJSON runs the repair pipeline: strip fences and labels, quote
// barewords, then parse leniently. Each stage is independent; a stage that
// does not apply leaves the text untouched.
func parseModelJSON(raw string) (map[string]any, error) {
	s := sanitizeModelOutput(raw)
	s = quoteBarewordKeys(s)
	s = quoteBarewordValues(s)
	return parseLenient(s)
}

// sanitizeModelOutput strips code-fence markers and a leading "JSON:" label
// and collapses newlines, the most common wrapping the model adds around its
// payload.
func sanitizeModelOutput(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	s = strings.TrimSpace(s)
	if len(s) >= 5 && strings.EqualFold(s[:5], "json:") {
		s = s[5:]
	}
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

var (
	barewordKeyRE   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	barewordValueRE = regexp.MustCompile(`:\s*([A-Za-z_][A-Za-z0-9_ -]*[A-Za-z0-9_])\s*([,}])`)
)

// quoteBarewordKeys wraps unquoted object keys in double quotes; models
// frequently emit near-JSON with the quotes missing.
func quoteBarewordKeys(s string) string {
	return barewordKeyRE.ReplaceAllString(s, `$1"$2":`)
}

// quoteBarewordValues wraps unquoted string values in double quotes, leaving
// JSON literals alone.
func quoteBarewordValues(s string) string {
	return barewordValueRE.ReplaceAllStringFunc(s, func(m string) string {
		sub := barewordValueRE.FindStringSubmatch(m)
		word := strings.TrimSpace(sub[1])
		switch strings.ToLower(word) {
		case "true", "false", "null":
			return m
		}
		return `: "` + word + `"` + sub[2]
	})
}

// parseLenient tolerates trailing commas and similar minor syntax slips.
func parseLenient(s string) (map[string]any, error) {
	b, err := hujson.Standardize([]byte(s))
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("model output is %T, not a JSON object", v)
	}
	return obj, nil
}

func stringField(obj map[string]any, key string) *string {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprintf("%v", v)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "02/01/2006", "2006/01/02"}

// dateField yields nil, never an error, for a missing or malformed date.
func (e *ExtractionEngine) dateField(obj map[string]any, key string) *time.Time {
	s := stringField(obj, key)
	if s == nil {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	e.log.Warn().Str("value", *s).Str("key", key).Msg("unparseable date in model output")
	return nil
}

func (e *ExtractionEngine) amountField(obj map[string]any, key string) *decimal.Decimal {
	v, ok := obj[key]
	if !ok || v == nil {
		return nil
	}
	d := e.amountValue(v)
	if d == nil {
		e.log.Warn().Interface("value", v).Str("key", key).Msg("unparseable amount in model output")
	}
	return d
}

var nonAmountRunesRE = regexp.MustCompile(`[^0-9.,\-]`)

func (e *ExtractionEngine) amountValue(v any) *decimal.Decimal {
	switch t := v.(type) {
	case float64:
		d := decimal.NewFromFloat(t)
		return &d
	case string:
		cleaned := nonAmountRunesRE.ReplaceAllString(t, "")
		// "1,234.56" style thousands separators
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
		if cleaned == "" {
			return nil
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return nil
		}
		return &d
	default:
		return nil
	}
}

func (e *ExtractionEngine) itemsField(obj map[string]any) []entities.ExtractedItem {
	v, ok := obj["items"]
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		e.log.Warn().Interface("value", v).Msg("items field in model output is not an array")
		return nil
	}
	items := make([]entities.ExtractedItem, 0, len(arr))
	for _, el := range arr {
		m, ok := el.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, entities.ExtractedItem{
			Name:      stringField(m, "name"),
			Quantity:  e.amountValue(m["quantity"]),
			UnitPrice: e.amountValue(m["unitPrice"]),
			Subtotal:  e.amountValue(m["subtotal"]),
		})
	}
	return items
}

// reconcileTotal computes a grand total from line candidates when the model
// returned no totalAmount. Per item: subtotal when present, else
// quantity×unitPrice when both are present, else the item is skipped. When no
// item yields a usable amount the total stays nil.
func reconcileTotal(items []entities.ExtractedItem) *decimal.Decimal {
	total := decimal.Zero
	usable := false
	for _, it := range items {
		switch {
		case it.Subtotal != nil:
			total = total.Add(*it.Subtotal)
			usable = true
		case it.Quantity != nil && it.UnitPrice != nil:
			total = total.Add(it.Quantity.Mul(*it.UnitPrice))
			usable = true
		}
	}
	if !usable {
		return nil
	}
	return &total
}

func truncateForLog(s string) string {
	if len(s) > 512 {
		return s[:512] + "..."
	}
	return s
}
