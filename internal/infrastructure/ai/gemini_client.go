package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"invoicetracker/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

var ErrMissingGeminiAPIKey = errors.New("missing GEMINI_API_KEY")

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-1.5-flash"

	geminiDialTimeout  = 30 * time.Second
	geminiTotalTimeout = 60 * time.Second
)

// GeminiClient calls the Gemini generateContent REST endpoint directly. The
// document travels inline as base64, which is why the extraction layer caps
// document size well below the HTTP request limit.
type GeminiClient struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

var _ interfaces.IModelClient = (*GeminiClient)(nil)

func NewGeminiClient(baseURL, model, apiKey string, log zerolog.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingGeminiAPIKey
	}
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{
		baseURL: baseURL,
		model:   model,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: geminiTotalTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: geminiDialTimeout}).DialContext,
			},
		},
		log: log,
	}, nil
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateContent sends the prompt plus inline document and returns the text
// of the first candidate, or an empty string when the model produced none.
func (c *GeminiClient) GenerateContent(ctx context.Context, req interfaces.ModelRequest) (string, error) {
	parts := []geminiPart{{Text: req.Prompt}}
	if len(req.Document) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MIMEType: req.MIMEType,
			Data:     base64.StdEncoding.EncodeToString(req.Document),
		}})
	}

	body, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Parts: parts}}})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	c.log.Debug().
		Str("model", c.model).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("gemini generateContent call finished")

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decoding gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
