package interfaces

import "context"

// ModelRequest is one generation call to the language-model endpoint.
// Document, when set, is sent inline (base64) together with its MIME type.
type ModelRequest struct {
	Prompt   string
	Document []byte
	MIMEType string
}

// IModelClient abstracts the language-model HTTP endpoint. GenerateContent
// returns the first text part of the first candidate; an answer without
// candidates or parts yields an empty string, not an error.

type IModelClient interface {
	GenerateContent(ctx context.Context, req ModelRequest) (string, error)
}
