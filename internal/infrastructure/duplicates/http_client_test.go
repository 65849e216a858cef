package duplicates

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invoicetracker/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

func TestHTTPClient_CheckDuplicate(t *testing.T) {
	t.Run("verdict is decoded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/check" {
				t.Fatalf("unexpected path: %s", r.URL.Path)
			}
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Fatalf("parsing multipart form: %v", err)
			}
			if got := r.FormValue("vendor"); got != "Acme" {
				t.Fatalf("unexpected vendor field: %q", got)
			}
			if got := r.FormValue("candidate_id"); got != "42" {
				t.Fatalf("unexpected candidate_id field: %q", got)
			}
			f, _, err := r.FormFile("file")
			if err != nil {
				t.Fatalf("reading file part: %v", err)
			}
			defer f.Close()
			data, _ := io.ReadAll(f)
			if string(data) != "%PDF" {
				t.Fatalf("unexpected file content: %q", data)
			}

			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"is_duplicate":true,"similarity":0.97,"matched_invoice_id":7,"message":"near match"}`)
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL, zerolog.Nop())
		result, err := c.CheckDuplicate(context.Background(), interfaces.DuplicateCheckRequest{
			File:        []byte("%PDF"),
			FileName:    "scan.pdf",
			InvoiceDate: "2026-03-15",
			TotalAmount: "130.00",
			Vendor:      "Acme",
			Username:    "alice",
			Role:        "USER",
			CandidateID: 42,
		})
		if err != nil {
			t.Fatalf("CheckDuplicate: %v", err)
		}
		if !result.IsDuplicate || result.Similarity != 0.97 || result.MatchedInvoiceID != 7 {
			t.Fatalf("unexpected verdict: %+v", result)
		}
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "index rebuilding", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL, zerolog.Nop())
		_, err := c.CheckDuplicate(context.Background(), interfaces.DuplicateCheckRequest{File: []byte("x"), FileName: "x.pdf"})
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), "503") {
			t.Fatalf("expected the status code in the error, got %v", err)
		}
	})
}

func TestHTTPClient_Fingerprints(t *testing.T) {
	t.Run("replace targets the temporary id path", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Fatalf("unexpected content type: %q", ct)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL, zerolog.Nop())
		err := c.ReplaceTemporaryFingerprint(context.Background(), 123, interfaces.FingerprintRecord{ID: 42})
		if err != nil {
			t.Fatalf("ReplaceTemporaryFingerprint: %v", err)
		}
		if gotPath != "/fingerprints/temporary/123/replace" {
			t.Fatalf("unexpected path: %s", gotPath)
		}
	})

	t.Run("save failure surfaces the response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "fingerprint exists", http.StatusConflict)
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL, zerolog.Nop())
		err := c.SaveFingerprint(context.Background(), interfaces.FingerprintRecord{ID: 42})
		if err == nil {
			t.Fatal("expected an error")
		}
		if !strings.Contains(err.Error(), "fingerprint exists") {
			t.Fatalf("expected the body in the error, got %v", err)
		}
	})
}
