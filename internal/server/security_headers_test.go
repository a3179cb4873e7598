package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	middleware := SecurityHeadersMiddleware()

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/v1/storefront/listings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	expectedHeaders := map[string]string{
		HeaderContentType:    HeaderValueNoSniff,
		HeaderFrameOptions:   HeaderValueSameOrigin,
		HeaderXSSProtection:  HeaderValueXSSBlock,
		HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
	}

	for header, expected := range expectedHeaders {
		if got := rec.Header().Get(header); got != expected {
			t.Errorf("expected header %s to be %q, got %q", header, expected, got)
		}
	}
}

func TestSecurityHeadersMiddleware_SetOnErrorResponses(t *testing.T) {
	middleware := SecurityHeadersMiddleware()

	// Headers are written before the handler runs, so failures carry them too
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slot not found", http.StatusNotFound)
	}))

	req := httptest.NewRequest("GET", "/api/v1/storefront/slots/99", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if got := rec.Header().Get(HeaderContentType); got != HeaderValueNoSniff {
		t.Errorf("expected %s on error response, got %q", HeaderValueNoSniff, got)
	}
	if got := rec.Header().Get(HeaderFrameOptions); got != HeaderValueSameOrigin {
		t.Errorf("expected %s on error response, got %q", HeaderValueSameOrigin, got)
	}
}
