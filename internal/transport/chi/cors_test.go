package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		origin      string
		method      string
		wantStatus  int
		wantAllowed string
	}{
		{"no config", nil, "https://example.com", http.MethodGet, http.StatusOK, ""},
		{"allowed origin", []string{"https://example.com/"}, "https://example.com", http.MethodGet, http.StatusOK, "https://example.com"},
		{"disallowed origin", []string{"https://example.com"}, "https://evil.test", http.MethodGet, http.StatusOK, ""},
		{"wildcard", []string{"*"}, "https://any.test", http.MethodGet, http.StatusOK, "*"},
		{"preflight", []string{"https://example.com"}, "https://example.com", http.MethodOptions, http.StatusNoContent, "https://example.com"},
		{"no origin header", []string{"*"}, "", http.MethodGet, http.StatusOK, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := CORSMiddleware(tc.origins)(okHandler())

			req := httptest.NewRequest(tc.method, "/api/models", http.NoBody)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantAllowed, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
