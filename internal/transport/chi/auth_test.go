package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBearerAuthMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		path   string
		header string
		want   int
	}{
		{"no keys passes through", nil, "/api/admin/seed", "", http.StatusOK},
		{"blank keys pass through", []string{"", ""}, "/api/admin/seed", "", http.StatusOK},
		{"missing header", []string{"secret"}, "/api/admin/seed", "", http.StatusUnauthorized},
		{"basic scheme", []string{"secret"}, "/api/admin/seed", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"wrong token", []string{"secret"}, "/api/admin/seed", "Bearer wrong-key", http.StatusUnauthorized},
		{"prefix of key", []string{"secret"}, "/api/admin/seed", "Bearer sec", http.StatusUnauthorized},
		{"valid token", []string{"secret"}, "/api/admin/seed", "Bearer secret", http.StatusOK},
		{"lower-case scheme", []string{"secret"}, "/api/admin/seed", "bearer secret", http.StatusOK},
		{"second key", []string{"key1", "key2"}, "/api/admin/seed", "Bearer key2", http.StatusOK},
		{"health exempt", []string{"secret"}, "/health", "", http.StatusOK},
		{"metrics exempt", []string{"secret"}, "/metrics", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := BearerAuthMiddleware(tt.keys)(okHandler())

			req := httptest.NewRequest(http.MethodPost, tt.path, http.NoBody)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("got %d, want %d", rr.Code, tt.want)
			}
			if tt.want != http.StatusUnauthorized {
				return
			}
			var errResp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if errResp.Code != CodeUnauthorized {
				t.Errorf("error code: got %s, want %s", errResp.Code, CodeUnauthorized)
			}
		})
	}
}
