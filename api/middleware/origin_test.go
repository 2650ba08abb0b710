package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginAllowed(t *testing.T) {
	allowed := []string{"http://tools.local:3000/"}

	tests := []struct {
		name   string
		host   string
		origin string
		want   bool
	}{
		{"no origin", "localhost:8089", "", true},
		{"same origin", "localhost:8089", "http://localhost:8089", true},
		{"same origin any case", "localhost:8089", "http://LOCALHOST:8089", true},
		{"listed", "localhost:8089", "http://tools.local:3000", true},
		{"other port", "localhost:8089", "http://localhost:3000", false},
		{"foreign", "localhost:8089", "https://evil.example", false},
		{"null origin", "localhost:8089", "null", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/status", nil)
			req.Host = tt.host
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, OriginAllowed(req, allowed))
		})
	}
}
