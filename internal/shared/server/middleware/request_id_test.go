package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func requestIDFor(t *testing.T, inbound string) (header, stored string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		stored = RequestIDFromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set("X-Request-Id", inbound)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp.Header().Get("X-Request-Id"), stored
}

func TestRequestIDReusesInbound(t *testing.T) {
	header, stored := requestIDFor(t, "req-123")
	assert.Equal(t, "req-123", header)
	assert.Equal(t, "req-123", stored)
}

func TestRequestIDMintsUUID(t *testing.T) {
	tests := map[string]string{
		"missing":       "",
		"too long":      strings.Repeat("a", 65),
		"control chars": "abc\ndef",
		"spaces":        "has space",
	}
	for name, inbound := range tests {
		t.Run(name, func(t *testing.T) {
			header, stored := requestIDFor(t, inbound)
			_, err := uuid.Parse(header)
			assert.NoError(t, err)
			assert.Equal(t, header, stored)
		})
	}
}

func TestRequestIDFromNilContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(nil))
}
