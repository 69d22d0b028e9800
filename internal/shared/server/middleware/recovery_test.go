package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-jobmatch/internal/shared/telemetry"
)

func TestRecoveryReturnsGenericError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	telemetry.SetOutput(&logs)
	defer telemetry.SetOutput(nil)

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("database exploded")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "Server error" {
		t.Fatalf("unexpected error body: %v", body)
	}
	if strings.Contains(resp.Body.String(), "database exploded") {
		t.Fatalf("panic value leaked to client: %s", resp.Body.String())
	}
	if !strings.Contains(logs.String(), "database exploded") {
		t.Fatalf("expected panic cause in logs")
	}
}

func TestRecoveryMarksIntakeFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var logs bytes.Buffer
	telemetry.SetOutput(&logs)
	defer telemetry.SetOutput(nil)

	router := gin.New()
	router.Use(RequestID(), Logging(), Recovery())
	router.POST("/api/resumes/upload", func(c *gin.Context) {
		c.Set("intakeStage", "text_extracted")
		panic("nil map")
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/resumes/upload", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	var access map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &access); err != nil {
		t.Fatalf("decode access log: %v", err)
	}
	if access["intake_stage"] != "failed" {
		t.Fatalf("expected intake_stage failed, got %v", access["intake_stage"])
	}
	if !strings.Contains(logs.String(), `"failed_after":"text_extracted"`) {
		t.Fatalf("expected failed_after in panic log: %s", logs.String())
	}
}
