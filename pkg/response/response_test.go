package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Success(c, 0, gin.H{"id": "abc", "ok": false})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != true || body["id"] != "abc" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Set("request_id", "req-1")

	Error(c, http.StatusUnauthorized, "Invalid credentials", nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != false || body["detail"] != "Invalid credentials" || body["request_id"] != "req-1" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["errors"]; ok {
		t.Fatal("errors key should be omitted when empty")
	}
}

func TestAbortStopsChain(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	Abort(c, http.StatusTooManyRequests, "rate limit exceeded")

	if !c.IsAborted() || rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected aborted 429, got aborted=%v code=%d", c.IsAborted(), rec.Code)
	}
}
