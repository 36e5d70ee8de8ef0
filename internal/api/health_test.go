package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubProber bool

func (s stubProber) Healthy(context.Context) bool { return bool(s) }

func healthRequest(db, cache stubProber) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", Health(db, cache))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	return w
}

func TestHealth_AllUp(t *testing.T) {
	w := healthRequest(true, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHealth_DatabaseDown(t *testing.T) {
	w := healthRequest(false, true)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the database is down, got %d", w.Code)
	}
}

func TestHealth_RedisDownDegrades(t *testing.T) {
	// Redis is a soft dependency: the activity feed falls back to the
	// store, so a down cache is reported without failing the check.
	w := healthRequest(true, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with degraded cache, got %d", w.Code)
	}
	var body struct {
		DB    bool `json:"db"`
		Redis bool `json:"redis"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.DB || body.Redis {
		t.Errorf("expected db=true redis=false, got db=%v redis=%v", body.DB, body.Redis)
	}
}
