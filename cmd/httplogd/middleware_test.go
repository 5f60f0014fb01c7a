package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func TestRateLimitMiddleware(t *testing.T) {
	setupTest()
	configLock.Lock()
	config.RateLimitRPS = 1
	config.RateLimitBurst = 1
	configLock.Unlock()
	rateLimiter = rate.NewLimiter(rate.Limit(1), 1)
	router := setupRoutes()

	req, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	// Second immediate request should be limited
	req2, _ := http.NewRequest("GET", "/", nil)
	rr2 := httptest.NewRecorder()
	router.ServeHTTP(rr2, req2)
	if status := rr2.Code; status != http.StatusTooManyRequests {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusTooManyRequests)
	}
	if retryAfter := rr2.Header().Get("Retry-After"); retryAfter != "60" {
		t.Errorf("handler returned wrong Retry-After header: got %v, want '60'", retryAfter)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	setupTest()
	router := setupRoutes()

	req, _ := http.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rid := rr.Header().Get("X-Request-ID"); rid == "" {
		t.Errorf("missing X-Request-ID header")
	}

	// If provided, should echo back
	req2, _ := http.NewRequest("GET", "/", nil)
	req2.Header.Set("X-Request-ID", "abc-123")
	rr2 := httptest.NewRecorder()
	router.ServeHTTP(rr2, req2)
	if rr2.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("expected X-Request-ID=abc-123 got %q", rr2.Header().Get("X-Request-ID"))
	}
}

func TestCORSMiddleware(t *testing.T) {
	setupTest()
	router := setupRoutes()

	req, _ := http.NewRequest("OPTIONS", "/anything", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("OPTIONS preflight status = %d, want 200", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("missing CORS headers: %v", rr.Header())
	}

	// Disabled CORS leaves responses untouched.
	configLock.Lock()
	config.EnableCORS = false
	configLock.Unlock()
	rr2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(rr2, req2)
	if rr2.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("CORS headers set while disabled")
	}
}

func TestEveryRequestEmitsOneTrafficRecord(t *testing.T) {
	setupTest()
	router := setupRoutes()

	paths := []string{"/", "/health", "/ready", "/inspect"}
	for _, p := range paths {
		req, _ := http.NewRequest("GET", p, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	if got := len(capturedRecords()); got != len(paths) {
		t.Errorf("emitted %d records for %d requests", got, len(paths))
	}
}
