package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllow_EnforcesWindowLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("ip1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if l.Allow("ip1") {
		t.Error("fourth request in window should be denied")
	}
	if !l.Allow("ip2") {
		t.Error("separate key must have its own window")
	}
}

func TestMiddleware_Answers429(t *testing.T) {
	l := New(1, time.Minute)
	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("first request: got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request: expected 429, got %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.1:5000"
	if ip := ClientIP(r); ip != "192.0.2.1" {
		t.Errorf("RemoteAddr: got %q", ip)
	}

	r.Header.Set("X-Real-IP", "198.51.100.2")
	if ip := ClientIP(r); ip != "198.51.100.2" {
		t.Errorf("X-Real-IP: got %q", ip)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.3, 198.51.100.2")
	if ip := ClientIP(r); ip != "203.0.113.3" {
		t.Errorf("X-Forwarded-For: got %q", ip)
	}
}
