package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	limited := RateLimit(rate.Limit(0.001), 3, time.Minute)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		if code := send("10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := send("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("over-burst status = %d, want 429", code)
	}

	// Another client has its own bucket.
	if code := send("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("second client status = %d, want 200", code)
	}

	// The same host on a different source port shares the bucket.
	if code := send("10.0.0.1:9999"); code != http.StatusTooManyRequests {
		t.Errorf("same host, new port status = %d, want 429", code)
	}
}

func TestRateLimitInstancesIndependent(t *testing.T) {
	// Middleware must be reusable across handlers without sharing state with
	// other instances.
	a := RateLimit(rate.Limit(0.001), 1, time.Minute)
	b := RateLimit(rate.Limit(0.001), 1, time.Minute)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	ha, hb := a(ok), b(ok)

	req := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.3:1"
		return r
	}

	rec := httptest.NewRecorder()
	ha.ServeHTTP(rec, req())
	if rec.Code != http.StatusOK {
		t.Fatalf("first limiter: %d", rec.Code)
	}

	// Exhausted in a, untouched in b.
	rec = httptest.NewRecorder()
	ha.ServeHTTP(rec, req())
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("first limiter second hit: %d, want 429", rec.Code)
	}
	rec = httptest.NewRecorder()
	hb.ServeHTTP(rec, req())
	if rec.Code != http.StatusOK {
		t.Errorf("second limiter: %d, want 200", rec.Code)
	}
}
