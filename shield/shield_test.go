package shield

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hazyhaar/quizforge/dbopen"
	_ "modernc.org/sqlite"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(DefaultHeaders())(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("CSP header missing")
	}
}

func TestHeadToGet(t *testing.T) {
	var sawMethod string
	h := HeadToGet(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawMethod = r.Method
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("HEAD", "/", nil))
	if sawMethod != http.MethodGet {
		t.Fatalf("method = %s, want GET", sawMethod)
	}
}

func TestTraceIDHeaderAndContext(t *testing.T) {
	var ctxLoggerSet bool
	h := TraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLoggerSet = GetLogger(r.Context()) != nil
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/quizzes", nil))

	if rec.Header().Get("X-Trace-ID") == "" {
		t.Error("X-Trace-ID header missing")
	}
	if !ctxLoggerSet {
		t.Error("per-request logger missing from context")
	}
}

func TestMaxBody(t *testing.T) {
	h := MaxBody(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 100)))
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(`
		CREATE TABLE rate_limits (
			endpoint TEXT PRIMARY KEY,
			max_requests INTEGER NOT NULL DEFAULT 60,
			window_seconds INTEGER NOT NULL DEFAULT 60,
			enabled INTEGER NOT NULL DEFAULT 1
		);
		INSERT INTO rate_limits VALUES ('POST /api/quizzes', 2, 60, 1);
	`))

	rl := NewRateLimiter(db)
	h := rl.Middleware(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/quizzes", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/quizzes", nil)
	req.RemoteAddr = "10.1.1.1:5000"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	// A different IP is unaffected.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/api/quizzes", nil)
	req.RemoteAddr = "10.2.2.2:5000"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("other IP: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiterConcurrentSameKey(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(`
		CREATE TABLE rate_limits (
			endpoint TEXT PRIMARY KEY,
			max_requests INTEGER NOT NULL DEFAULT 60,
			window_seconds INTEGER NOT NULL DEFAULT 60,
			enabled INTEGER NOT NULL DEFAULT 1
		);
		INSERT INTO rate_limits VALUES ('POST /api/quizzes', 10, 60, 1);
	`))

	rl := NewRateLimiter(db)

	// Hammer one ip+endpoint bucket from many goroutines; the counter must
	// stay exact so exactly max_requests calls are allowed.
	const workers = 50
	var wg sync.WaitGroup
	var allowed int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.allow("10.1.1.1", "POST /api/quizzes") {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	if allowed != 10 {
		t.Errorf("allowed = %d, want 10", allowed)
	}
}

func TestRateLimiterUnknownEndpointAllows(t *testing.T) {
	db := dbopen.OpenMemory(t, dbopen.WithSchema(`
		CREATE TABLE rate_limits (
			endpoint TEXT PRIMARY KEY,
			max_requests INTEGER NOT NULL DEFAULT 60,
			window_seconds INTEGER NOT NULL DEFAULT 60,
			enabled INTEGER NOT NULL DEFAULT 1
		);
	`))

	rl := NewRateLimiter(db)
	h := rl.Middleware(okHandler())
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/quizzes/quiz_x", nil)
		req.RemoteAddr = "10.1.1.1:5000"
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
		}
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		remote, xff, want string
	}{
		{"10.0.0.1:1234", "", "10.0.0.1"},
		{"10.0.0.1:1234", "203.0.113.7", "203.0.113.7"},
		{"10.0.0.1:1234", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = tt.remote
		if tt.xff != "" {
			req.Header.Set("X-Forwarded-For", tt.xff)
		}
		if got := ExtractIP(req); got != tt.want {
			t.Errorf("ExtractIP(%q, xff=%q) = %q, want %q", tt.remote, tt.xff, got, tt.want)
		}
	}
}
