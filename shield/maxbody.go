// CLAUDE:SUMMARY Request body size caps: a general limiter plus an upload-sized variant.
package shield

import "net/http"

// MaxBody returns middleware that caps the request body at maxBytes for
// every request. Reads past the cap fail and net/http replies 413.
func MaxBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// MaxFormBody returns middleware that caps the body of form-encoded POST
// requests only. Other content types (document uploads) pass through and
// should be capped per-route with MaxBody.
func MaxFormBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Content-Type") == "application/x-www-form-urlencoded" {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
