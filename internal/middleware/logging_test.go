package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestResponseWriter_WriteHeader(t *testing.T) {
	t.Run("captures status code", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		rw := &responseWriter{
			ResponseWriter: recorder,
			statusCode:     http.StatusOK,
		}

		rw.WriteHeader(http.StatusNotFound)

		if rw.statusCode != http.StatusNotFound {
			t.Errorf("statusCode = %d, want %d", rw.statusCode, http.StatusNotFound)
		}
		if !rw.wroteHeader {
			t.Error("wroteHeader should be true after WriteHeader")
		}
	})

	t.Run("only writes header once", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		rw := &responseWriter{
			ResponseWriter: recorder,
			statusCode:     http.StatusOK,
		}

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusInternalServerError) // Should be ignored

		if rw.statusCode != http.StatusNotFound {
			t.Errorf("statusCode = %d, want %d (second WriteHeader should be ignored)", rw.statusCode, http.StatusNotFound)
		}
	})
}

func TestResponseWriter_Write(t *testing.T) {
	t.Run("counts bytes written", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		rw := &responseWriter{
			ResponseWriter: recorder,
			statusCode:     http.StatusOK,
		}

		n, err := rw.Write([]byte("hello"))
		if err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		if n != 5 {
			t.Errorf("Write() returned %d, want 5", n)
		}
		if rw.bytesWritten != 5 {
			t.Errorf("bytesWritten = %d, want 5", rw.bytesWritten)
		}
	})

	t.Run("accumulates bytes from multiple writes", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		rw := &responseWriter{
			ResponseWriter: recorder,
			statusCode:     http.StatusOK,
		}

		rw.Write([]byte("hello"))
		rw.Write([]byte(" world"))

		if rw.bytesWritten != 11 {
			t.Errorf("bytesWritten = %d, want 11", rw.bytesWritten)
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	t.Run("logs request details", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		wrapped := LoggingMiddleware(logger)(handler)

		req := httptest.NewRequest(http.MethodGet, "/test?q=1", nil)
		req.Header.Set("User-Agent", "test-agent")
		recorder := httptest.NewRecorder()

		wrapped.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Errorf("status code = %d, want %d", recorder.Code, http.StatusOK)
		}

		logOutput := buf.String()
		expectedFields := []string{
			`"method":"GET"`,
			`"path":"/test"`,
			`"query":"q=1"`,
			`"status":200`,
			`"user_agent":"test-agent"`,
			`"bytes_written":2`,
		}

		for _, field := range expectedFields {
			if !bytes.Contains([]byte(logOutput), []byte(field)) {
				t.Errorf("log output missing %s, got: %s", field, logOutput)
			}
		}
	})

	t.Run("log level follows status class", func(t *testing.T) {
		tests := []struct {
			name      string
			status    int
			wantLevel string
		}{
			{"2xx logs info", http.StatusOK, `"level":"info"`},
			{"4xx logs warn", http.StatusNotFound, `"level":"warn"`},
			{"5xx logs error", http.StatusInternalServerError, `"level":"error"`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var buf bytes.Buffer
				logger := zerolog.New(&buf)

				handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				})
				wrapped := LoggingMiddleware(logger)(handler)

				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				recorder := httptest.NewRecorder()
				wrapped.ServeHTTP(recorder, req)

				if !bytes.Contains(buf.Bytes(), []byte(tt.wantLevel)) {
					t.Errorf("log should contain %s, got: %s", tt.wantLevel, buf.String())
				}
			})
		}
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		wrapped := LoggingMiddleware(logger)(handler)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "abc-123-xyz")
		recorder := httptest.NewRecorder()

		wrapped.ServeHTTP(recorder, req)

		if !bytes.Contains(buf.Bytes(), []byte(`"request_id":"abc-123-xyz"`)) {
			t.Errorf("log should contain request_id, got: %s", buf.String())
		}
		if got := recorder.Header().Get("X-Request-ID"); got != "abc-123-xyz" {
			t.Errorf("X-Request-ID = %q, want caller's id echoed", got)
		}
	})

	t.Run("generates request id when absent", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		wrapped := LoggingMiddleware(logger)(handler)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		recorder := httptest.NewRecorder()

		wrapped.ServeHTTP(recorder, req)

		if recorder.Header().Get("X-Request-ID") == "" {
			t.Error("X-Request-ID should be generated when the caller sends none")
		}
	})
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	if !rl.Allow("1.2.3.4") {
		t.Error("first request should be allowed")
	}
	if !rl.Allow("1.2.3.4") {
		t.Error("second request should be allowed")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request should be rejected")
	}
	if !rl.Allow("5.6.7.8") {
		t.Error("other IPs should not share the bucket")
	}
}
