package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/ledger/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"

		ip := httpx.IPKeyExtractor(req)
		require.Equal(t, "192.168.1.1", ip)
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")

		ip := httpx.IPKeyExtractor(req)
		require.Equal(t, "203.0.113.1", ip)
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")

		ip := httpx.IPKeyExtractor(req)
		require.Equal(t, "203.0.113.2", ip)
	})
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.168.1.1:12345"
	return req
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	extractor := httpx.JSONFieldKeyExtractor("email")

	t.Run("extracts field and restores body", func(t *testing.T) {
		req := jsonRequest(`{"email":" Alice@Example.com ","password":"x"}`)

		require.Equal(t, "alice@example.com", extractor(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"email":" Alice@Example.com ","password":"x"}`, string(rest))
	})

	t.Run("returns empty for missing field", func(t *testing.T) {
		require.Equal(t, "", extractor(jsonRequest(`{"password":"x"}`)))
	})

	t.Run("returns empty for non-string field", func(t *testing.T) {
		require.Equal(t, "", extractor(jsonRequest(`{"email":42}`)))
	})

	t.Run("returns empty for invalid JSON", func(t *testing.T) {
		req := jsonRequest(`not json`)
		require.Equal(t, "", extractor(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, "not json", string(rest))
	})

	t.Run("oversized body reaches the handler intact", func(t *testing.T) {
		body := `{"email":"alice@example.com","note":"` + strings.Repeat("n", 100<<10) + `"}`
		req := jsonRequest(body)

		require.Equal(t, "", extractor(req), "only a prefix is inspected")

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, body, string(rest))
		require.NoError(t, req.Body.Close())
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	t.Run("combines multiple extractors", func(t *testing.T) {
		req := jsonRequest(`{"email":"alice@example.com"}`)

		extractor := httpx.CompositeKeyExtractor(":",
			httpx.IPKeyExtractor,
			httpx.JSONFieldKeyExtractor("email"),
		)

		key := extractor(req)
		require.Equal(t, "192.168.1.1:alice@example.com", key)
	})

	t.Run("skips empty values", func(t *testing.T) {
		req := jsonRequest(`{}`)

		extractor := httpx.CompositeKeyExtractor(":",
			httpx.IPKeyExtractor,
			httpx.JSONFieldKeyExtractor("email"),
		)

		key := extractor(req)
		require.Equal(t, "192.168.1.1", key)
	})

	t.Run("uses authenticated user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req = req.WithContext(httpx.ContextWithUserID(req.Context(), "user-1"))

		extractor := httpx.CompositeKeyExtractor(":",
			httpx.UserIDKeyExtractor,
			httpx.IPKeyExtractor,
		)
		require.Equal(t, "user-1:192.168.1.1", extractor(req))
	})
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// perMinute is a profile whose whole budget is available as a burst.
func perMinute(n int) httpx.RateLimitConfig {
	return httpx.RateLimitConfig{RequestsPerWindow: n, Window: time.Minute, Burst: n}
}

func expenseRequest(ip, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	req.RemoteAddr = ip + ":40000"
	if userID != "" {
		req = req.WithContext(httpx.ContextWithUserID(req.Context(), userID))
	}
	return req
}

func loginRequest(ip, email string) *http.Request {
	req := jsonRequest(`{"email":"` + email + `","password":"Secret123!"}`)
	req.RemoteAddr = ip + ":40000"
	return req
}

func serve(h http.Handler, req *http.Request) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("budget then 429", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(perMinute(3), httpx.IPKeyExtractor)(okHandler)

		for range 3 {
			require.Equal(t, http.StatusOK, serve(h, expenseRequest("10.0.0.1", "")))
		}
		require.Equal(t, http.StatusTooManyRequests, serve(h, expenseRequest("10.0.0.1", "")))
	})

	t.Run("burst below the window rate", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Second, Burst: 4}
		h := httpx.RateLimitMiddleware(cfg, httpx.IPKeyExtractor)(okHandler)

		for range 4 {
			require.Equal(t, http.StatusOK, serve(h, expenseRequest("10.0.0.1", "")))
		}
		require.Equal(t, http.StatusTooManyRequests, serve(h, expenseRequest("10.0.0.1", "")))
	})

	t.Run("unkeyed requests pass", func(t *testing.T) {
		noKey := func(*http.Request) string { return "" }
		h := httpx.RateLimitMiddleware(perMinute(1), noKey)(okHandler)

		for range 3 {
			require.Equal(t, http.StatusOK, serve(h, expenseRequest("10.0.0.1", "")))
		}
	})
}

func TestRateLimitByUser(t *testing.T) {
	h := httpx.RateLimitByUser(perMinute(2))(okHandler)

	for range 2 {
		require.Equal(t, http.StatusOK, serve(h, expenseRequest("10.0.0.1", "alice")))
	}
	require.Equal(t, http.StatusTooManyRequests, serve(h, expenseRequest("10.0.0.1", "alice")))

	// Another account behind the same address has its own budget
	require.Equal(t, http.StatusOK, serve(h, expenseRequest("10.0.0.1", "bob")))
}

func TestRateLimitByIP(t *testing.T) {
	h := httpx.RateLimitByIP(perMinute(2))(okHandler)

	for range 2 {
		require.Equal(t, http.StatusOK, serve(h, loginRequest("10.0.0.1", "alice@example.com")))
	}
	require.Equal(t, http.StatusTooManyRequests, serve(h, loginRequest("10.0.0.1", "bob@example.com")))
	require.Equal(t, http.StatusOK, serve(h, loginRequest("10.0.0.2", "alice@example.com")))
}

func TestRateLimitByIPAndJSONField(t *testing.T) {
	h := httpx.RateLimitByIPAndJSONField(perMinute(2), "email")(okHandler)

	for range 2 {
		require.Equal(t, http.StatusOK, serve(h, loginRequest("10.0.0.1", "alice@example.com")))
	}
	require.Equal(t, http.StatusTooManyRequests, serve(h, loginRequest("10.0.0.1", "alice@example.com")))

	// Emails are keyed case-insensitively
	require.Equal(t, http.StatusTooManyRequests, serve(h, loginRequest("10.0.0.1", "ALICE@example.com")))

	require.Equal(t, http.StatusOK, serve(h, loginRequest("10.0.0.1", "bob@example.com")))
}

func TestRateLimitHeaders(t *testing.T) {
	h := httpx.RateLimitByIPAndJSONField(perMinute(1), "email")(okHandler)

	require.Equal(t, http.StatusOK, serve(h, loginRequest("10.0.0.1", "alice@example.com")))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, loginRequest("10.0.0.1", "alice@example.com"))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
	require.JSONEq(t, `{"error":"rate_limit_exceeded","error_description":"Too many requests. Please try again later."}`, rec.Body.String())
}

func TestParseRateLimitFromEnv(t *testing.T) {
	defaults := httpx.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		Burst:             10,
	}

	tests := []struct {
		name string
		env  map[string]string
		want httpx.RateLimitConfig
	}{
		{
			name: "no overrides",
			want: defaults,
		},
		{
			name: "requests only",
			env:  map[string]string{"RATELIMIT_TEST_REQUESTS": "50"},
			want: httpx.RateLimitConfig{RequestsPerWindow: 50, Window: time.Minute, Burst: 10},
		},
		{
			name: "window only",
			env:  map[string]string{"RATELIMIT_TEST_WINDOW_SEC": "120"},
			want: httpx.RateLimitConfig{RequestsPerWindow: 10, Window: 2 * time.Minute, Burst: 10},
		},
		{
			name: "all fields",
			env: map[string]string{
				"RATELIMIT_TEST_REQUESTS":   "200",
				"RATELIMIT_TEST_WINDOW_SEC": "30",
				"RATELIMIT_TEST_BURST":      "250",
			},
			want: httpx.RateLimitConfig{RequestsPerWindow: 200, Window: 30 * time.Second, Burst: 250},
		},
		{
			name: "malformed values keep defaults",
			env: map[string]string{
				"RATELIMIT_TEST_REQUESTS":   "invalid",
				"RATELIMIT_TEST_WINDOW_SEC": "-10",
				"RATELIMIT_TEST_BURST":      "0",
			},
			want: defaults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"RATELIMIT_TEST_REQUESTS", "RATELIMIT_TEST_WINDOW_SEC", "RATELIMIT_TEST_BURST"} {
				t.Setenv(key, tt.env[key])
			}
			require.Equal(t, tt.want, httpx.ParseRateLimitFromEnv("TEST", defaults))
		})
	}
}
