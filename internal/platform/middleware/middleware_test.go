// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/taibuivan/spellbook/internal/platform/constants"
	"github.com/taibuivan/spellbook/internal/platform/ctxutil"
	"github.com/taibuivan/spellbook/internal/platform/middleware"
	"github.com/taibuivan/spellbook/internal/platform/sec"
)

// stubVerifier accepts a single hard-coded token.
type stubVerifier struct {
	claims *sec.AuthClaims
}

func (verifier stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good-token" {
		return nil, errors.New("bad token")
	}
	return verifier.claims, nil
}

// okHandler answers 200 and echoes the authenticated role, if any.
var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
	if claims := ctxutil.GetAuthUser(request.Context()); claims != nil {
		writer.Header().Set("X-Role", claims.Role)
	}
	writer.WriteHeader(http.StatusOK)
})

/*
TestAuthenticate_And_RequireRole walks the anonymous, malformed, forbidden and allowed paths.
*/
func TestAuthenticate_And_RequireRole(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		header string
		status int
	}{
		{"anonymous", "admin", "", http.StatusUnauthorized},
		{"malformed_header", "admin", "Token good-token", http.StatusUnauthorized},
		{"invalid_token", "admin", "Bearer nope", http.StatusUnauthorized},
		{"insufficient_role", "member", "Bearer good-token", http.StatusForbidden},
		{"editor_allowed", "editor", "Bearer good-token", http.StatusOK},
		{"admin_allowed", "admin", "Bearer good-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := stubVerifier{claims: &sec.AuthClaims{UserID: "u-1", Role: tt.role}}
			handler := middleware.Authenticate(verifier)(middleware.RequireRole(sec.RoleEditor)(okHandler))

			request := httptest.NewRequest(http.MethodPost, "/api/v1/spells", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestRequestID verifies that a request ID is generated or propagated.
*/
func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-supplied")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-supplied", recorder.Header().Get(constants.HeaderXRequestID))
}

// corsConfig is a fixed production configuration for the CORS tests.
type corsConfig struct{}

func (corsConfig) IsDevelopment() bool { return false }

func (corsConfig) AllowsOrigin(origin string) bool { return origin == "https://app.spellbook.app" }

/*
TestCORS checks allowed and rejected origins and the pre-flight short circuit.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{})(okHandler)

	allowed := httptest.NewRequest(http.MethodOptions, "/api/v1/spells", nil)
	allowed.Header.Set(constants.HeaderOrigin, "https://app.spellbook.app")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, allowed)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://app.spellbook.app", recorder.Header().Get("Access-Control-Allow-Origin"))

	rejected := httptest.NewRequest(http.MethodGet, "/api/v1/spells", nil)
	rejected.Header.Set(constants.HeaderOrigin, "https://evil.example.com")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, rejected)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestHTTPMetrics verifies that requests are counted by route pattern.
*/
func TestHTTPMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := middleware.NewHTTPMetrics(registry)

	router := chi.NewRouter()
	router.Use(metrics.Middleware)
	router.Get("/spells/{index}", okHandler)

	for _, index := range []string{"fireball", "shield"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/spells/"+index, nil))
	}

	families, err := registry.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != "spellbook_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" {
					assert.Equal(t, "/spells/{index}", label.GetValue())
				}
			}
			total += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), total)
}

/*
TestRateLimit verifies that a client over its burst receives 429 with Retry-After.
*/
func TestRateLimit(t *testing.T) {
	handler := middleware.RateLimitWith(t.Context(), rate.Limit(1), 2)(okHandler)

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/spells", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1").Code)

	limited := send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.Contains(t, limited.Body.String(), `"code":"RATE_LIMITED"`)

	// Buckets are per IP.
	assert.Equal(t, http.StatusOK, send("10.0.0.2").Code)
}

/*
TestPanicRecovery turns a handler panic into the internal error envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(slog.New(slog.NewTextHandler(io.Discard, nil)))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
	)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred","code":"INTERNAL_ERROR"}`, recorder.Body.String())
}

/*
TestRealIP checks header precedence.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.7:4312"
	assert.Equal(t, "192.0.2.7", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.4")
	assert.Equal(t, "198.51.100.4", middleware.RealIP(request))
}
