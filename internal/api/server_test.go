// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/spellbook/internal/api"
	"github.com/taibuivan/spellbook/internal/platform/config"
	"github.com/taibuivan/spellbook/internal/platform/middleware"
	"github.com/taibuivan/spellbook/internal/platform/sec"
	"github.com/taibuivan/spellbook/internal/spell"
	"github.com/taibuivan/spellbook/pkg/predicate"
)

// emptyRepository stores nothing and records the last predicate.
type emptyRepository struct {
	where predicate.Predicate
}

func (repository *emptyRepository) List(_ context.Context, where predicate.Predicate, _, _ int) ([]*spell.Spell, int, error) {
	repository.where = where
	return nil, 0, nil
}

func (repository *emptyRepository) FindByIndex(context.Context, string) (*spell.Spell, error) {
	return nil, spell.ErrSpellNotFound
}

func (repository *emptyRepository) Upsert(context.Context, *spell.Spell) error { return nil }

type editorVerifier struct{}

func (editorVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "editor-token" {
		return nil, errors.New("invalid")
	}
	return &sec.AuthClaims{UserID: "u-1", Role: string(sec.RoleEditor)}, nil
}

func newServer(t *testing.T, deps api.HealthDependencies) (*emptyRepository, http.Handler) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := prometheus.NewRegistry()

	repository := &emptyRepository{}
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	server := api.NewServer(t.Context(), &config.Config{ServerPort: "0", Environment: "development"}, logger,
		editorVerifier{}, middleware.NewHTTPMetrics(registry), api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			Spell:     spell.NewHandler(spell.NewService(repository, nil, logger)),
		})

	return repository, server.Handler()
}

/*
TestServer_HealthChecks checks liveness and a degraded readiness check.
*/
func TestServer_HealthChecks(t *testing.T) {
	_, handler := newServer(t, api.HealthDependencies{
		CheckDatabase: func() error { return nil },
		CheckCache:    func() error { return errors.New("connection refused") },
	})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "spellbook-api")

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)

	var envelope struct {
		Data struct {
			Status string `json:"status"`
			Checks []struct {
				Name string `json:"name"`
				OK   bool   `json:"ok"`
			} `json:"checks"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "degraded", envelope.Data.Status)
	require.Len(t, envelope.Data.Checks, 2)
	assert.True(t, envelope.Data.Checks[0].OK)
	assert.False(t, envelope.Data.Checks[1].OK)
}

/*
TestServer_SpellRoutes verifies mounting, search compilation and authentication.
*/
func TestServer_SpellRoutes(t *testing.T) {
	repository, handler := newServer(t, api.HealthDependencies{})

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/spells?levels=3&range_categories=self", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[],"meta":{"page":1,"limit":20,"total":0,"total_pages":0}}`, recorder.Body.String())
	assert.Equal(t, `And[InSet(level,[3]), Or[StartsWith(range,"Self")]]`, repository.where.String())

	body := `{"name":"Shield","level":1,"school":"abjuration","casting_time":"1 reaction","range":"Self","duration":"1 round","components":["V","S"]}`

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/v1/spells", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodPost, "/api/v1/spells", strings.NewReader(body))
	request.Header.Set("Authorization", "Bearer editor-token")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

/*
TestServer_Metrics verifies that served requests show up on /metrics.
*/
func TestServer_Metrics(t *testing.T) {
	_, handler := newServer(t, api.HealthDependencies{})

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/spells/categories", nil))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "spellbook_http_requests_total")
}
