package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/platform/sqlstore"
	"github.com/phrazzld/taskboard/internal/testdb"
	"github.com/stretchr/testify/require"
)

// testConfig returns a configuration equivalent to the defaults with a
// rate limit high enough not to interfere.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			CORSAllowedOrigins:     []string{"*"},
			RateLimitRPS:           1000,
			RateLimitBurst:         1000,
			ShutdownTimeoutSeconds: 5,
		},
		Database: config.DatabaseConfig{
			Driver:       string(sqlstore.DialectSQLite),
			URL:          "file::memory:",
			MaxOpenConns: 1,
			AutoMigrate:  true,
		},
		Board: config.BoardConfig{
			Timezone:    "UTC",
			DueSoonDays: 1,
		},
	}
}

// newTestApplication wires the application against a migrated in-memory
// SQLite database.
func newTestApplication(t *testing.T, cfg *config.Config) (*application, *logger.TestLogBuffer) {
	t.Helper()

	db := testdb.NewSQLite(t)
	log, buf := logger.NewTestLogger()

	app, err := newApplication(cfg, log, db, sqlstore.DialectSQLite)
	require.NoError(t, err)
	return app, buf
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&v), w.Body.String())
	return v
}

func newPreflight(path, method string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, path, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", method)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	return req
}

func recordRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
