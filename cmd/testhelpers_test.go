package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sells-group/prospect-cli/internal/config"
)

// testConfig returns a config with a temp SQLite store, no API keys and a
// search endpoint that returns no results.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body></body></html>`))
	}))
	t.Cleanup(srv.Close)

	return &config.Config{
		Store: config.StoreConfig{
			Driver:      "sqlite",
			DatabaseURL: filepath.Join(t.TempDir(), "prospect.db"),
		},
		Apollo:  config.ApolloConfig{BaseURL: "http://127.0.0.1:0", TimeoutSecs: 1, RateLimit: 2},
		Pappers: config.PappersConfig{BaseURL: "http://127.0.0.1:0", TimeoutSecs: 1},
		Search: config.SearchConfig{
			Provider:    "duckduckgo",
			BaseURL:     srv.URL,
			Region:      "fr-fr",
			MaxResults:  5,
			TimeoutSecs: 2,
		},
		Enrich:     config.EnrichConfig{CacheTimeoutSecs: 2},
		Resilience: config.ResilienceConfig{MaxAttempts: 1, FailureThreshold: 5, ResetTimeoutSecs: 30},
		Batch:      config.BatchConfig{MaxConcurrent: 2},
		Server:     config.ServerConfig{Port: 8080},
		Log:        config.LogConfig{Level: "error", Format: "json"},
	}
}
