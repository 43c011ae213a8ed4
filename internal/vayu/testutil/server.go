package testutil

import (
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"finitefield.org/vayu-web/internal/vayu/httpserver"
	"finitefield.org/vayu-web/internal/vayu/notifications"
	"finitefield.org/vayu-web/internal/vayu/observability"
	"finitefield.org/vayu-web/internal/vayu/pages"
	"finitefield.org/vayu-web/internal/vayu/state"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithBasePath sets a custom base path for the shell routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.BasePath = path
	}
}

// WithStore wires a specific mount store, e.g. one with a fake clock.
func WithStore(store *state.Store) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Store = store
	}
}

// WithPages overrides the page content provider.
func WithPages(provider pages.Provider) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Pages = provider
	}
}

// WithNotificationService overrides the alert feed.
func WithNotificationService(service notifications.Service) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.NotificationService = service
	}
}

// WithMetrics exposes /metrics backed by m.
func WithMetrics(m *observability.ShellMetrics) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Metrics = m
	}
}

// WithLogger routes server logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// NewServer constructs an httptest server running the shell HTTP stack with sensible defaults.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:             ":0",
		BasePath:            "/",
		CSRFCookieName:      "vayu_csrf",
		CSRFHeaderName:      "X-CSRF-Token",
		Tokens:              state.NewTokenCodec([]byte("test-mount-token-key-0123456789abcdef")),
		NotificationService: notifications.NewStaticService(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := httpserver.New(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}
