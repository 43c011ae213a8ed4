package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	custommw "finitefield.org/vayu-web/internal/vayu/httpserver/middleware"
	"finitefield.org/vayu-web/internal/vayu/httpserver/ui"
	"finitefield.org/vayu-web/internal/vayu/navigation"
	"finitefield.org/vayu-web/internal/vayu/notifications"
	"finitefield.org/vayu-web/internal/vayu/observability"
	"finitefield.org/vayu-web/internal/vayu/pages"
	"finitefield.org/vayu-web/internal/vayu/state"
	"finitefield.org/vayu-web/public"
)

// Config holds runtime options for the shell HTTP server.
type Config struct {
	Address        string
	BasePath       string
	AppName        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration

	CSRFCookieName   string
	CSRFCookiePath   string
	CSRFCookieSecure bool
	CSRFHeaderName   string

	Logger  *zap.Logger
	Metrics *observability.ShellMetrics

	Store               *state.Store
	Tokens              *state.TokenCodec
	Pages               pages.Provider
	NotificationService notifications.Service
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.TraceMiddleware())
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware(logger))
	router.Use(chimw.Timeout(durationOr(cfg.RequestTimeout, 60*time.Second)))

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("embed static: %w", err)
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static", custommw.AssetsWithCache(staticContent)))
	router.Get("/healthz", healthz)
	if cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics.Handler())
	}

	basePath := navigation.NormalizeBasePath(cfg.BasePath)

	handlers, err := ui.NewHandlers(ui.Dependencies{
		Store:         cfg.Store,
		Tokens:        cfg.Tokens,
		Pages:         cfg.Pages,
		Notifications: cfg.NotificationService,
		CSRFHeader:    custommw.CSRFHeaderName(custommw.CSRFConfig{HeaderName: cfg.CSRFHeaderName}),
		AppName:       cfg.AppName,
	})
	if err != nil {
		return nil, fmt.Errorf("ui handlers: %w", err)
	}

	mountShellRoutes(router, basePath, handlers, routeOptions{
		CSRF: custommw.CSRFConfig{
			CookieName: cfg.CSRFCookieName,
			CookiePath: firstNonEmpty(cfg.CSRFCookiePath, basePath),
			HeaderName: cfg.CSRFHeaderName,
			Secure:     cfg.CSRFCookieSecure,
		},
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

type routeOptions struct {
	CSRF custommw.CSRFConfig
}

func mountShellRoutes(router chi.Router, base string, h *ui.Handlers, opts routeOptions) {
	router.Group(func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.Shell())
		r.Use(custommw.NoStore())
		r.Use(custommw.CSRF(opts.CSRF))
		r.Use(custommw.RequestInfoMiddleware(base))

		if base != "/" {
			r.Get(base, h.Page)
		}
		r.Get(joinBase(base, "/"), h.Page)
		r.Get(joinBase(base, "/{page}"), h.Page)

		r.Post(joinBase(base, "/shell/sidebar/open"), h.SidebarOpen)
		r.Post(joinBase(base, "/shell/sidebar/close"), h.SidebarClose)
		r.Post(joinBase(base, "/shell/theme"), h.ThemeToggle)

		RegisterFragment(r, joinBase(base, "/notifications/panel"), h.NotificationsPanel)
		r.Post(joinBase(base, "/notifications/{notificationID}/read"), h.NotificationRead)
	})
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func joinBase(base, suffix string) string {
	if base == "/" {
		return suffix
	}
	if suffix == "/" {
		return base + "/"
	}
	return base + suffix
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
