package middleware

import (
	"context"
	"net/http"

	"finitefield.org/vayu-web/internal/vayu/navigation"
)

type locationKey struct{}

// RequestInfo is the location the shell renders for: the request path and the
// base path every shell route hangs off.
type RequestInfo struct {
	Path     string
	BasePath string
}

// RequestInfoMiddleware records the shell location for templates and handlers.
func RequestInfoMiddleware(basePath string) func(http.Handler) http.Handler {
	base := navigation.NormalizeBasePath(basePath)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), locationKey{}, RequestInfo{Path: r.URL.Path, BasePath: base})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestInfo(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(locationKey{}).(RequestInfo)
	return info, ok
}

// RequestPathFromContext returns the path the shell is rendering, or "".
func RequestPathFromContext(ctx context.Context) string {
	info, _ := requestInfo(ctx)
	return info.Path
}

// BasePathFromContext returns the shell base path, "/" outside the shell routes.
func BasePathFromContext(ctx context.Context) string {
	if info, ok := requestInfo(ctx); ok && info.BasePath != "" {
		return info.BasePath
	}
	return "/"
}
