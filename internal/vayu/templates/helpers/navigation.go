package helpers

import (
	"context"

	"finitefield.org/vayu-web/internal/vayu/httpserver/middleware"
	"finitefield.org/vayu-web/internal/vayu/navigation"
)

// RequestPath returns the current request URL path for template helpers.
func RequestPath(ctx context.Context) string {
	return middleware.RequestPathFromContext(ctx)
}

// BasePath returns the configured shell base path.
func BasePath(ctx context.Context) string {
	return middleware.BasePathFromContext(ctx)
}

// Resolver builds the route resolver for the request's base path.
func Resolver(ctx context.Context) navigation.Resolver {
	return navigation.NewResolver(BasePath(ctx))
}

// URL joins the base path with an application path such as "/shell/theme".
func URL(ctx context.Context, path string) string {
	base := BasePath(ctx)
	if base == "/" {
		return path
	}
	return base + path
}
