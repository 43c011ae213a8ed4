package navigation

import (
	"strings"
)

// Resolver maps a symbolic route key to a concrete URL path.
type Resolver interface {
	Resolve(routeKey string) string
}

// ResolverFunc adapts ordinary functions to Resolver.
type ResolverFunc func(routeKey string) string

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(routeKey string) string {
	return f(routeKey)
}

// PageURL converts a route key into its page path: lower-cased, spaces turned
// into hyphens, rooted at "/".
func PageURL(routeKey string) string {
	return "/" + strings.ReplaceAll(strings.ToLower(routeKey), " ", "-")
}

// DefaultResolver resolves route keys relative to "/".
func DefaultResolver() Resolver {
	return ResolverFunc(PageURL)
}

// NewResolver returns a resolver that prefixes PageURL with the base path.
func NewResolver(basePath string) Resolver {
	base := NormalizeBasePath(basePath)
	if base == "/" {
		return DefaultResolver()
	}
	return ResolverFunc(func(routeKey string) string {
		return base + PageURL(routeKey)
	})
}

// Location is the read-only view of where the shell is currently mounted.
type Location struct {
	Path      string
	RouteName string
}

// RouteKeyForPath finds the route key whose resolved URL equals path. The
// shell root (the bare base path) maps to DefaultRouteKey.
func RouteKeyForPath(resolver Resolver, basePath, path string) (string, bool) {
	if resolver == nil {
		resolver = DefaultResolver()
	}
	base := NormalizeBasePath(basePath)
	trimmed := path
	if len(trimmed) > 1 {
		trimmed = strings.TrimRight(trimmed, "/")
	}
	if trimmed == base || trimmed == "" {
		return DefaultRouteKey, true
	}
	for _, key := range RouteKeys() {
		if resolver.Resolve(key) == trimmed {
			return key, true
		}
	}
	return "", false
}

// NormalizeBasePath returns a rooted base path without a trailing slash.
func NormalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			return "/"
		}
	}
	return p
}
