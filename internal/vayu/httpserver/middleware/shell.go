package middleware

import (
	"context"
	"net/http"
	"strings"
)

const (
	// MountHeader carries the signed mount token on htmx requests.
	MountHeader = "X-Shell-Mount"
	// DismissHeader marks navigations started from the mobile drawer.
	DismissHeader = "X-Shell-Dismiss"
)

const shellContextKey contextKey = "shell.request"

// ShellRequest describes the shell instance a request belongs to.
type ShellRequest struct {
	MountToken string
	Dismiss    bool
}

// Shell extracts the mount token and drawer dismissal flag from request headers.
func Shell() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := ShellRequest{
				MountToken: strings.TrimSpace(r.Header.Get(MountHeader)),
				Dismiss:    strings.EqualFold(r.Header.Get(DismissHeader), "true"),
			}
			ctx := context.WithValue(r.Context(), shellContextKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ShellRequestFromContext returns the shell metadata; zero value when absent.
func ShellRequestFromContext(ctx context.Context) ShellRequest {
	info, _ := ctx.Value(shellContextKey).(ShellRequest)
	return info
}
