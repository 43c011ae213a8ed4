package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"time"
)

const (
	defaultCSRFCookie = "vayu_csrf"
	defaultCSRFHeader = "X-CSRF-Token"
	defaultCSRFMaxAge = 24 * time.Hour
	csrfTokenBytes    = 32
)

type csrfKey struct{}

// CSRFConfig controls the double-submit cookie guarding shell events.
type CSRFConfig struct {
	CookieName string
	CookiePath string
	HeaderName string
	MaxAge     time.Duration
	Secure     bool
}

func (c CSRFConfig) withDefaults() CSRFConfig {
	if c.CookieName == "" {
		c.CookieName = defaultCSRFCookie
	}
	if c.CookiePath == "" {
		c.CookiePath = "/"
	}
	c.HeaderName = CSRFHeaderName(c)
	if c.MaxAge <= 0 {
		c.MaxAge = defaultCSRFMaxAge
	}
	return c
}

// CSRF issues a token cookie on page loads and rejects shell events (any
// unsafe method) whose header does not echo it. The shell root publishes the
// token through hx-headers so every htmx request carries it.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := cfg.token(w, r)
			if err != nil {
				http.Error(w, "csrf token error", http.StatusInternalServerError)
				return
			}
			if mutates(r.Method) && !tokensMatch(r.Header.Get(cfg.HeaderName), token) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), csrfKey{}, token)))
		})
	}
}

// CSRFHeaderName returns the header shell events must carry.
func CSRFHeaderName(cfg CSRFConfig) string {
	if cfg.HeaderName == "" {
		return defaultCSRFHeader
	}
	return cfg.HeaderName
}

// CSRFTokenFromContext returns the token the shell should publish.
func CSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey{}).(string)
	return token
}

// token reuses the cookie value or mints and sets a new one.
func (c CSRFConfig) token(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(c.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	raw := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)
	http.SetCookie(w, &http.Cookie{
		Name:     c.CookieName,
		Value:    token,
		Path:     c.CookiePath,
		HttpOnly: true,
		Secure:   c.Secure || r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(c.MaxAge.Seconds()),
	})
	return token, nil
}

func tokensMatch(submitted, token string) bool {
	return submitted != "" && subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) == 1
}

func mutates(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return false
	}
	return true
}
