package observability

import (
	"strings"
	"unicode"
)

const (
	fieldLimit  = 256
	routeLimit  = 180
	methodLimit = 10
)

// cleanField strips control characters from a request-supplied value and caps
// it at limit runes before it reaches a log line or span attribute.
func cleanField(value string, limit int) string {
	if limit <= 0 {
		limit = fieldLimit
	}
	var b strings.Builder
	n := 0
	for _, r := range value {
		if unicode.IsControl(r) {
			continue
		}
		if n == limit {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// SanitizeRoute cleans a shell path or chi route pattern for logging. An empty
// route is reported as "/".
func SanitizeRoute(route string) string {
	if route == "" {
		return "/"
	}
	return cleanField(route, routeLimit)
}

// SanitizeMethod cleans the HTTP method for logging.
func SanitizeMethod(method string) string {
	return cleanField(method, methodLimit)
}
