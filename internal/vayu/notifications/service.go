package notifications

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the notification does not exist.
var ErrNotFound = errors.New("notifications: not found")

// Service defines access to the alert feed shown in the notification widget.
type Service interface {
	// List returns alerts matching the query, newest first.
	List(ctx context.Context, query Query) (Feed, error)
	// Badge summarises unread counts for the bell badge.
	Badge(ctx context.Context) (BadgeCount, error)
	// MarkRead flags the alert as read.
	MarkRead(ctx context.Context, id string) error
}

// Category identifies the origin of an alert.
type Category string

const (
	CategoryAirQuality Category = "air_quality"
	CategoryForecast   Category = "forecast"
	CategoryHealth     Category = "health"
	CategoryCommunity  Category = "community"
)

// Severity classifies the urgency of an alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Query captures filter arguments for listing alerts.
type Query struct {
	UnreadOnly bool
	Limit      int
}

// Feed is a list response.
type Feed struct {
	Items  []Notification
	Total  int
	Unread int
}

// BadgeCount is surfaced on the bell button.
type BadgeCount struct {
	Unread   int
	Critical int
}

// Notification is a single alert.
type Notification struct {
	ID        string
	Category  Category
	Severity  Severity
	Title     string
	Summary   string
	CreatedAt time.Time
	Read      bool
	// RouteKey optionally links the alert to a shell page.
	RouteKey string
}
