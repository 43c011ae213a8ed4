package notifications

import (
	"fmt"
	"net/url"
	"time"

	"finitefield.org/vayu-web/internal/vayu/navigation"
	vayunotifications "finitefield.org/vayu-web/internal/vayu/notifications"
	"finitefield.org/vayu-web/internal/vayu/templates/helpers"
)

// PanelData is the payload for the notification widget fragment.
type PanelData struct {
	Badge    BadgeData
	Items    []ItemView
	Total    int
	Expanded bool
	Error    string
}

// BadgeData drives the bell badge.
type BadgeData struct {
	Unread   int
	Critical int
	Display  string
}

// ItemView is a single alert row.
type ItemView struct {
	ID            string
	Title         string
	Summary       string
	CategoryLabel string
	SeverityLabel string
	SeverityClass string
	When          string
	Unread        bool
	Href          string
	ReadEndpoint  string
}

// PanelPayload prepares the widget payload from the alert feed.
func PanelPayload(basePath string, resolver navigation.Resolver, feed vayunotifications.Feed, badge vayunotifications.BadgeCount, now time.Time) PanelData {
	items := make([]ItemView, 0, len(feed.Items))
	for _, n := range feed.Items {
		items = append(items, toItemView(basePath, resolver, n, now))
	}
	return PanelData{
		Badge: BadgeData{
			Unread:   badge.Unread,
			Critical: badge.Critical,
			Display:  badgeDisplay(badge.Unread),
		},
		Items: items,
		Total: feed.Total,
	}
}

func toItemView(basePath string, resolver navigation.Resolver, n vayunotifications.Notification, now time.Time) ItemView {
	view := ItemView{
		ID:            n.ID,
		Title:         n.Title,
		Summary:       n.Summary,
		CategoryLabel: categoryLabel(n.Category),
		SeverityLabel: severityLabel(n.Severity),
		SeverityClass: helpers.SeverityClass(string(n.Severity)),
		When:          helpers.Relative(n.CreatedAt, now),
		Unread:        !n.Read,
		ReadEndpoint:  joinBase(basePath, "/notifications/"+url.PathEscape(n.ID)+"/read"),
	}
	if _, ok := navigation.Lookup(n.RouteKey); ok && resolver != nil {
		view.Href = resolver.Resolve(n.RouteKey)
	}
	return view
}

func categoryLabel(cat vayunotifications.Category) string {
	switch cat {
	case vayunotifications.CategoryAirQuality:
		return "Air quality"
	case vayunotifications.CategoryForecast:
		return "Forecast"
	case vayunotifications.CategoryHealth:
		return "Health"
	case vayunotifications.CategoryCommunity:
		return "Community"
	default:
		return "Notice"
	}
}

func severityLabel(sev vayunotifications.Severity) string {
	switch sev {
	case vayunotifications.SeverityCritical:
		return "Critical"
	case vayunotifications.SeverityWarning:
		return "Warning"
	default:
		return "Info"
	}
}

func badgeDisplay(total int) string {
	switch {
	case total <= 0:
		return "0"
	case total > 99:
		return "99+"
	default:
		return fmt.Sprintf("%d", total)
	}
}

func joinBase(base, suffix string) string {
	base = navigation.NormalizeBasePath(base)
	if base == "/" {
		return suffix
	}
	return base + suffix
}
