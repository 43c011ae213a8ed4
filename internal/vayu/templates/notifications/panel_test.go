package notifications

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"finitefield.org/vayu-web/internal/vayu/navigation"
	vayunotifications "finitefield.org/vayu-web/internal/vayu/notifications"
)

func renderPanel(t *testing.T, data PanelData) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, Panel(data).Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return doc
}

func TestPanelPayload(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	feed := vayunotifications.Feed{
		Total: 2,
		Items: []vayunotifications.Notification{
			{ID: "a b", Category: vayunotifications.CategoryAirQuality, Severity: vayunotifications.SeverityCritical, Title: "Spike", CreatedAt: now.Add(-5 * time.Minute), RouteKey: "LiveMap"},
			{ID: "c", Category: "unknown", Severity: vayunotifications.SeverityInfo, Title: "Later", CreatedAt: now.Add(-3 * time.Hour), Read: true, RouteKey: "Nowhere"},
		},
	}

	data := PanelPayload("/app", navigation.NewResolver("/app"), feed, vayunotifications.BadgeCount{Unread: 120, Critical: 1}, now)
	require.Equal(t, "99+", data.Badge.Display)
	require.Len(t, data.Items, 2)

	first := data.Items[0]
	require.Equal(t, "/app/notifications/a%20b/read", first.ReadEndpoint)
	require.Equal(t, "/app/livemap", first.Href)
	require.Equal(t, "Air quality", first.CategoryLabel)
	require.Equal(t, "Critical", first.SeverityLabel)
	require.Equal(t, "5m ago", first.When)
	require.True(t, first.Unread)

	second := data.Items[1]
	require.Empty(t, second.Href)
	require.Equal(t, "Notice", second.CategoryLabel)
	require.False(t, second.Unread)
}

func TestPanelRendersBadgeAndItems(t *testing.T) {
	t.Parallel()

	svc := vayunotifications.NewStaticService()
	feed, err := svc.List(context.Background(), vayunotifications.Query{})
	require.NoError(t, err)
	badge, err := svc.Badge(context.Background())
	require.NoError(t, err)

	data := PanelPayload("/", navigation.DefaultResolver(), feed, badge, time.Now())
	doc := renderPanel(t, data)

	require.Equal(t, "3", doc.Find("[data-badge]").Text())
	require.True(t, doc.Find("[data-badge]").HasClass("bg-destructive"))
	require.Equal(t, 4, doc.Find("li[data-notification]").Length())
	require.Equal(t, 3, doc.Find(`button[data-action="mark-read"]`).Length())
	require.Equal(t, "/notifications/aqi-spike-central/read", doc.Find(`li[data-notification="aqi-spike-central"] button`).AttrOr("hx-post", ""))
	require.Equal(t, PanelTarget, doc.Find(`button[data-action="mark-read"]`).First().AttrOr("hx-target", ""))
	_, open := doc.Find("details").Attr("open")
	require.False(t, open)
}

func TestPanelEmptyAndError(t *testing.T) {
	t.Parallel()

	doc := renderPanel(t, PanelData{Badge: BadgeData{Display: "0"}, Expanded: true})
	require.Equal(t, 0, doc.Find("[data-badge]").Length())
	require.Contains(t, doc.Find("details").Text(), "all caught up")
	_, open := doc.Find("details").Attr("open")
	require.True(t, open)

	doc = renderPanel(t, PanelData{Badge: BadgeData{Display: "0"}, Error: "feed unavailable"})
	require.Equal(t, "feed unavailable", strings.TrimSpace(doc.Find(`[role="alert"]`).Text()))
}
