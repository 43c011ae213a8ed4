package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStaticServiceListOrdersNewestFirst(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc := NewStaticServiceWith([]Notification{
		{ID: "old", CreatedAt: now.Add(-time.Hour), Read: true},
		{ID: "new", CreatedAt: now, Severity: SeverityCritical},
		{ID: "mid", CreatedAt: now.Add(-time.Minute)},
	})

	feed, err := svc.List(context.Background(), Query{})
	require.NoError(t, err)
	require.Equal(t, 3, feed.Total)
	require.Equal(t, 2, feed.Unread)
	require.Equal(t, []string{"new", "mid", "old"}, ids(feed.Items))

	feed, err = svc.List(context.Background(), Query{UnreadOnly: true, Limit: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"new"}, ids(feed.Items))
}

func TestStaticServiceMarkRead(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()
	ctx := context.Background()

	before, err := svc.Badge(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, before.Unread)
	require.Equal(t, 1, before.Critical)

	require.NoError(t, svc.MarkRead(ctx, "aqi-spike-central"))
	after, err := svc.Badge(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, after.Unread)
	require.Equal(t, 0, after.Critical)

	require.ErrorIs(t, svc.MarkRead(ctx, "missing"), ErrNotFound)
}

func ids(items []Notification) []string {
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.ID)
	}
	return out
}
