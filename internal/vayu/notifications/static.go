package notifications

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// StaticService provides canned alerts for development, previews, and tests.
type StaticService struct {
	mu    sync.RWMutex
	items []Notification
}

// NewStaticService builds a StaticService populated with representative alerts.
func NewStaticService() *StaticService {
	now := time.Now()
	return NewStaticServiceWith([]Notification{
		{
			ID:        "aqi-spike-central",
			Category:  CategoryAirQuality,
			Severity:  SeverityCritical,
			Title:     "AQI above 200 near Central Station",
			Summary:   "PM2.5 readings spiked after a nearby fire. Keep windows closed and wear a mask outdoors.",
			CreatedAt: now.Add(-12 * time.Minute),
			RouteKey:  "LiveMap",
		},
		{
			ID:        "forecast-inversion",
			Category:  CategoryForecast,
			Severity:  SeverityWarning,
			Title:     "Temperature inversion expected tonight",
			Summary:   "Pollutants may stay close to the ground until mid-morning.",
			CreatedAt: now.Add(-2 * time.Hour),
			RouteKey:  "Forecast",
		},
		{
			ID:        "health-checkin",
			Category:  CategoryHealth,
			Severity:  SeverityInfo,
			Title:     "Weekly symptom check-in",
			Summary:   "Log how you felt this week to improve your exposure insights.",
			CreatedAt: now.Add(-26 * time.Hour),
			RouteKey:  "MyHealth",
		},
		{
			ID:        "community-planting",
			Category:  CategoryCommunity,
			Severity:  SeverityInfo,
			Title:     "Tree planting this Saturday",
			Summary:   "Neighbours are meeting at Lake Park at 8am.",
			CreatedAt: now.Add(-50 * time.Hour),
			Read:      true,
			RouteKey:  "Community",
		},
	})
}

// NewStaticServiceWith seeds the service with the provided alerts.
func NewStaticServiceWith(items []Notification) *StaticService {
	copied := make([]Notification, len(items))
	copy(copied, items)
	return &StaticService{items: copied}
}

// List implements Service.
func (s *StaticService) List(ctx context.Context, query Query) (Feed, error) {
	if err := ctx.Err(); err != nil {
		return Feed{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	feed := Feed{Total: len(s.items)}
	items := make([]Notification, 0, len(s.items))
	for _, n := range s.items {
		if !n.Read {
			feed.Unread++
		}
		if query.UnreadOnly && n.Read {
			continue
		}
		items = append(items, n)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if query.Limit > 0 && len(items) > query.Limit {
		items = items[:query.Limit]
	}
	feed.Items = items
	return feed, nil
}

// Badge implements Service.
func (s *StaticService) Badge(ctx context.Context) (BadgeCount, error) {
	if err := ctx.Err(); err != nil {
		return BadgeCount{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var count BadgeCount
	for _, n := range s.items {
		if n.Read {
			continue
		}
		count.Unread++
		if n.Severity == SeverityCritical {
			count.Critical++
		}
	}
	return count, nil
}

// MarkRead implements Service.
func (s *StaticService) MarkRead(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}
