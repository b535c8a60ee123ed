package catalog

import (
	"context"
	"time"

	"github.com/mcoot/eventease/internal/model"
)

const day = 24 * time.Hour

// sampleEvents returns the demo catalog, dated relative to now
func sampleEvents(now time.Time) []*model.Event {
	return []*model.Event{
		{
			Title:       "Tech Conference",
			Description: "Annual technology conference featuring the latest in software development, AI, and cloud computing.",
			EventDate:   now.Add(15 * day),
			Location:    "Convention Center, Istanbul",
			MaxCapacity: 200,
			PriceCents:  15000,
			ImageURL:    "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=400",
			IsActive:    true,
		},
		{
			Title:       "Marketing Workshop",
			Description: "Learn digital marketing strategies and social media best practices from industry experts.",
			EventDate:   now.Add(7 * day),
			Location:    "Business Center, Ankara",
			MaxCapacity: 50,
			PriceCents:  7500,
			ImageURL:    "https://images.unsplash.com/photo-1556761175-b413da4baf72?w=400",
			IsActive:    true,
		},
		{
			Title:       "Music Festival",
			Description: "Three-day music festival featuring local and international artists across multiple genres.",
			EventDate:   now.Add(30 * day),
			Location:    "Outdoor Park, Izmir",
			MaxCapacity: 1000,
			PriceCents:  29900,
			ImageURL:    "https://images.unsplash.com/photo-1459749411175-04bf5292ceea?w=400",
			IsActive:    true,
		},
		{
			Title:       "Cooking Masterclass",
			Description: "Learn to cook authentic Turkish cuisine with a renowned chef.",
			EventDate:   now.Add(5 * day),
			Location:    "Culinary School, Istanbul",
			MaxCapacity: 25,
			PriceCents:  12500,
			ImageURL:    "https://images.unsplash.com/photo-1556909114-f6e7ad7d3136?w=400",
			IsActive:    true,
		},
	}
}

// Seed fills an empty catalog with sample events. It does nothing if the
// catalog already has events.
func (s *Service) Seed(ctx context.Context) ([]*model.Event, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, nil
	}

	var created []*model.Event
	for _, e := range sampleEvents(s.clock.Now()) {
		event, err := s.Create(ctx, e)
		if err != nil {
			return created, err
		}
		created = append(created, event)
	}
	return created, nil
}
