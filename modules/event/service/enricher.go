package service

import (
	"context"
	"fmt"
	"time"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/modules/event/entity"
	"github.com/OmatthewY/explore-with-me/modules/event/mapper"
	"github.com/OmatthewY/explore-with-me/stats/client"
	statsdto "github.com/OmatthewY/explore-with-me/stats/dto"
)

// RequestCounter reads confirmed participation counts.
type RequestCounter interface {
	CountConfirmed(ctx context.Context, eventID int64) (int64, error)
	CountConfirmedByEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
}

// RatingCounter reads vote aggregates.
type RatingCounter interface {
	CountLikes(ctx context.Context, eventID int64) (int64, error)
	CountDislikes(ctx context.Context, eventID int64) (int64, error)
	ScoresByEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
}

// Lookup holds derived counters keyed by event id. Missing keys read as 0.
type Lookup struct {
	Confirmed map[int64]int64
	Views     map[int64]int64
	Ratings   map[int64]int64
}

func (l Lookup) For(eventID int64) mapper.Stats {
	return mapper.Stats{
		ConfirmedRequests: l.Confirmed[eventID],
		Views:             l.Views[eventID],
		Rating:            l.Ratings[eventID],
	}
}

// Enricher joins confirmed counts, views and ratings onto events.
type Enricher struct {
	requests RequestCounter
	ratings  RatingCounter
	stats    client.StatsGetter
	app      string
	now      func() time.Time
}

// NewEnricher counts views recorded under app only; an empty app counts
// every app.
func NewEnricher(requests RequestCounter, ratings RatingCounter, stats client.StatsGetter, app string, now func() time.Time) *Enricher {
	return &Enricher{requests: requests, ratings: ratings, stats: stats, app: app, now: now}
}

// Enrich builds the lookup for a listing with one query per counter and a
// single stats call.
func (e *Enricher) Enrich(ctx context.Context, events []entity.Event) (Lookup, error) {
	if len(events) == 0 {
		return Lookup{}, nil
	}

	ids := make([]int64, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}

	confirmed, err := e.requests.CountConfirmedByEvents(ctx, ids)
	if err != nil {
		return Lookup{}, fmt.Errorf("count confirmed requests: %w", err)
	}
	ratings, err := e.ratings.ScoresByEvents(ctx, ids)
	if err != nil {
		return Lookup{}, fmt.Errorf("score events: %w", err)
	}

	now := e.now()
	start := EarliestPublished(events, now.AddDate(-constants.PublicViewsFallback, 0, 0))
	views, err := e.views(ctx, ids, start, now)
	if err != nil {
		return Lookup{}, err
	}

	return Lookup{Confirmed: confirmed, Views: views, Ratings: ratings}, nil
}

// Single computes the counters of one event.
func (e *Enricher) Single(ctx context.Context, event *entity.Event) (mapper.Stats, error) {
	confirmed, err := e.requests.CountConfirmed(ctx, event.ID)
	if err != nil {
		return mapper.Stats{}, fmt.Errorf("count confirmed requests: %w", err)
	}

	likes, err := e.ratings.CountLikes(ctx, event.ID)
	if err != nil {
		return mapper.Stats{}, fmt.Errorf("count likes: %w", err)
	}
	dislikes, err := e.ratings.CountDislikes(ctx, event.ID)
	if err != nil {
		return mapper.Stats{}, fmt.Errorf("count dislikes: %w", err)
	}

	now := e.now()
	start := now.AddDate(-constants.DetailViewsFallback, 0, 0)
	if event.PublishedOn != nil {
		start = *event.PublishedOn
	}
	views, err := e.views(ctx, []int64{event.ID}, start, now)
	if err != nil {
		return mapper.Stats{}, err
	}

	return mapper.Stats{
		ConfirmedRequests: confirmed,
		Views:             views[event.ID],
		Rating:            likes - dislikes,
	}, nil
}

func (e *Enricher) views(ctx context.Context, ids []int64, start, end time.Time) (map[int64]int64, error) {
	uris := make([]string, len(ids))
	for i, id := range ids {
		uris[i] = client.EventURI(id)
	}

	rows, err := e.stats.GetStats(ctx, statsdto.StatsRequest{
		Start:  start,
		End:    end,
		URIs:   uris,
		Unique: true,
	})
	if err != nil {
		return nil, fmt.Errorf("get views: %w", err)
	}

	views := make(map[int64]int64, len(rows))
	for _, row := range rows {
		if e.app != "" && row.App != e.app {
			continue
		}
		if id, ok := client.EventIDFromURI(row.URI); ok {
			views[id] += row.Hits
		}
	}
	return views, nil
}

// EarliestPublished returns the earliest publishedOn, or fallback when no
// event has been published.
func EarliestPublished(events []entity.Event, fallback time.Time) time.Time {
	var earliest *time.Time
	for i := range events {
		p := events[i].PublishedOn
		if p != nil && (earliest == nil || p.Before(*earliest)) {
			earliest = p
		}
	}
	if earliest == nil {
		return fallback
	}
	return *earliest
}
