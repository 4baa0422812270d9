package service

import (
	"context"
	"testing"
	"time"

	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/modules/event/dto"
	"github.com/OmatthewY/explore-with-me/modules/event/entity"
	statsdto "github.com/OmatthewY/explore-with-me/stats/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var page = params.NewPageParams(0, 10)

func ptr[T any](v T) *T { return &v }

func TestPublicGetEvents_EnrichesAndSorts(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	f := newFixture(publishedEvent(1, base.Add(24*time.Hour)), publishedEvent(2, base))
	f.counters.confirmed = map[int64]int64{2: 4}
	f.counters.scores = map[int64]int64{1: 3, 2: -1}
	f.stats.rows = []statsdto.ViewStats{
		{App: "ewm", URI: "/events/1", Hits: 5},
		{App: "ewm", URI: "/events/2", Hits: 9},
	}

	events, appErr := f.svc.PublicGetEvents(context.Background(), dto.PublicEventParams{Sort: dto.SortViews}, page)

	require.Nil(t, appErr)
	require.Len(t, events, 2)
	assert.Equal(t, int64(2), events[0].ID)
	assert.Equal(t, int64(9), events[0].Views)
	assert.Equal(t, int64(4), events[0].ConfirmedRequests)
	assert.Equal(t, int64(-1), events[0].Rating)
	assert.Equal(t, int64(1), events[1].ID)
	assert.Equal(t, int64(0), events[1].ConfirmedRequests)

	require.Len(t, f.stats.requests, 1)
	req := f.stats.requests[0]
	assert.True(t, req.Unique)
	assert.Equal(t, base, req.Start)
	assert.Equal(t, f.now, req.End)
	assert.ElementsMatch(t, []string{"/events/1", "/events/2"}, req.URIs)
}

func TestPublicGetEvents_CountsOnlyOwnAppViews(t *testing.T) {
	f := newFixture(publishedEvent(1, time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)))
	f.stats.rows = []statsdto.ViewStats{
		{App: "ewm", URI: "/events/1", Hits: 3},
		{App: "ewm-mobile", URI: "/events/1", Hits: 2},
	}

	events, appErr := f.svc.PublicGetEvents(context.Background(), dto.PublicEventParams{}, page)

	require.Nil(t, appErr)
	require.Len(t, events, 1)
	assert.Equal(t, int64(3), events[0].Views)
}

func TestPublicGetEvents_SortByRating(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	f := newFixture(publishedEvent(1, base), publishedEvent(2, base), publishedEvent(3, base))
	f.counters.scores = map[int64]int64{2: 5, 3: 1}

	events, appErr := f.svc.PublicGetEvents(context.Background(), dto.PublicEventParams{Sort: dto.SortRating}, page)

	require.Nil(t, appErr)
	ids := []int64{events[0].ID, events[1].ID, events[2].ID}
	assert.Equal(t, []int64{2, 3, 1}, ids)
}

func TestPublicGetEvents_EmptySkipsLookups(t *testing.T) {
	f := newFixture()

	events, appErr := f.svc.PublicGetEvents(context.Background(), dto.PublicEventParams{}, page)

	require.Nil(t, appErr)
	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.Empty(t, f.stats.requests)
}

func TestPublicGetEvents_DefaultRange(t *testing.T) {
	f := newFixture()

	_, appErr := f.svc.PublicGetEvents(context.Background(), dto.PublicEventParams{Text: "jazz"}, page)

	require.Nil(t, appErr)
	assert.Equal(t, f.now, f.repo.publicFilter.RangeStart)
	assert.Equal(t, f.now.AddDate(200, 0, 0), f.repo.publicFilter.RangeEnd)
	assert.Equal(t, "jazz", f.repo.publicFilter.Text)
}

func TestPublicGetEvents_WrongDate(t *testing.T) {
	f := newFixture()
	start := f.now.Add(48 * time.Hour)
	end := f.now.Add(24 * time.Hour)

	_, appErr := f.svc.PublicGetEvents(context.Background(),
		dto.PublicEventParams{RangeStart: &start, RangeEnd: &end}, page)

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrWrongDate, appErr.Code)
}

func TestEnrich_FallbackWindowWhenNothingPublished(t *testing.T) {
	f := newFixture(pendingEvent(1, time.Now().Add(72*time.Hour)))

	_, appErr := f.svc.PrivateGetEvents(context.Background(), 1, page)

	require.Nil(t, appErr)
	require.Len(t, f.stats.requests, 1)
	assert.Equal(t, f.now.AddDate(-100, 0, 0), f.stats.requests[0].Start)
}

func TestPublicGetEventByID(t *testing.T) {
	published := time.Date(2024, 5, 20, 9, 0, 0, 0, time.Local)
	f := newFixture(publishedEvent(1, published), pendingEvent(2, published))
	f.counters.likes = map[int64]int64{1: 4}
	f.counters.dislikes = map[int64]int64{1: 1}
	f.counters.confirmed = map[int64]int64{1: 2}
	f.stats.rows = []statsdto.ViewStats{{App: "ewm", URI: "/events/1", Hits: 7}}

	event, appErr := f.svc.PublicGetEventByID(context.Background(), 1)
	require.Nil(t, appErr)
	assert.Equal(t, int64(3), event.Rating)
	assert.Equal(t, int64(7), event.Views)
	assert.Equal(t, int64(2), event.ConfirmedRequests)
	assert.Equal(t, published, f.stats.requests[0].Start)
	assert.Equal(t, []string{"/events/1"}, f.stats.requests[0].URIs)

	_, appErr = f.svc.PublicGetEventByID(context.Background(), 2)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	_, appErr = f.svc.PublicGetEventByID(context.Background(), 99)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func newEventRequest(date time.Time) *dto.NewEventRequest {
	return &dto.NewEventRequest{
		Annotation:  "A long enough annotation for the event",
		Category:    1,
		Description: "A long enough description for the event",
		EventDate:   ptr(utils.NewDateTime(date)),
		Location:    &dto.LocationRequest{Lat: ptr(55.75), Lon: ptr(37.61)},
		Title:       "Open air",
	}
}

func TestPrivateCreateEvent_LeadTime(t *testing.T) {
	f := newFixture()

	_, appErr := f.svc.PrivateCreateEvent(context.Background(), 1, newEventRequest(f.now.Add(time.Hour)))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrConflict, appErr.Code)

	event, appErr := f.svc.PrivateCreateEvent(context.Background(), 1, newEventRequest(f.now.Add(3*time.Hour)))
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.StatePending), event.State)
	assert.Nil(t, event.PublishedOn)
	assert.True(t, event.RequestModeration)
	assert.Zero(t, event.Views)
	assert.Zero(t, event.Rating)
	assert.Zero(t, event.ConfirmedRequests)
	assert.Equal(t, 55.75, event.Location.Lat)
}

func TestPrivateCreateEvent_UnknownCategory(t *testing.T) {
	f := newFixture()
	req := newEventRequest(f.now.Add(3 * time.Hour))
	req.Category = 42

	_, appErr := f.svc.PrivateCreateEvent(context.Background(), 1, req)

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestPrivateGetEvent_OtherUser(t *testing.T) {
	f := newFixture(pendingEvent(1, time.Now().Add(72*time.Hour)))

	_, appErr := f.svc.PrivateGetEvent(context.Background(), 2, 1)

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestPrivateUpdateEvent_Conflicts(t *testing.T) {
	f := newFixture(
		pendingEvent(1, time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)),
		publishedEvent(2, time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)),
		pendingEvent(3, time.Date(2024, 6, 1, 13, 0, 0, 0, time.Local)),
	)
	req := &dto.UpdateEventUserRequest{}

	_, appErr := f.svc.PrivateUpdateEvent(context.Background(), 2, 1, req)
	require.NotNil(t, appErr, "not the initiator")
	assert.Equal(t, errors.ErrConflict, appErr.Code)

	_, appErr = f.svc.PrivateUpdateEvent(context.Background(), 1, 2, req)
	require.NotNil(t, appErr, "already published")
	assert.Equal(t, errors.ErrConflict, appErr.Code)

	_, appErr = f.svc.PrivateUpdateEvent(context.Background(), 1, 3, req)
	require.NotNil(t, appErr, "unchanged date too close")
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestPrivateUpdateEvent_StateActions(t *testing.T) {
	f := newFixture(pendingEvent(1, time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)))

	req := &dto.UpdateEventUserRequest{StateAction: ptr(dto.StateActionCancelReview)}
	req.Title = ptr("  New title  ")
	req.Annotation = ptr("   ")
	event, appErr := f.svc.PrivateUpdateEvent(context.Background(), 1, 1, req)
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.StateCanceled), event.State)
	assert.Equal(t, "New title", event.Title)
	assert.Empty(t, event.Annotation)

	event, appErr = f.svc.PrivateUpdateEvent(context.Background(), 1, 1,
		&dto.UpdateEventUserRequest{StateAction: ptr(dto.StateActionSendToReview)})
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.StatePending), event.State)
}

func TestPrivateUpdateEvent_NewLocation(t *testing.T) {
	f := newFixture(pendingEvent(1, time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)))
	req := &dto.UpdateEventUserRequest{}
	req.Location = &dto.LocationRequest{Lat: ptr(1.5), Lon: ptr(2.5)}

	event, appErr := f.svc.PrivateUpdateEvent(context.Background(), 1, 1, req)

	require.Nil(t, appErr)
	assert.Equal(t, dto.LocationResponse{Lat: 1.5, Lon: 2.5}, event.Location)
	assert.Equal(t, int64(501), f.repo.events[1].LocationID)
}

func TestAdminUpdateEvent_Publish(t *testing.T) {
	f := newFixture(pendingEvent(1, time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)))
	publish := &dto.UpdateEventAdminRequest{StateAction: ptr(dto.StateActionPublish)}

	event, appErr := f.svc.AdminUpdateEvent(context.Background(), 1, publish)
	require.Nil(t, appErr)
	assert.Equal(t, string(entity.StatePublished), event.State)
	require.NotNil(t, event.PublishedOn)
	assert.Equal(t, f.now, event.PublishedOn.Time)

	_, appErr = f.svc.AdminUpdateEvent(context.Background(), 1, publish)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestAdminUpdateEvent_PublishSoonPendingEvent(t *testing.T) {
	f := newFixture(pendingEvent(1, time.Date(2024, 6, 1, 12, 30, 0, 0, time.Local)))

	event, appErr := f.svc.AdminUpdateEvent(context.Background(), 1,
		&dto.UpdateEventAdminRequest{StateAction: ptr(dto.StateActionPublish)})

	require.Nil(t, appErr)
	assert.Equal(t, string(entity.StatePublished), event.State)
	require.NotNil(t, event.PublishedOn)
	assert.Equal(t, f.now, event.PublishedOn.Time)
}

func TestAdminUpdateEvent_RejectPublished(t *testing.T) {
	f := newFixture(publishedEvent(1, time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)))

	_, appErr := f.svc.AdminUpdateEvent(context.Background(), 1,
		&dto.UpdateEventAdminRequest{StateAction: ptr(dto.StateActionReject)})

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestAdminUpdateEvent_KeepsPublishedOnWithoutAction(t *testing.T) {
	publishedOn := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	f := newFixture(publishedEvent(1, publishedOn))
	req := &dto.UpdateEventAdminRequest{}
	req.Title = ptr("Renamed")

	event, appErr := f.svc.AdminUpdateEvent(context.Background(), 1, req)

	require.Nil(t, appErr)
	assert.Equal(t, "Renamed", event.Title)
	require.NotNil(t, event.PublishedOn)
	assert.Equal(t, publishedOn, event.PublishedOn.Time)
}

func TestAdminUpdateEvent_DateBeforePublication(t *testing.T) {
	publishedOn := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	f := newFixture(publishedEvent(1, publishedOn))
	req := &dto.UpdateEventAdminRequest{}
	req.EventDate = ptr(utils.NewDateTime(publishedOn.Add(30 * time.Minute)))

	_, appErr := f.svc.AdminUpdateEvent(context.Background(), 1, req)

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
}

func TestAdminGetEvents(t *testing.T) {
	f := newFixture(pendingEvent(1, time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)))

	_, appErr := f.svc.AdminGetEvents(context.Background(), dto.AdminEventParams{States: []string{"DRAFT"}}, page)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	events, appErr := f.svc.AdminGetEvents(context.Background(),
		dto.AdminEventParams{States: []string{"PENDING"}, Users: []int64{1}}, page)
	require.Nil(t, appErr)
	require.Len(t, events, 1)
	assert.Equal(t, "PENDING", events[0].State)
	assert.Equal(t, []entity.State{entity.StatePending}, f.repo.adminFilter.States)
}

func TestSortEvents(t *testing.T) {
	day := func(d int) utils.DateTime {
		return utils.NewDateTime(time.Date(2024, 1, d, 0, 0, 0, 0, time.Local))
	}
	events := []dto.EventShortResponse{
		{ID: 1, EventDate: day(3), Views: 1},
		{ID: 2, EventDate: day(5), Views: 1},
		{ID: 3, EventDate: day(1), Views: 4},
	}

	SortEvents(events, dto.SortNone)
	assert.Equal(t, int64(1), events[0].ID)

	SortEvents(events, dto.SortEventDate)
	assert.Equal(t, []int64{2, 1, 3}, []int64{events[0].ID, events[1].ID, events[2].ID})

	SortEvents(events, dto.SortViews)
	assert.Equal(t, []int64{3, 2, 1}, []int64{events[0].ID, events[1].ID, events[2].ID})
}
