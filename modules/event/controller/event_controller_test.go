package controller_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/modules/event/controller"
	"github.com/OmatthewY/explore-with-me/modules/event/dto"
	"github.com/OmatthewY/explore-with-me/modules/event/router"
	statsdto "github.com/OmatthewY/explore-with-me/stats/dto"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	calls     int
	public    dto.PublicEventParams
	detailErr *apperrors.AppError
}

func (s *stubService) PublicGetEvents(_ context.Context, p dto.PublicEventParams, _ params.PageParams) ([]dto.EventShortResponse, *apperrors.AppError) {
	s.calls++
	s.public = p
	return []dto.EventShortResponse{}, nil
}

func (s *stubService) PublicGetEventByID(_ context.Context, id int64) (*dto.EventFullResponse, *apperrors.AppError) {
	s.calls++
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return &dto.EventFullResponse{EventShortResponse: dto.EventShortResponse{ID: id}}, nil
}

func (s *stubService) PrivateGetEvents(context.Context, int64, params.PageParams) ([]dto.EventShortResponse, *apperrors.AppError) {
	s.calls++
	return []dto.EventShortResponse{}, nil
}

func (s *stubService) PrivateCreateEvent(_ context.Context, _ int64, _ *dto.NewEventRequest) (*dto.EventFullResponse, *apperrors.AppError) {
	s.calls++
	return &dto.EventFullResponse{EventShortResponse: dto.EventShortResponse{ID: 1}}, nil
}

func (s *stubService) PrivateGetEvent(_ context.Context, _, eventID int64) (*dto.EventFullResponse, *apperrors.AppError) {
	s.calls++
	return &dto.EventFullResponse{EventShortResponse: dto.EventShortResponse{ID: eventID}}, nil
}

func (s *stubService) PrivateUpdateEvent(_ context.Context, _, eventID int64, _ *dto.UpdateEventUserRequest) (*dto.EventFullResponse, *apperrors.AppError) {
	s.calls++
	return &dto.EventFullResponse{EventShortResponse: dto.EventShortResponse{ID: eventID}}, nil
}

func (s *stubService) AdminGetEvents(context.Context, dto.AdminEventParams, params.PageParams) ([]dto.EventFullResponse, *apperrors.AppError) {
	s.calls++
	return []dto.EventFullResponse{}, nil
}

func (s *stubService) AdminUpdateEvent(_ context.Context, eventID int64, _ *dto.UpdateEventAdminRequest) (*dto.EventFullResponse, *apperrors.AppError) {
	s.calls++
	return &dto.EventFullResponse{EventShortResponse: dto.EventShortResponse{ID: eventID}}, nil
}

type stubHits struct {
	hits []statsdto.EndpointHit
	err  error
}

func (s *stubHits) Record(_ context.Context, hit statsdto.EndpointHit) error {
	s.hits = append(s.hits, hit)
	return s.err
}

func newServer(svc *stubService, hits *stubHits) *echo.Echo {
	e := echo.New()
	ctrl := controller.NewEventController(svc, hits, "ewm-main-service")
	router.NewEventRouter(ctrl).Setup(e, middleware.NewMiddleware(""))
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPublicGetEvents_ParsesFilters(t *testing.T) {
	svc, hits := &stubService{}, &stubHits{}
	e := newServer(svc, hits)

	rec := serve(e, http.MethodGet,
		"/events?text=jazz&categories=1,2&paid=true&onlyAvailable=true&sort=VIEWS&rangeStart=2024-01-01%2000:00:00", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jazz", svc.public.Text)
	assert.Equal(t, []int64{1, 2}, svc.public.Categories)
	require.NotNil(t, svc.public.Paid)
	assert.True(t, *svc.public.Paid)
	assert.True(t, svc.public.OnlyAvailable)
	assert.Equal(t, dto.SortViews, svc.public.Sort)
	require.NotNil(t, svc.public.RangeStart)
	assert.Equal(t, 2024, svc.public.RangeStart.Year())
	assert.Nil(t, svc.public.RangeEnd)

	require.Len(t, hits.hits, 1)
	assert.Equal(t, "/events", hits.hits[0].URI)
}

func TestPublicGetEvents_UnknownSort(t *testing.T) {
	svc, hits := &stubService{}, &stubHits{}

	rec := serve(newServer(svc, hits), http.MethodGet, "/events?sort=NEWEST", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.calls)
	assert.Empty(t, hits.hits)
}

func TestPublicGetEventByID_RecordsHit(t *testing.T) {
	svc, hits := &stubService{}, &stubHits{}

	rec := serve(newServer(svc, hits), http.MethodGet, "/events/5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, hits.hits, 1)
	assert.Equal(t, "ewm-main-service", hits.hits[0].App)
	assert.Equal(t, "/events/5", hits.hits[0].URI)
	assert.Equal(t, "192.0.2.1", hits.hits[0].IP)
}

func TestPublicGetEventByID_NotFoundSkipsHit(t *testing.T) {
	svc := &stubService{detailErr: apperrors.Newf(apperrors.ErrNotFound, "Event with id=5 was not found")}
	hits := &stubHits{}

	rec := serve(newServer(svc, hits), http.MethodGet, "/events/5", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event with id=5 was not found")
	assert.Empty(t, hits.hits)
}

func TestPublicGetEventByID_RecorderFailureIgnored(t *testing.T) {
	hits := &stubHits{err: errors.New("stats down")}

	rec := serve(newServer(&stubService{}, hits), http.MethodGet, "/events/5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, hits.hits, 1)
}

func TestPublicGetEventByID_BadID(t *testing.T) {
	svc := &stubService{}

	rec := serve(newServer(svc, &stubHits{}), http.MethodGet, "/events/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.calls)
}

func newEventBody(date time.Time) string {
	return `{
		"annotation": "An evening of improvised jazz downtown",
		"category": 1,
		"description": "Three sets, two bands and a late jam session for everyone",
		"eventDate": "` + utils.FormatDateTime(date) + `",
		"location": {"lat": 55.75, "lon": 37.61},
		"title": "Jazz night"
	}`
}

func TestPrivateCreateEvent(t *testing.T) {
	svc := &stubService{}

	rec := serve(newServer(svc, &stubHits{}), http.MethodPost, "/users/1/events",
		newEventBody(time.Now().Add(72*time.Hour)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, svc.calls)
}

func TestPrivateCreateEvent_PastDate(t *testing.T) {
	svc := &stubService{}

	rec := serve(newServer(svc, &stubHits{}), http.MethodPost, "/users/1/events",
		newEventBody(time.Now().Add(-time.Hour)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "eventDate")
	assert.Zero(t, svc.calls)
}

func TestPrivateCreateEvent_MissingFields(t *testing.T) {
	svc := &stubService{}

	rec := serve(newServer(svc, &stubHits{}), http.MethodPost, "/users/1/events", `{"title":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, svc.calls)
}
