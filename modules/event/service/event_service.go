package service

import (
	"context"
	"sort"
	"time"

	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/utils"
	categoryentity "github.com/OmatthewY/explore-with-me/modules/category/entity"
	"github.com/OmatthewY/explore-with-me/modules/event/dto"
	"github.com/OmatthewY/explore-with-me/modules/event/entity"
	"github.com/OmatthewY/explore-with-me/modules/event/mapper"
	"github.com/OmatthewY/explore-with-me/modules/event/repository"
	userentity "github.com/OmatthewY/explore-with-me/modules/user/entity"
	"github.com/OmatthewY/explore-with-me/stats/client"
)

type CategoryReader interface {
	GetByID(ctx context.Context, id int64) (*categoryentity.Category, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*userentity.User, error)
}

type EventServiceInterface interface {
	PublicGetEvents(ctx context.Context, p dto.PublicEventParams, page params.PageParams) ([]dto.EventShortResponse, *errors.AppError)
	PublicGetEventByID(ctx context.Context, id int64) (*dto.EventFullResponse, *errors.AppError)

	PrivateGetEvents(ctx context.Context, userID int64, page params.PageParams) ([]dto.EventShortResponse, *errors.AppError)
	PrivateCreateEvent(ctx context.Context, userID int64, req *dto.NewEventRequest) (*dto.EventFullResponse, *errors.AppError)
	PrivateGetEvent(ctx context.Context, userID, eventID int64) (*dto.EventFullResponse, *errors.AppError)
	PrivateUpdateEvent(ctx context.Context, userID, eventID int64, req *dto.UpdateEventUserRequest) (*dto.EventFullResponse, *errors.AppError)

	AdminGetEvents(ctx context.Context, p dto.AdminEventParams, page params.PageParams) ([]dto.EventFullResponse, *errors.AppError)
	AdminUpdateEvent(ctx context.Context, eventID int64, req *dto.UpdateEventAdminRequest) (*dto.EventFullResponse, *errors.AppError)
}

type EventService struct {
	repo       repository.EventRepositoryInterface
	categories CategoryReader
	users      UserReader
	enricher   *Enricher
	tx         database.Transactor
	now        func() time.Time
}

func NewEventService(
	repo repository.EventRepositoryInterface,
	categories CategoryReader,
	users UserReader,
	requests RequestCounter,
	ratings RatingCounter,
	stats client.StatsGetter,
	app string,
	tx database.Transactor,
) *EventService {
	return &EventService{
		repo:       repo,
		categories: categories,
		users:      users,
		enricher:   NewEnricher(requests, ratings, stats, app, utils.Now),
		tx:         tx,
		now:        utils.Now,
	}
}

// Enricher is shared with modules that embed event summaries.
func (s *EventService) Enricher() *Enricher {
	return s.enricher
}

func (s *EventService) getEvent(ctx context.Context, id int64) (*entity.Event, *errors.AppError) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get event failed", err)
	}
	if event == nil {
		return nil, eventNotFound(id)
	}
	return event, nil
}

func (s *EventService) ensureUser(ctx context.Context, id int64) *errors.AppError {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return errors.Newf(errors.ErrNotFound, "User with id=%d was not found", id)
	}
	return nil
}

func (s *EventService) ensureCategory(ctx context.Context, id int64) *errors.AppError {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get category failed", err)
	}
	if category == nil {
		return errors.Newf(errors.ErrNotFound, "Category with id=%d was not found", id)
	}
	return nil
}

// applyUpdate writes the shared update fields, storing a new location row
// when one was sent.
func (s *EventService) applyUpdate(ctx context.Context, event *entity.Event, req *dto.UpdateEventRequest) *errors.AppError {
	if req.Category != nil && *req.Category != event.CategoryID {
		if appErr := s.ensureCategory(ctx, *req.Category); appErr != nil {
			return appErr
		}
	}

	if mapper.ApplyUpdate(event, req) {
		locationID, err := s.repo.SaveLocation(ctx, event.Lat, event.Lon)
		if err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "save location failed", err)
		}
		event.LocationID = locationID
	}
	return nil
}

// saveAndLoad persists event and returns the reloaded row with its counters.
func (s *EventService) saveAndLoad(ctx context.Context, event *entity.Event) (*dto.EventFullResponse, *errors.AppError) {
	if err := s.repo.Update(ctx, event); err != nil {
		if database.IsConstraintViolation(err) {
			return nil, errors.NewAppError(errors.ErrConflict, "event update violates a constraint", err)
		}
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update event failed", err)
	}

	updated, appErr := s.getEvent(ctx, event.ID)
	if appErr != nil {
		return nil, appErr
	}
	stats, err := s.enricher.Single(ctx, updated)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "load event statistics failed", err)
	}
	return mapper.ToEventFullResponse(updated, stats), nil
}

func (s *EventService) toShortList(ctx context.Context, events []entity.Event) ([]dto.EventShortResponse, *errors.AppError) {
	result := make([]dto.EventShortResponse, 0, len(events))
	if len(events) == 0 {
		return result, nil
	}

	lookup, err := s.enricher.Enrich(ctx, events)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "load event statistics failed", err)
	}
	for i := range events {
		result = append(result, *mapper.ToEventShortResponse(&events[i], lookup.For(events[i].ID)))
	}
	return result, nil
}

// SortEvents orders events descending by key; SortNone keeps the order.
func SortEvents(events []dto.EventShortResponse, key dto.SortKey) {
	var less func(a, b *dto.EventShortResponse) bool
	switch key {
	case dto.SortEventDate:
		less = func(a, b *dto.EventShortResponse) bool { return a.EventDate.After(b.EventDate.Time) }
	case dto.SortViews:
		less = func(a, b *dto.EventShortResponse) bool { return a.Views > b.Views }
	case dto.SortRating:
		less = func(a, b *dto.EventShortResponse) bool { return a.Rating > b.Rating }
	default:
		return
	}
	sort.SliceStable(events, func(i, j int) bool { return less(&events[i], &events[j]) })
}

func eventNotFound(id int64) *errors.AppError {
	return errors.Newf(errors.ErrNotFound, "Event with id=%d was not found", id)
}
