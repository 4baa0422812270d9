package service

import (
	"context"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/modules/event/dto"
	"github.com/OmatthewY/explore-with-me/modules/event/entity"
	"github.com/OmatthewY/explore-with-me/modules/event/mapper"
)

func (s *EventService) PrivateGetEvents(ctx context.Context, userID int64, page params.PageParams) ([]dto.EventShortResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result []dto.EventShortResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		if appErr := s.ensureUser(ctx, userID); appErr != nil {
			return appErr
		}

		events, err := s.repo.FindByInitiator(ctx, userID, page)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get user events failed", err)
		}

		var appErr *errors.AppError
		if result, appErr = s.toShortList(ctx, events); appErr != nil {
			return appErr
		}
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}
	return result, nil
}

func (s *EventService) PrivateCreateEvent(ctx context.Context, userID int64, req *dto.NewEventRequest) (*dto.EventFullResponse, *errors.AppError) {
	now := s.now()
	if req.EventDate.Before(now.Add(constants.EventMinLeadTimeOwner)) {
		return nil, errors.Newf(errors.ErrConflict,
			"Field: eventDate. Error: must be at least 2 hours after now. Value: %s", req.EventDate)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.EventFullResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		if appErr := s.ensureUser(ctx, userID); appErr != nil {
			return appErr
		}
		if appErr := s.ensureCategory(ctx, req.Category); appErr != nil {
			return appErr
		}

		event := mapper.ToEventEntity(req, userID, now)
		locationID, err := s.repo.SaveLocation(ctx, event.Lat, event.Lon)
		if err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "save location failed", err)
		}
		event.LocationID = locationID

		created, err := s.repo.Create(ctx, event)
		if err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "create event failed", err)
		}
		result = mapper.ToEventFullResponse(created, mapper.Stats{})
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("EventService:PrivateCreateEvent:Created", "id", result.ID, "initiator_id", userID)
	return result, nil
}

func (s *EventService) PrivateGetEvent(ctx context.Context, userID, eventID int64) (*dto.EventFullResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.EventFullResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		if appErr := s.ensureUser(ctx, userID); appErr != nil {
			return appErr
		}
		event, appErr := s.getEvent(ctx, eventID)
		if appErr != nil {
			return appErr
		}
		if event.InitiatorID != userID {
			return errors.Newf(errors.ErrConflict,
				"User with id=%d is not the initiator of event with id=%d", userID, eventID)
		}

		stats, err := s.enricher.Single(ctx, event)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "load event statistics failed", err)
		}
		result = mapper.ToEventFullResponse(event, stats)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}
	return result, nil
}

func (s *EventService) PrivateUpdateEvent(ctx context.Context, userID, eventID int64, req *dto.UpdateEventUserRequest) (*dto.EventFullResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.EventFullResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		if appErr := s.ensureUser(ctx, userID); appErr != nil {
			return appErr
		}
		event, appErr := s.getEvent(ctx, eventID)
		if appErr != nil {
			return appErr
		}

		if event.InitiatorID != userID {
			return errors.Newf(errors.ErrConflict,
				"User with id=%d is not the initiator of event with id=%d", userID, eventID)
		}
		if event.State == entity.StatePublished {
			return errors.Newf(errors.ErrConflict, "Only pending or canceled events can be changed")
		}

		eventDate := event.EventDate
		if req.EventDate != nil && !req.EventDate.IsZero() {
			eventDate = req.EventDate.Time
		}
		if eventDate.Before(s.now().Add(constants.EventMinLeadTimeOwner)) {
			return errors.Newf(errors.ErrConflict,
				"Field: eventDate. Error: must be at least 2 hours after now. Value: %s", utils.FormatDateTime(eventDate))
		}

		if appErr := s.applyUpdate(ctx, event, &req.UpdateEventRequest); appErr != nil {
			return appErr
		}

		if req.StateAction != nil {
			switch *req.StateAction {
			case dto.StateActionSendToReview:
				event.State = entity.StatePending
			case dto.StateActionCancelReview:
				event.State = entity.StateCanceled
			}
		}

		if result, appErr = s.saveAndLoad(ctx, event); appErr != nil {
			return appErr
		}
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("EventService:PrivateUpdateEvent:Updated", "id", eventID, "state", result.State)
	return result, nil
}
