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

func (s *EventService) AdminGetEvents(ctx context.Context, p dto.AdminEventParams, page params.PageParams) ([]dto.EventFullResponse, *errors.AppError) {
	if p.RangeStart != nil && p.RangeEnd != nil && p.RangeEnd.Before(*p.RangeStart) {
		return nil, errors.Newf(errors.ErrWrongDate, "rangeEnd %s is before rangeStart %s",
			utils.FormatDateTime(*p.RangeEnd), utils.FormatDateTime(*p.RangeStart))
	}

	filter := entity.AdminFilter{
		Users:      p.Users,
		Categories: p.Categories,
		RangeStart: p.RangeStart,
		RangeEnd:   p.RangeEnd,
	}
	for _, raw := range p.States {
		state, ok := entity.ParseState(raw)
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidInput, "Unknown state: %s", raw)
		}
		filter.States = append(filter.States, state)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result []dto.EventFullResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		events, err := s.repo.FindAdmin(ctx, filter, page)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get events failed", err)
		}

		result = make([]dto.EventFullResponse, 0, len(events))
		if len(events) == 0 {
			return nil
		}
		lookup, err := s.enricher.Enrich(ctx, events)
		if err != nil {
			return errors.NewAppError(errors.ErrInternalServer, "load event statistics failed", err)
		}
		for i := range events {
			result = append(result, *mapper.ToEventFullResponse(&events[i], lookup.For(events[i].ID)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}
	return result, nil
}

func (s *EventService) AdminUpdateEvent(ctx context.Context, eventID int64, req *dto.UpdateEventAdminRequest) (*dto.EventFullResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.EventFullResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		event, appErr := s.getEvent(ctx, eventID)
		if appErr != nil {
			return appErr
		}

		action := ""
		if req.StateAction != nil {
			action = *req.StateAction
		}
		switch action {
		case dto.StateActionPublish:
			if event.State != entity.StatePending {
				return errors.Newf(errors.ErrConflict,
					"Cannot publish the event because it's not in the right state: %s", event.State)
			}
		case dto.StateActionReject:
			if event.State == entity.StatePublished {
				return errors.Newf(errors.ErrConflict, "Cannot reject the event because it's already published")
			}
		}

		now := s.now()
		if req.EventDate != nil && !req.EventDate.IsZero() &&
			event.State == entity.StatePublished && event.PublishedOn != nil &&
			req.EventDate.Before(event.PublishedOn.Add(constants.EventMinGapAfterPublish)) {
			return errors.Newf(errors.ErrConflict,
				"Field: eventDate. Error: must be at least 1 hour after publication. Value: %s", req.EventDate)
		}

		if appErr := s.applyUpdate(ctx, event, &req.UpdateEventRequest); appErr != nil {
			return appErr
		}

		switch action {
		case dto.StateActionPublish:
			event.State = entity.StatePublished
			event.PublishedOn = &now
		case dto.StateActionReject:
			event.State = entity.StateCanceled
		}

		if result, appErr = s.saveAndLoad(ctx, event); appErr != nil {
			return appErr
		}
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("EventService:AdminUpdateEvent:Updated", "id", eventID, "state", result.State, "action", req.StateAction)
	return result, nil
}
