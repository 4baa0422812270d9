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

func (s *EventService) PublicGetEvents(ctx context.Context, p dto.PublicEventParams, page params.PageParams) ([]dto.EventShortResponse, *errors.AppError) {
	if p.RangeStart != nil && p.RangeEnd != nil && p.RangeEnd.Before(*p.RangeStart) {
		return nil, errors.Newf(errors.ErrWrongDate, "rangeEnd %s is before rangeStart %s",
			utils.FormatDateTime(*p.RangeEnd), utils.FormatDateTime(*p.RangeStart))
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	filter := entity.PublicFilter{
		Text:          p.Text,
		Categories:    p.Categories,
		Paid:          p.Paid,
		RangeStart:    s.now(),
		OnlyAvailable: p.OnlyAvailable,
	}
	if p.RangeStart != nil {
		filter.RangeStart = *p.RangeStart
	}
	filter.RangeEnd = filter.RangeStart.AddDate(constants.PublicRangeEndYears, 0, 0)
	if p.RangeEnd != nil {
		filter.RangeEnd = *p.RangeEnd
	}

	logger.Info("EventService:PublicGetEvents:Request",
		"text", p.Text, "categories", p.Categories, "only_available", p.OnlyAvailable,
		"sort", p.Sort, "from", page.From, "size", page.Size)

	var result []dto.EventShortResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		events, err := s.repo.FindPublic(ctx, filter, page)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get events failed", err)
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

	SortEvents(result, p.Sort)
	return result, nil
}

func (s *EventService) PublicGetEventByID(ctx context.Context, id int64) (*dto.EventFullResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.EventFullResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		event, appErr := s.getEvent(ctx, id)
		if appErr != nil {
			return appErr
		}
		if event.State != entity.StatePublished {
			return eventNotFound(id)
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
