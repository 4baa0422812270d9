package controller

import (
	"context"

	"github.com/OmatthewY/explore-with-me/core/controller"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/core/validation"
	"github.com/OmatthewY/explore-with-me/modules/event/dto"
	"github.com/OmatthewY/explore-with-me/modules/event/service"
	"github.com/OmatthewY/explore-with-me/stats/recorder"
	statsdto "github.com/OmatthewY/explore-with-me/stats/dto"

	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
	hits         recorder.HitRecorder
	app          string
}

func NewEventController(svc service.EventServiceInterface, hits recorder.HitRecorder, app string) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
		hits:           hits,
		app:            app,
	}
}

func (ctrl *EventController) PublicGetEvents(c echo.Context) error {
	p, appErr := publicParams(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	page, appErr := params.Page(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	events, appErr := ctrl.EventService.PublicGetEvents(c.Request().Context(), p, page)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	ctrl.recordHit(c)
	return ctrl.OK(c, events)
}

func (ctrl *EventController) PublicGetEventByID(c echo.Context) error {
	id, appErr := params.PathID(c, "id")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	event, appErr := ctrl.EventService.PublicGetEventByID(c.Request().Context(), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	ctrl.recordHit(c)
	return ctrl.OK(c, event)
}

func (ctrl *EventController) PrivateGetEvents(c echo.Context) error {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	page, appErr := params.Page(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	events, appErr := ctrl.EventService.PrivateGetEvents(c.Request().Context(), userID, page)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, events)
}

func (ctrl *EventController) PrivateCreateEvent(c echo.Context) error {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.NewEventRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(c, "invalid request body", err)
	}
	res := validation.Struct(req)
	if req.EventDate != nil && req.EventDate.Before(utils.Now()) {
		res.Add("eventDate", "must be a date in the future")
	}
	if res.HasError() {
		return ctrl.ErrorResponse(c, res.AppError())
	}

	event, appErr := ctrl.EventService.PrivateCreateEvent(c.Request().Context(), userID, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.Created(c, event)
}

func (ctrl *EventController) PrivateGetEvent(c echo.Context) error {
	userID, eventID, appErr := ownerPath(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	event, appErr := ctrl.EventService.PrivateGetEvent(c.Request().Context(), userID, eventID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, event)
}

func (ctrl *EventController) PrivateUpdateEvent(c echo.Context) error {
	userID, eventID, appErr := ownerPath(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.UpdateEventUserRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(c, "invalid request body", err)
	}
	if res := validation.Struct(req); res.HasError() {
		return ctrl.ErrorResponse(c, res.AppError())
	}

	event, appErr := ctrl.EventService.PrivateUpdateEvent(c.Request().Context(), userID, eventID, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, event)
}

func (ctrl *EventController) AdminGetEvents(c echo.Context) error {
	p, appErr := adminParams(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	page, appErr := params.Page(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	events, appErr := ctrl.EventService.AdminGetEvents(c.Request().Context(), p, page)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, events)
}

func (ctrl *EventController) AdminUpdateEvent(c echo.Context) error {
	eventID, appErr := params.PathID(c, "eventId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.UpdateEventAdminRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(c, "invalid request body", err)
	}
	if res := validation.Struct(req); res.HasError() {
		return ctrl.ErrorResponse(c, res.AppError())
	}

	event, appErr := ctrl.EventService.AdminUpdateEvent(c.Request().Context(), eventID, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, event)
}

// recordHit reports the call to the stats server. Failures never reach the
// caller.
func (ctrl *EventController) recordHit(c echo.Context) {
	if ctrl.hits == nil {
		return
	}
	hit := statsdto.EndpointHit{
		App:       ctrl.app,
		URI:       c.Request().URL.Path,
		IP:        c.RealIP(),
		Timestamp: utils.NewDateTime(utils.Now()),
	}
	ctx := context.WithoutCancel(c.Request().Context())
	if err := ctrl.hits.Record(ctx, hit); err != nil {
		logger.Warn("EventController:RecordHit:Failed", "uri", hit.URI, "ip", hit.IP, "error", err)
	}
}

func ownerPath(c echo.Context) (int64, int64, *errors.AppError) {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return 0, 0, appErr
	}
	eventID, appErr := params.PathID(c, "eventId")
	if appErr != nil {
		return 0, 0, appErr
	}
	return userID, eventID, nil
}

func publicParams(c echo.Context) (dto.PublicEventParams, *errors.AppError) {
	var p dto.PublicEventParams
	var appErr *errors.AppError

	p.Text = c.QueryParam("text")
	if p.Categories, appErr = params.IDs(c, "categories"); appErr != nil {
		return p, appErr
	}
	if p.Paid, appErr = params.OptionalBool(c, "paid"); appErr != nil {
		return p, appErr
	}
	if p.RangeStart, appErr = params.OptionalTime(c, "rangeStart"); appErr != nil {
		return p, appErr
	}
	if p.RangeEnd, appErr = params.OptionalTime(c, "rangeEnd"); appErr != nil {
		return p, appErr
	}
	available, appErr := params.OptionalBool(c, "onlyAvailable")
	if appErr != nil {
		return p, appErr
	}
	p.OnlyAvailable = available != nil && *available

	sort, ok := dto.ParseSortKey(c.QueryParam("sort"))
	if !ok {
		return p, errors.Newf(errors.ErrInvalidInput, "Unknown sort type: %s", c.QueryParam("sort"))
	}
	p.Sort = sort
	return p, nil
}

func adminParams(c echo.Context) (dto.AdminEventParams, *errors.AppError) {
	var p dto.AdminEventParams
	var appErr *errors.AppError

	if p.Users, appErr = params.IDs(c, "users"); appErr != nil {
		return p, appErr
	}
	p.States = params.Strings(c, "states")
	if p.Categories, appErr = params.IDs(c, "categories"); appErr != nil {
		return p, appErr
	}
	if p.RangeStart, appErr = params.OptionalTime(c, "rangeStart"); appErr != nil {
		return p, appErr
	}
	if p.RangeEnd, appErr = params.OptionalTime(c, "rangeEnd"); appErr != nil {
		return p, appErr
	}
	return p, nil
}
