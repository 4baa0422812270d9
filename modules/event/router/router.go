package router

import (
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	EventController *controller.EventController
}

func NewEventRouter(ctrl *controller.EventController) *EventRouter {
	return &EventRouter{EventController: ctrl}
}

func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	public := e.Group("/events")
	public.GET("", r.EventController.PublicGetEvents)
	public.GET("/:id", r.EventController.PublicGetEventByID)

	private := e.Group("/users/:userId/events")
	private.GET("", r.EventController.PrivateGetEvents)
	private.POST("", r.EventController.PrivateCreateEvent)
	private.GET("/:eventId", r.EventController.PrivateGetEvent)
	private.PATCH("/:eventId", r.EventController.PrivateUpdateEvent)

	admin := e.Group("/admin/events", mw.AdminAuth())
	admin.GET("", r.EventController.AdminGetEvents)
	admin.PATCH("/:eventId", r.EventController.AdminUpdateEvent)
}
