package router

import (
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/modules/request/controller"

	"github.com/labstack/echo/v4"
)

type RequestRouter struct {
	RequestController *controller.RequestController
}

func NewRequestRouter(ctrl *controller.RequestController) *RequestRouter {
	return &RequestRouter{RequestController: ctrl}
}

func (r *RequestRouter) Setup(e *echo.Echo, _ *middleware.Middleware) {
	own := e.Group("/users/:userId/requests")
	own.GET("", r.RequestController.GetUserRequests)
	own.POST("", r.RequestController.CreateRequest)
	own.PATCH("/:requestId/cancel", r.RequestController.CancelRequest)

	event := e.Group("/users/:userId/events/:eventId/requests")
	event.GET("", r.RequestController.GetEventRequests)
	event.PATCH("", r.RequestController.UpdateRequestStatus)
}
