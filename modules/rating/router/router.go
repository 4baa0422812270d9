package router

import (
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/modules/rating/controller"

	"github.com/labstack/echo/v4"
)

type RatingRouter struct {
	RatingController *controller.RatingController
}

func NewRatingRouter(ctrl *controller.RatingController) *RatingRouter {
	return &RatingRouter{RatingController: ctrl}
}

func (r *RatingRouter) Setup(e *echo.Echo, _ *middleware.Middleware) {
	ratings := e.Group("/users/:userId/ratings")
	ratings.GET("", r.RatingController.GetUserRatings)
	ratings.PATCH("/add", r.RatingController.AddRating)
	ratings.DELETE("/remove", r.RatingController.RemoveRating)
}
