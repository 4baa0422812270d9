package controller

import (
	"github.com/OmatthewY/explore-with-me/core/controller"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/rating/service"

	"github.com/labstack/echo/v4"
)

type RatingController struct {
	controller.BaseController
	RatingService service.RatingServiceInterface
}

func NewRatingController(svc service.RatingServiceInterface) *RatingController {
	return &RatingController{
		BaseController: controller.NewBaseController(),
		RatingService:  svc,
	}
}

func (ctrl *RatingController) GetUserRatings(c echo.Context) error {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	page, appErr := params.Page(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	ratings, appErr := ctrl.RatingService.GetUserRatings(c.Request().Context(), userID, page)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, ratings)
}

func (ctrl *RatingController) AddRating(c echo.Context) error {
	userID, eventID, isLike, appErr := voteParams(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	rating, appErr := ctrl.RatingService.AddRating(c.Request().Context(), userID, eventID, isLike)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, rating)
}

func (ctrl *RatingController) RemoveRating(c echo.Context) error {
	userID, eventID, isLike, appErr := voteParams(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	if appErr := ctrl.RatingService.RemoveRating(c.Request().Context(), userID, eventID, isLike); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.NoContent(c)
}

func voteParams(c echo.Context) (int64, int64, bool, *errors.AppError) {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return 0, 0, false, appErr
	}
	eventID, appErr := params.RequiredID(c, "eventId")
	if appErr != nil {
		return 0, 0, false, appErr
	}
	isLike, appErr := params.RequiredBool(c, "isLike")
	if appErr != nil {
		return 0, 0, false, appErr
	}
	return userID, eventID, isLike, nil
}
