package controller

import (
	"github.com/OmatthewY/explore-with-me/core/controller"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/validation"
	"github.com/OmatthewY/explore-with-me/modules/request/dto"
	"github.com/OmatthewY/explore-with-me/modules/request/service"

	"github.com/labstack/echo/v4"
)

type RequestController struct {
	controller.BaseController
	RequestService service.RequestServiceInterface
}

func NewRequestController(svc service.RequestServiceInterface) *RequestController {
	return &RequestController{
		BaseController: controller.NewBaseController(),
		RequestService: svc,
	}
}

func (ctrl *RequestController) GetUserRequests(c echo.Context) error {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	requests, appErr := ctrl.RequestService.PrivateGetUserRequests(c.Request().Context(), userID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, requests)
}

func (ctrl *RequestController) CreateRequest(c echo.Context) error {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	eventID, appErr := params.RequiredID(c, "eventId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	request, appErr := ctrl.RequestService.PrivateCreateRequest(c.Request().Context(), userID, eventID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.Created(c, request)
}

func (ctrl *RequestController) CancelRequest(c echo.Context) error {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	requestID, appErr := params.PathID(c, "requestId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	request, appErr := ctrl.RequestService.PrivateCancelRequest(c.Request().Context(), userID, requestID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, request)
}

func (ctrl *RequestController) GetEventRequests(c echo.Context) error {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	eventID, appErr := params.PathID(c, "eventId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	requests, appErr := ctrl.RequestService.PrivateGetEventRequests(c.Request().Context(), userID, eventID)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, requests)
}

func (ctrl *RequestController) UpdateRequestStatus(c echo.Context) error {
	userID, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	eventID, appErr := params.PathID(c, "eventId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.StatusUpdateRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(c, "invalid request body", err)
	}
	if res := validation.Struct(req); res.HasError() {
		return ctrl.ErrorResponse(c, res.AppError())
	}

	result, appErr := ctrl.RequestService.PrivateUpdateRequestStatus(c.Request().Context(), userID, eventID, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, result)
}
