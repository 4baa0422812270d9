package controller

import (
	"github.com/OmatthewY/explore-with-me/core/controller"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/validation"
	"github.com/OmatthewY/explore-with-me/modules/user/dto"
	"github.com/OmatthewY/explore-with-me/modules/user/service"

	"github.com/labstack/echo/v4"
)

type UserController struct {
	controller.BaseController
	UserService service.UserServiceInterface
}

func NewUserController(svc service.UserServiceInterface) *UserController {
	return &UserController{
		BaseController: controller.NewBaseController(),
		UserService:    svc,
	}
}

// AdminGetUsers handles GET /admin/users?ids&from&size.
func (ctrl *UserController) AdminGetUsers(c echo.Context) error {
	ids, appErr := params.IDs(c, "ids")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	page, appErr := params.Page(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	users, appErr := ctrl.UserService.AdminGetUsers(c.Request().Context(), ids, page)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, users)
}

// AdminCreateUser handles POST /admin/users.
func (ctrl *UserController) AdminCreateUser(c echo.Context) error {
	req := new(dto.NewUserRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(c, "invalid request body", err)
	}
	if res := validation.Struct(req); res.HasError() {
		return ctrl.ErrorResponse(c, res.AppError())
	}

	user, appErr := ctrl.UserService.AdminCreateUser(c.Request().Context(), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.Created(c, user)
}

// AdminDeleteUser handles DELETE /admin/users/:userId.
func (ctrl *UserController) AdminDeleteUser(c echo.Context) error {
	id, appErr := params.PathID(c, "userId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	if appErr := ctrl.UserService.AdminDeleteUser(c.Request().Context(), id); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.NoContent(c)
}
