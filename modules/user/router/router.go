package router

import (
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/modules/user/controller"

	"github.com/labstack/echo/v4"
)

type UserRouter struct {
	UserController *controller.UserController
}

func NewUserRouter(ctrl *controller.UserController) *UserRouter {
	return &UserRouter{UserController: ctrl}
}

func (r *UserRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	admin := e.Group("/admin/users", mw.AdminAuth())
	admin.GET("", r.UserController.AdminGetUsers)
	admin.POST("", r.UserController.AdminCreateUser)
	admin.DELETE("/:userId", r.UserController.AdminDeleteUser)
}
