package user

import (
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/modules/user/controller"
	"github.com/OmatthewY/explore-with-me/modules/user/repository"
	"github.com/OmatthewY/explore-with-me/modules/user/router"
	"github.com/OmatthewY/explore-with-me/modules/user/service"

	"github.com/labstack/echo/v4"
)

// Init wires the admin user endpoints.
func Init(e *echo.Echo, db *database.Database, mw *middleware.Middleware) {
	repo := repository.NewUserRepository(db)
	svc := service.NewUserService(repo, db)
	ctrl := controller.NewUserController(svc)

	router.NewUserRouter(ctrl).Setup(e, mw)
}
