package request

import (
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/middleware"
	eventrepo "github.com/OmatthewY/explore-with-me/modules/event/repository"
	"github.com/OmatthewY/explore-with-me/modules/request/controller"
	"github.com/OmatthewY/explore-with-me/modules/request/repository"
	"github.com/OmatthewY/explore-with-me/modules/request/router"
	"github.com/OmatthewY/explore-with-me/modules/request/service"
	userrepo "github.com/OmatthewY/explore-with-me/modules/user/repository"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db *database.Database, mw *middleware.Middleware) {
	svc := service.NewRequestService(
		repository.NewRequestRepository(db),
		eventrepo.NewEventRepository(db),
		userrepo.NewUserRepository(db),
		db,
	)
	ctrl := controller.NewRequestController(svc)

	router.NewRequestRouter(ctrl).Setup(e, mw)
}
