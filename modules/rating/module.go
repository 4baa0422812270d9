package rating

import (
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/middleware"
	eventrepo "github.com/OmatthewY/explore-with-me/modules/event/repository"
	"github.com/OmatthewY/explore-with-me/modules/rating/controller"
	"github.com/OmatthewY/explore-with-me/modules/rating/repository"
	"github.com/OmatthewY/explore-with-me/modules/rating/router"
	"github.com/OmatthewY/explore-with-me/modules/rating/service"
	userrepo "github.com/OmatthewY/explore-with-me/modules/user/repository"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db *database.Database, mw *middleware.Middleware) {
	svc := service.NewRatingService(
		repository.NewRatingRepository(db),
		eventrepo.NewEventRepository(db),
		userrepo.NewUserRepository(db),
		db,
	)
	ctrl := controller.NewRatingController(svc)

	router.NewRatingRouter(ctrl).Setup(e, mw)
}
