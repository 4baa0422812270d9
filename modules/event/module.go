package event

import (
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/middleware"
	categoryrepo "github.com/OmatthewY/explore-with-me/modules/category/repository"
	"github.com/OmatthewY/explore-with-me/modules/event/controller"
	"github.com/OmatthewY/explore-with-me/modules/event/repository"
	"github.com/OmatthewY/explore-with-me/modules/event/router"
	"github.com/OmatthewY/explore-with-me/modules/event/service"
	ratingrepo "github.com/OmatthewY/explore-with-me/modules/rating/repository"
	requestrepo "github.com/OmatthewY/explore-with-me/modules/request/repository"
	userrepo "github.com/OmatthewY/explore-with-me/modules/user/repository"
	"github.com/OmatthewY/explore-with-me/stats/client"
	"github.com/OmatthewY/explore-with-me/stats/recorder"

	"github.com/labstack/echo/v4"
)

// Deps are the stats collaborators of the event endpoints.
type Deps struct {
	Stats client.StatsGetter
	Hits  recorder.HitRecorder
	App   string
}

// Init wires the public, private and admin event endpoints and returns the
// service so other modules can reuse its enricher.
func Init(e *echo.Echo, db *database.Database, mw *middleware.Middleware, deps Deps) *service.EventService {
	svc := service.NewEventService(
		repository.NewEventRepository(db),
		categoryrepo.NewCategoryRepository(db),
		userrepo.NewUserRepository(db),
		requestrepo.NewRequestRepository(db),
		ratingrepo.NewRatingRepository(db),
		deps.Stats,
		deps.App,
		db,
	)
	ctrl := controller.NewEventController(svc, deps.Hits, deps.App)

	router.NewEventRouter(ctrl).Setup(e, mw)
	return svc
}
