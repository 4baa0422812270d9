package compilation

import (
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/modules/compilation/controller"
	"github.com/OmatthewY/explore-with-me/modules/compilation/repository"
	"github.com/OmatthewY/explore-with-me/modules/compilation/router"
	"github.com/OmatthewY/explore-with-me/modules/compilation/service"
	eventrepo "github.com/OmatthewY/explore-with-me/modules/event/repository"
	eventservice "github.com/OmatthewY/explore-with-me/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init wires the compilation endpoints. Events inside compilations are
// enriched by the event module's enricher.
func Init(e *echo.Echo, db *database.Database, mw *middleware.Middleware, enricher *eventservice.Enricher) {
	svc := service.NewCompilationService(
		repository.NewCompilationRepository(db),
		eventrepo.NewEventRepository(db),
		enricher,
		db,
	)
	ctrl := controller.NewCompilationController(svc)

	router.NewCompilationRouter(ctrl).Setup(e, mw)
}
