package category

import (
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/modules/category/controller"
	"github.com/OmatthewY/explore-with-me/modules/category/repository"
	"github.com/OmatthewY/explore-with-me/modules/category/router"
	"github.com/OmatthewY/explore-with-me/modules/category/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db *database.Database, mw *middleware.Middleware) {
	repo := repository.NewCategoryRepository(db)
	svc := service.NewCategoryService(repo, db)
	ctrl := controller.NewCategoryController(svc)

	router.NewCategoryRouter(ctrl).Setup(e, mw)
}
