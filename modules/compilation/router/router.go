package router

import (
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/modules/compilation/controller"

	"github.com/labstack/echo/v4"
)

type CompilationRouter struct {
	CompilationController *controller.CompilationController
}

func NewCompilationRouter(ctrl *controller.CompilationController) *CompilationRouter {
	return &CompilationRouter{CompilationController: ctrl}
}

func (r *CompilationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	admin := e.Group("/admin/compilations", mw.AdminAuth())
	admin.POST("", r.CompilationController.AdminCreateCompilation)
	admin.PATCH("/:compId", r.CompilationController.AdminUpdateCompilation)
	admin.DELETE("/:compId", r.CompilationController.AdminDeleteCompilation)

	public := e.Group("/compilations")
	public.GET("", r.CompilationController.PublicGetCompilations)
	public.GET("/:compId", r.CompilationController.PublicGetCompilationByID)
}
