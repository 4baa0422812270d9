package router

import (
	"github.com/OmatthewY/explore-with-me/core/middleware"
	"github.com/OmatthewY/explore-with-me/modules/category/controller"

	"github.com/labstack/echo/v4"
)

type CategoryRouter struct {
	CategoryController *controller.CategoryController
}

func NewCategoryRouter(ctrl *controller.CategoryController) *CategoryRouter {
	return &CategoryRouter{CategoryController: ctrl}
}

func (r *CategoryRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	admin := e.Group("/admin/categories", mw.AdminAuth())
	admin.POST("", r.CategoryController.AdminCreateCategory)
	admin.PATCH("/:catId", r.CategoryController.AdminUpdateCategory)
	admin.DELETE("/:catId", r.CategoryController.AdminDeleteCategory)

	public := e.Group("/categories")
	public.GET("", r.CategoryController.PublicGetCategories)
	public.GET("/:catId", r.CategoryController.PublicGetCategoryByID)
}
