package controller

import (
	"github.com/OmatthewY/explore-with-me/core/controller"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/validation"
	"github.com/OmatthewY/explore-with-me/modules/category/dto"
	"github.com/OmatthewY/explore-with-me/modules/category/service"

	"github.com/labstack/echo/v4"
)

type CategoryController struct {
	controller.BaseController
	CategoryService service.CategoryServiceInterface
}

func NewCategoryController(svc service.CategoryServiceInterface) *CategoryController {
	return &CategoryController{
		BaseController:  controller.NewBaseController(),
		CategoryService: svc,
	}
}

func (ctrl *CategoryController) bindCategory(c echo.Context) (*dto.CategoryRequest, error) {
	req := new(dto.CategoryRequest)
	if err := c.Bind(req); err != nil {
		return nil, ctrl.BadRequest(c, "invalid request body", err)
	}
	if res := validation.Struct(req); res.HasError() {
		return nil, ctrl.ErrorResponse(c, res.AppError())
	}
	return req, nil
}

func (ctrl *CategoryController) AdminCreateCategory(c echo.Context) error {
	req, err := ctrl.bindCategory(c)
	if req == nil {
		return err
	}

	category, appErr := ctrl.CategoryService.AdminCreateCategory(c.Request().Context(), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.Created(c, category)
}

func (ctrl *CategoryController) AdminUpdateCategory(c echo.Context) error {
	id, appErr := params.PathID(c, "catId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	req, err := ctrl.bindCategory(c)
	if req == nil {
		return err
	}

	category, appErr := ctrl.CategoryService.AdminUpdateCategory(c.Request().Context(), id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, category)
}

func (ctrl *CategoryController) AdminDeleteCategory(c echo.Context) error {
	id, appErr := params.PathID(c, "catId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	if appErr := ctrl.CategoryService.AdminDeleteCategory(c.Request().Context(), id); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.NoContent(c)
}

func (ctrl *CategoryController) PublicGetCategories(c echo.Context) error {
	page, appErr := params.Page(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	categories, appErr := ctrl.CategoryService.PublicGetCategories(c.Request().Context(), page)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, categories)
}

func (ctrl *CategoryController) PublicGetCategoryByID(c echo.Context) error {
	id, appErr := params.PathID(c, "catId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	category, appErr := ctrl.CategoryService.PublicGetCategoryByID(c.Request().Context(), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, category)
}
