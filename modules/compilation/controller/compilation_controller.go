package controller

import (
	"github.com/OmatthewY/explore-with-me/core/controller"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/validation"
	"github.com/OmatthewY/explore-with-me/modules/compilation/dto"
	"github.com/OmatthewY/explore-with-me/modules/compilation/service"

	"github.com/labstack/echo/v4"
)

type CompilationController struct {
	controller.BaseController
	CompilationService service.CompilationServiceInterface
}

func NewCompilationController(svc service.CompilationServiceInterface) *CompilationController {
	return &CompilationController{
		BaseController:     controller.NewBaseController(),
		CompilationService: svc,
	}
}

func (ctrl *CompilationController) AdminCreateCompilation(c echo.Context) error {
	req := new(dto.NewCompilationRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(c, "invalid request body", err)
	}
	if res := validation.Struct(req); res.HasError() {
		return ctrl.ErrorResponse(c, res.AppError())
	}

	compilation, appErr := ctrl.CompilationService.AdminCreateCompilation(c.Request().Context(), req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.Created(c, compilation)
}

func (ctrl *CompilationController) AdminUpdateCompilation(c echo.Context) error {
	id, appErr := params.PathID(c, "compId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	req := new(dto.UpdateCompilationRequest)
	if err := c.Bind(req); err != nil {
		return ctrl.BadRequest(c, "invalid request body", err)
	}
	if res := validation.Struct(req); res.HasError() {
		return ctrl.ErrorResponse(c, res.AppError())
	}

	compilation, appErr := ctrl.CompilationService.AdminUpdateCompilation(c.Request().Context(), id, req)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, compilation)
}

func (ctrl *CompilationController) AdminDeleteCompilation(c echo.Context) error {
	id, appErr := params.PathID(c, "compId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	if appErr := ctrl.CompilationService.AdminDeleteCompilation(c.Request().Context(), id); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.NoContent(c)
}

func (ctrl *CompilationController) PublicGetCompilations(c echo.Context) error {
	pinned, appErr := params.OptionalBool(c, "pinned")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	page, appErr := params.Page(c)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	compilations, appErr := ctrl.CompilationService.PublicGetCompilations(c.Request().Context(), pinned, page)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, compilations)
}

func (ctrl *CompilationController) PublicGetCompilationByID(c echo.Context) error {
	id, appErr := params.PathID(c, "compId")
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	compilation, appErr := ctrl.CompilationService.PublicGetCompilationByID(c.Request().Context(), id)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}
	return ctrl.OK(c, compilation)
}
