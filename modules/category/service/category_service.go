package service

import (
	"context"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/category/dto"
	"github.com/OmatthewY/explore-with-me/modules/category/entity"
	"github.com/OmatthewY/explore-with-me/modules/category/mapper"
	"github.com/OmatthewY/explore-with-me/modules/category/repository"
)

type CategoryServiceInterface interface {
	AdminCreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, *errors.AppError)
	AdminUpdateCategory(ctx context.Context, id int64, req *dto.CategoryRequest) (*dto.CategoryResponse, *errors.AppError)
	AdminDeleteCategory(ctx context.Context, id int64) *errors.AppError
	PublicGetCategories(ctx context.Context, page params.PageParams) ([]dto.CategoryResponse, *errors.AppError)
	PublicGetCategoryByID(ctx context.Context, id int64) (*dto.CategoryResponse, *errors.AppError)
}

type CategoryService struct {
	repo repository.CategoryRepositoryInterface
	tx   database.Transactor
}

func NewCategoryService(repo repository.CategoryRepositoryInterface, tx database.Transactor) CategoryServiceInterface {
	return &CategoryService{repo: repo, tx: tx}
}

func (s *CategoryService) AdminCreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.CategoryResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		created, err := s.repo.Create(ctx, mapper.ToCategoryEntity(req))
		if err != nil {
			return categoryWriteError(err, req.Name)
		}
		result = mapper.ToCategoryResponse(created)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("CategoryService:AdminCreateCategory:Created", "id", result.ID, "name", result.Name)
	return result, nil
}

func (s *CategoryService) AdminUpdateCategory(ctx context.Context, id int64, req *dto.CategoryRequest) (*dto.CategoryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.CategoryResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		category := mapper.ToCategoryEntity(req)
		category.ID = id

		updated, err := s.repo.Update(ctx, category)
		if err != nil {
			return categoryWriteError(err, req.Name)
		}
		if updated == nil {
			return notFound(id)
		}
		result = mapper.ToCategoryResponse(updated)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}
	return result, nil
}

func (s *CategoryService) AdminDeleteCategory(ctx context.Context, id int64) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		if _, err := s.mustGet(ctx, id); err != nil {
			return err
		}

		inUse, err := s.repo.HasEvents(ctx, id)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "check category events failed", err)
		}
		if inUse {
			return errors.Newf(errors.ErrConflict, "The category with id=%d is not empty", id)
		}

		if err := s.repo.Delete(ctx, id); err != nil {
			if database.IsConstraintViolation(err) {
				return errors.Newf(errors.ErrConflict, "The category with id=%d is not empty", id)
			}
			return errors.NewAppError(errors.ErrDeleteFailed, "delete category failed", err)
		}
		return nil
	})
	if err != nil {
		return errors.From(err)
	}

	logger.Info("CategoryService:AdminDeleteCategory:Deleted", "id", id)
	return nil
}

func (s *CategoryService) PublicGetCategories(ctx context.Context, page params.PageParams) ([]dto.CategoryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	categories, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get categories failed", err)
	}
	return mapper.ToCategoryResponses(categories), nil
}

func (s *CategoryService) PublicGetCategoryByID(ctx context.Context, id int64) (*dto.CategoryResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	category, appErr := s.mustGet(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToCategoryResponse(category), nil
}

func (s *CategoryService) mustGet(ctx context.Context, id int64) (*entity.Category, *errors.AppError) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get category failed", err)
	}
	if category == nil {
		return nil, notFound(id)
	}
	return category, nil
}

func notFound(id int64) *errors.AppError {
	return errors.Newf(errors.ErrNotFound, "Category with id=%d was not found", id)
}

func categoryWriteError(err error, name string) *errors.AppError {
	if database.IsUniqueViolation(err) {
		return errors.Newf(errors.ErrConflict, "category with name %s already exists", name)
	}
	return errors.NewAppError(errors.ErrUpdateFailed, "save category failed", err)
}
