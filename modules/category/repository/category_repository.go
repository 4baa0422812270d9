package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/category/entity"
)

type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context, page params.PageParams) ([]entity.Category, error)
	HasEvents(ctx context.Context, id int64) (bool, error)
}

type CategoryRepository struct {
	DB database.IDatabase
}

func NewCategoryRepository(db database.IDatabase) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var created entity.Category
	err := r.DB.GetContext(ctx, &created,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, name`, category.Name)
	if err != nil {
		logger.Error("CategoryRepository:Create", "name", category.Name, "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var updated entity.Category
	err := r.DB.GetContext(ctx, &updated,
		`UPDATE categories SET name = $1 WHERE id = $2 RETURNING id, name`, category.Name, category.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CategoryRepository:Update", "id", category.ID, "error", err)
		return nil, err
	}
	return &updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		logger.Error("CategoryRepository:Delete", "id", id, "error", err)
		return err
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var category entity.Category
	err := r.DB.GetContext(ctx, &category, `SELECT id, name FROM categories WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CategoryRepository:GetByID", "id", id, "error", err)
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context, page params.PageParams) ([]entity.Category, error) {
	limit, args := database.LimitOffset(nil, page.Limit(), page.Offset())

	categories := []entity.Category{}
	if err := r.DB.SelectContext(ctx, &categories, `SELECT id, name FROM categories ORDER BY id`+limit, args...); err != nil {
		logger.Error("CategoryRepository:List", "error", err)
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) HasEvents(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.DB.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM events WHERE category_id = $1)`, id)
	if err != nil {
		logger.Error("CategoryRepository:HasEvents", "id", id, "error", err)
		return false, err
	}
	return exists, nil
}
