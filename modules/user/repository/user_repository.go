package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/user/entity"

	"github.com/lib/pq"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	List(ctx context.Context, ids []int64, page params.PageParams) ([]entity.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type UserRepository struct {
	DB database.IDatabase
}

func NewUserRepository(db database.IDatabase) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email
	`
	var created entity.User
	if err := r.DB.GetContext(ctx, &created, query, user.Name, user.Email); err != nil {
		logger.Error("UserRepository:Create", "email", user.Email, "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := r.DB.GetContext(ctx, &user, `SELECT id, name, email FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID", "id", id, "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, ids []int64, page params.PageParams) ([]entity.User, error) {
	where := database.NewWhere()
	if len(ids) > 0 {
		where.And(database.AnyOf("id", pq.Array(ids)))
	}
	clause, args := where.Build(1)

	limit, args := database.LimitOffset(args, page.Limit(), page.Offset())
	query := `SELECT id, name, email FROM users` + clause + ` ORDER BY id` + limit

	users := []entity.User{}
	if err := r.DB.SelectContext(ctx, &users, query, args...); err != nil {
		logger.Error("UserRepository:List", "error", err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Error("UserRepository:Delete", "id", id, "error", err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
