package service

import (
	"context"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/user/dto"
	"github.com/OmatthewY/explore-with-me/modules/user/mapper"
	"github.com/OmatthewY/explore-with-me/modules/user/repository"
)

type UserServiceInterface interface {
	AdminGetUsers(ctx context.Context, ids []int64, page params.PageParams) ([]dto.UserResponse, *errors.AppError)
	AdminCreateUser(ctx context.Context, req *dto.NewUserRequest) (*dto.UserResponse, *errors.AppError)
	AdminDeleteUser(ctx context.Context, id int64) *errors.AppError
}

type UserService struct {
	repo repository.UserRepositoryInterface
	tx   database.Transactor
}

func NewUserService(repo repository.UserRepositoryInterface, tx database.Transactor) UserServiceInterface {
	return &UserService{repo: repo, tx: tx}
}

func (s *UserService) AdminGetUsers(ctx context.Context, ids []int64, page params.PageParams) ([]dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	users, err := s.repo.List(ctx, ids, page)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get users failed", err)
	}
	return mapper.ToUserResponses(users), nil
}

func (s *UserService) AdminCreateUser(ctx context.Context, req *dto.NewUserRequest) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var created *dto.UserResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		user, err := s.repo.Create(ctx, mapper.ToUserEntity(req))
		if err != nil {
			if database.IsUniqueViolation(err) {
				return errors.Newf(errors.ErrConflict, "user with email %s already exists", req.Email)
			}
			return errors.NewAppError(errors.ErrCreateFailed, "create user failed", err)
		}
		created = mapper.ToUserResponse(user)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("UserService:AdminCreateUser:Created", "id", created.ID)
	return created, nil
}

func (s *UserService) AdminDeleteUser(ctx context.Context, id int64) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		deleted, err := s.repo.Delete(ctx, id)
		if err != nil {
			return errors.NewAppError(errors.ErrDeleteFailed, "delete user failed", err)
		}
		if !deleted {
			return errors.Newf(errors.ErrNotFound, "User with id=%d was not found", id)
		}
		return nil
	})
	if err != nil {
		return errors.From(err)
	}

	logger.Info("UserService:AdminDeleteUser:Deleted", "id", id)
	return nil
}
