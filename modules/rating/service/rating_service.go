package service

import (
	"context"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/core/utils"
	evententity "github.com/OmatthewY/explore-with-me/modules/event/entity"
	"github.com/OmatthewY/explore-with-me/modules/rating/dto"
	"github.com/OmatthewY/explore-with-me/modules/rating/entity"
	"github.com/OmatthewY/explore-with-me/modules/rating/mapper"
	"github.com/OmatthewY/explore-with-me/modules/rating/repository"
	userentity "github.com/OmatthewY/explore-with-me/modules/user/entity"
)

type EventReader interface {
	GetByID(ctx context.Context, id int64) (*evententity.Event, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*userentity.User, error)
}

type RatingServiceInterface interface {
	GetUserRatings(ctx context.Context, userID int64, page params.PageParams) ([]dto.RatingResponse, *errors.AppError)
	AddRating(ctx context.Context, userID, eventID int64, isLike bool) (*dto.RatingResponse, *errors.AppError)
	RemoveRating(ctx context.Context, userID, eventID int64, isLike bool) *errors.AppError
}

type RatingService struct {
	repo   repository.RatingRepositoryInterface
	events EventReader
	users  UserReader
	tx     database.Transactor
}

func NewRatingService(repo repository.RatingRepositoryInterface, events EventReader, users UserReader, tx database.Transactor) RatingServiceInterface {
	return &RatingService{repo: repo, events: events, users: users, tx: tx}
}

func (s *RatingService) GetUserRatings(ctx context.Context, userID int64, page params.PageParams) ([]dto.RatingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result []dto.RatingResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		if appErr := s.ensureUser(ctx, userID); appErr != nil {
			return appErr
		}
		ratings, err := s.repo.FindByUser(ctx, userID, page)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get ratings failed", err)
		}
		result = mapper.ToRatingResponses(ratings)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}
	return result, nil
}

func (s *RatingService) AddRating(ctx context.Context, userID, eventID int64, isLike bool) (*dto.RatingResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.RatingResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		if appErr := s.checkRateable(ctx, userID, eventID); appErr != nil {
			return appErr
		}

		saved, err := s.repo.Upsert(ctx, &entity.Rating{
			UserID:  userID,
			EventID: eventID,
			Value:   entity.ValueOf(isLike),
			Created: utils.Now(),
		})
		if err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "save rating failed", err)
		}
		result = mapper.ToRatingResponse(saved)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("RatingService:AddRating:Saved", "user_id", userID, "event_id", eventID, "is_like", isLike)
	return result, nil
}

func (s *RatingService) RemoveRating(ctx context.Context, userID, eventID int64, isLike bool) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		if appErr := s.ensureUser(ctx, userID); appErr != nil {
			return appErr
		}
		if _, appErr := s.getEvent(ctx, eventID); appErr != nil {
			return appErr
		}

		deleted, err := s.repo.Delete(ctx, userID, eventID, entity.ValueOf(isLike))
		if err != nil {
			return errors.NewAppError(errors.ErrDeleteFailed, "delete rating failed", err)
		}
		if !deleted {
			return errors.Newf(errors.ErrNotFound,
				"Rating of user with id=%d for event with id=%d was not found", userID, eventID)
		}
		return nil
	})
	if err != nil {
		return errors.From(err)
	}

	logger.Info("RatingService:RemoveRating:Deleted", "user_id", userID, "event_id", eventID, "is_like", isLike)
	return nil
}

// checkRateable allows votes on published events of other users only.
func (s *RatingService) checkRateable(ctx context.Context, userID, eventID int64) *errors.AppError {
	if appErr := s.ensureUser(ctx, userID); appErr != nil {
		return appErr
	}
	event, appErr := s.getEvent(ctx, eventID)
	if appErr != nil {
		return appErr
	}
	if event.InitiatorID == userID {
		return errors.Newf(errors.ErrConflict, "Initiator cannot rate own event with id=%d", eventID)
	}
	if event.State != evententity.StatePublished {
		return errors.Newf(errors.ErrConflict, "Event with id=%d is not published", eventID)
	}
	return nil
}

func (s *RatingService) getEvent(ctx context.Context, id int64) (*evententity.Event, *errors.AppError) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get event failed", err)
	}
	if event == nil {
		return nil, errors.Newf(errors.ErrNotFound, "Event with id=%d was not found", id)
	}
	return event, nil
}

func (s *RatingService) ensureUser(ctx context.Context, id int64) *errors.AppError {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return errors.Newf(errors.ErrNotFound, "User with id=%d was not found", id)
	}
	return nil
}
