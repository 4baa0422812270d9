package service

import (
	"context"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/utils"
	evententity "github.com/OmatthewY/explore-with-me/modules/event/entity"
	"github.com/OmatthewY/explore-with-me/modules/request/dto"
	"github.com/OmatthewY/explore-with-me/modules/request/entity"
	"github.com/OmatthewY/explore-with-me/modules/request/mapper"
	"github.com/OmatthewY/explore-with-me/modules/request/repository"
	userentity "github.com/OmatthewY/explore-with-me/modules/user/entity"
)

type EventReader interface {
	GetByID(ctx context.Context, id int64) (*evententity.Event, error)
	// Lock serializes writers that check the participant limit of one event.
	Lock(ctx context.Context, id int64) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*userentity.User, error)
}

type RequestServiceInterface interface {
	PrivateGetUserRequests(ctx context.Context, userID int64) ([]dto.ParticipationRequestResponse, *errors.AppError)
	PrivateCreateRequest(ctx context.Context, userID, eventID int64) (*dto.ParticipationRequestResponse, *errors.AppError)
	PrivateCancelRequest(ctx context.Context, userID, requestID int64) (*dto.ParticipationRequestResponse, *errors.AppError)
	PrivateGetEventRequests(ctx context.Context, userID, eventID int64) ([]dto.ParticipationRequestResponse, *errors.AppError)
	PrivateUpdateRequestStatus(ctx context.Context, userID, eventID int64, req *dto.StatusUpdateRequest) (*dto.StatusUpdateResult, *errors.AppError)
}

type RequestService struct {
	repo   repository.RequestRepositoryInterface
	events EventReader
	users  UserReader
	tx     database.Transactor
}

func NewRequestService(repo repository.RequestRepositoryInterface, events EventReader, users UserReader, tx database.Transactor) RequestServiceInterface {
	return &RequestService{repo: repo, events: events, users: users, tx: tx}
}

func (s *RequestService) PrivateGetUserRequests(ctx context.Context, userID int64) ([]dto.ParticipationRequestResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result []dto.ParticipationRequestResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		if appErr := s.ensureUser(ctx, userID); appErr != nil {
			return appErr
		}
		requests, err := s.repo.FindByRequester(ctx, userID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get requests failed", err)
		}
		result = mapper.ToRequestResponses(requests)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}
	return result, nil
}

func (s *RequestService) PrivateCreateRequest(ctx context.Context, userID, eventID int64) (*dto.ParticipationRequestResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.ParticipationRequestResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		if appErr := s.ensureUser(ctx, userID); appErr != nil {
			return appErr
		}
		event, appErr := s.lockEvent(ctx, eventID)
		if appErr != nil {
			return appErr
		}

		if event.InitiatorID == userID {
			return errors.Newf(errors.ErrConflict, "Initiator of event with id=%d cannot request participation", eventID)
		}
		if event.State != evententity.StatePublished {
			return errors.Newf(errors.ErrConflict, "Event with id=%d is not published", eventID)
		}

		exists, err := s.repo.ExistsActive(ctx, userID, eventID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "check existing request failed", err)
		}
		if exists {
			return errors.Newf(errors.ErrConflict,
				"Request of user with id=%d for event with id=%d already exists", userID, eventID)
		}

		if event.ParticipantLimit > 0 {
			confirmed, err := s.repo.CountConfirmed(ctx, eventID)
			if err != nil {
				return errors.NewAppError(errors.ErrGetFailed, "count confirmed requests failed", err)
			}
			if confirmed >= int64(event.ParticipantLimit) {
				return errors.Newf(errors.ErrConflict, "Participant limit of event with id=%d has been reached", eventID)
			}
		}

		status := entity.StatusPending
		if !event.RequestModeration || event.ParticipantLimit == 0 {
			status = entity.StatusConfirmed
		}

		created, err := s.repo.Create(ctx, &entity.Request{
			RequesterID: userID,
			EventID:     eventID,
			Status:      status,
			Created:     utils.Now(),
		})
		if err != nil {
			if database.IsUniqueViolation(err) {
				return errors.Newf(errors.ErrConflict,
					"Request of user with id=%d for event with id=%d already exists", userID, eventID)
			}
			return errors.NewAppError(errors.ErrCreateFailed, "create request failed", err)
		}
		result = mapper.ToRequestResponse(created)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("RequestService:PrivateCreateRequest:Created",
		"id", result.ID, "event_id", eventID, "requester_id", userID, "status", result.Status)
	return result, nil
}

func (s *RequestService) PrivateCancelRequest(ctx context.Context, userID, requestID int64) (*dto.ParticipationRequestResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.ParticipationRequestResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		if appErr := s.ensureUser(ctx, userID); appErr != nil {
			return appErr
		}
		req, err := s.repo.GetByID(ctx, requestID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get request failed", err)
		}
		if req == nil {
			return errors.Newf(errors.ErrNotFound, "Request with id=%d was not found", requestID)
		}
		if req.RequesterID != userID {
			return errors.Newf(errors.ErrConflict,
				"User with id=%d is not the requester of request with id=%d", userID, requestID)
		}

		if err := s.repo.UpdateStatus(ctx, []int64{requestID}, entity.StatusCanceled); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "cancel request failed", err)
		}
		req.Status = entity.StatusCanceled
		result = mapper.ToRequestResponse(req)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("RequestService:PrivateCancelRequest:Canceled", "id", requestID)
	return result, nil
}

func (s *RequestService) PrivateGetEventRequests(ctx context.Context, userID, eventID int64) ([]dto.ParticipationRequestResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result []dto.ParticipationRequestResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		if _, appErr := s.ownedEvent(ctx, userID, eventID, false); appErr != nil {
			return appErr
		}
		requests, err := s.repo.FindByEvent(ctx, eventID)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get event requests failed", err)
		}
		result = mapper.ToRequestResponses(requests)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}
	return result, nil
}

func (s *RequestService) PrivateUpdateRequestStatus(ctx context.Context, userID, eventID int64, req *dto.StatusUpdateRequest) (*dto.StatusUpdateResult, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	target := entity.Status(req.Status)
	result := &dto.StatusUpdateResult{
		ConfirmedRequests: []dto.ParticipationRequestResponse{},
		RejectedRequests:  []dto.ParticipationRequestResponse{},
	}
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		event, appErr := s.ownedEvent(ctx, userID, eventID, true)
		if appErr != nil {
			return appErr
		}

		requests, err := s.repo.FindByIDs(ctx, req.RequestIDs)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get requests failed", err)
		}
		if appErr := checkBatch(requests, req.RequestIDs, eventID); appErr != nil {
			return appErr
		}

		switch target {
		case entity.StatusRejected:
			changed, appErr := s.reject(ctx, requests)
			if appErr != nil {
				return appErr
			}
			result.RejectedRequests = mapper.ToRequestResponses(changed)
		case entity.StatusConfirmed:
			changed, appErr := s.confirm(ctx, event, requests)
			if appErr != nil {
				return appErr
			}
			result.ConfirmedRequests = mapper.ToRequestResponses(changed)
		}
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("RequestService:PrivateUpdateRequestStatus:Updated",
		"event_id", eventID, "status", target,
		"confirmed", len(result.ConfirmedRequests), "rejected", len(result.RejectedRequests))
	return result, nil
}

// reject requires every request of the batch to be pending.
func (s *RequestService) reject(ctx context.Context, requests []entity.Request) ([]entity.Request, *errors.AppError) {
	for i := range requests {
		if requests[i].Status != entity.StatusPending {
			return nil, errors.Newf(errors.ErrConflict,
				"Request with status %s cannot be rejected, only pending requests can", requests[i].Status)
		}
	}
	return s.setStatus(ctx, requests, entity.StatusRejected)
}

// confirm checks the participant limit once for the whole batch and
// confirms the pending requests in it. Other requests are skipped.
func (s *RequestService) confirm(ctx context.Context, event *evententity.Event, requests []entity.Request) ([]entity.Request, *errors.AppError) {
	pending := make([]entity.Request, 0, len(requests))
	for i := range requests {
		if requests[i].Status == entity.StatusPending {
			pending = append(pending, requests[i])
		}
	}

	if event.ParticipantLimit > 0 {
		confirmed, err := s.repo.CountConfirmed(ctx, event.ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrGetFailed, "count confirmed requests failed", err)
		}
		limit := int64(event.ParticipantLimit)
		if confirmed >= limit || confirmed+int64(len(pending)) > limit {
			return nil, errors.Newf(errors.ErrConflict, "Participant limit of event with id=%d has been reached", event.ID)
		}
	}
	return s.setStatus(ctx, pending, entity.StatusConfirmed)
}

func (s *RequestService) setStatus(ctx context.Context, requests []entity.Request, status entity.Status) ([]entity.Request, *errors.AppError) {
	ids := make([]int64, len(requests))
	for i := range requests {
		ids[i] = requests[i].ID
		requests[i].Status = status
	}
	if err := s.repo.UpdateStatus(ctx, ids, status); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "update request status failed", err)
	}
	return requests, nil
}

// ownedEvent loads the event and checks userID initiated it. With lock set
// the event row is held until the transaction ends.
func (s *RequestService) ownedEvent(ctx context.Context, userID, eventID int64, lock bool) (*evententity.Event, *errors.AppError) {
	if appErr := s.ensureUser(ctx, userID); appErr != nil {
		return nil, appErr
	}

	var event *evententity.Event
	var appErr *errors.AppError
	if lock {
		event, appErr = s.lockEvent(ctx, eventID)
	} else {
		event, appErr = s.getEvent(ctx, eventID)
	}
	if appErr != nil {
		return nil, appErr
	}

	if event.InitiatorID != userID {
		return nil, errors.Newf(errors.ErrNotFound,
			"Event with id=%d and initiatorId=%d was not found", eventID, userID)
	}
	return event, nil
}

func (s *RequestService) lockEvent(ctx context.Context, id int64) (*evententity.Event, *errors.AppError) {
	if err := s.events.Lock(ctx, id); err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "lock event failed", err)
	}
	return s.getEvent(ctx, id)
}

func (s *RequestService) getEvent(ctx context.Context, id int64) (*evententity.Event, *errors.AppError) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get event failed", err)
	}
	if event == nil {
		return nil, errors.Newf(errors.ErrNotFound, "Event with id=%d was not found", id)
	}
	return event, nil
}

func (s *RequestService) ensureUser(ctx context.Context, id int64) *errors.AppError {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrGetFailed, "get user failed", err)
	}
	if user == nil {
		return errors.Newf(errors.ErrNotFound, "User with id=%d was not found", id)
	}
	return nil
}

// checkBatch fails when an id is unknown or belongs to another event.
func checkBatch(requests []entity.Request, ids []int64, eventID int64) *errors.AppError {
	found := make(map[int64]struct{}, len(requests))
	for i := range requests {
		if requests[i].EventID != eventID {
			return errors.Newf(errors.ErrConflict,
				"Request with id=%d does not belong to event with id=%d", requests[i].ID, eventID)
		}
		found[requests[i].ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return errors.Newf(errors.ErrNotFound, "Request with id=%d was not found", id)
		}
	}
	return nil
}
