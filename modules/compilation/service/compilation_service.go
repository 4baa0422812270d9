package service

import (
	"context"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/compilation/dto"
	"github.com/OmatthewY/explore-with-me/modules/compilation/entity"
	"github.com/OmatthewY/explore-with-me/modules/compilation/mapper"
	"github.com/OmatthewY/explore-with-me/modules/compilation/repository"
	eventdto "github.com/OmatthewY/explore-with-me/modules/event/dto"
	evententity "github.com/OmatthewY/explore-with-me/modules/event/entity"
	eventmapper "github.com/OmatthewY/explore-with-me/modules/event/mapper"
	eventservice "github.com/OmatthewY/explore-with-me/modules/event/service"
)

type EventFinder interface {
	FindByIDs(ctx context.Context, ids []int64) ([]evententity.Event, error)
}

type EventEnricher interface {
	Enrich(ctx context.Context, events []evententity.Event) (eventservice.Lookup, error)
}

type CompilationServiceInterface interface {
	AdminCreateCompilation(ctx context.Context, req *dto.NewCompilationRequest) (*dto.CompilationResponse, *errors.AppError)
	AdminUpdateCompilation(ctx context.Context, id int64, req *dto.UpdateCompilationRequest) (*dto.CompilationResponse, *errors.AppError)
	AdminDeleteCompilation(ctx context.Context, id int64) *errors.AppError
	PublicGetCompilations(ctx context.Context, pinned *bool, page params.PageParams) ([]dto.CompilationResponse, *errors.AppError)
	PublicGetCompilationByID(ctx context.Context, id int64) (*dto.CompilationResponse, *errors.AppError)
}

type CompilationService struct {
	repo     repository.CompilationRepositoryInterface
	events   EventFinder
	enricher EventEnricher
	tx       database.Transactor
}

func NewCompilationService(
	repo repository.CompilationRepositoryInterface,
	events EventFinder,
	enricher EventEnricher,
	tx database.Transactor,
) CompilationServiceInterface {
	return &CompilationService{repo: repo, events: events, enricher: enricher, tx: tx}
}

func (s *CompilationService) AdminCreateCompilation(ctx context.Context, req *dto.NewCompilationRequest) (*dto.CompilationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.CompilationResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		created, err := s.repo.Create(ctx, mapper.ToCompilationEntity(req))
		if err != nil {
			return errors.NewAppError(errors.ErrCreateFailed, "create compilation failed", err)
		}

		events, appErr := s.replaceEvents(ctx, created.ID, req.Events)
		if appErr != nil {
			return appErr
		}
		result = mapper.ToCompilationResponse(created, events)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("CompilationService:AdminCreateCompilation:Created", "id", result.ID, "events", len(result.Events))
	return result, nil
}

func (s *CompilationService) AdminUpdateCompilation(ctx context.Context, id int64, req *dto.UpdateCompilationRequest) (*dto.CompilationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.CompilationResponse
	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		compilation, appErr := s.getCompilation(ctx, id)
		if appErr != nil {
			return appErr
		}

		mapper.ApplyUpdate(compilation, req)
		if err := s.repo.Update(ctx, compilation); err != nil {
			return errors.NewAppError(errors.ErrUpdateFailed, "update compilation failed", err)
		}

		var events []eventdto.EventShortResponse
		if req.Events != nil {
			events, appErr = s.replaceEvents(ctx, id, *req.Events)
		} else {
			events, appErr = s.loadEvents(ctx, id)
		}
		if appErr != nil {
			return appErr
		}
		result = mapper.ToCompilationResponse(compilation, events)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}

	logger.Info("CompilationService:AdminUpdateCompilation:Updated", "id", id)
	return result, nil
}

func (s *CompilationService) AdminDeleteCompilation(ctx context.Context, id int64) *errors.AppError {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	err := s.tx.RunInTx(ctx, false, func(ctx context.Context) error {
		deleted, err := s.repo.Delete(ctx, id)
		if err != nil {
			return errors.NewAppError(errors.ErrDeleteFailed, "delete compilation failed", err)
		}
		if !deleted {
			return compilationNotFound(id)
		}
		return nil
	})
	if err != nil {
		return errors.From(err)
	}

	logger.Info("CompilationService:AdminDeleteCompilation:Deleted", "id", id)
	return nil
}

func (s *CompilationService) PublicGetCompilations(ctx context.Context, pinned *bool, page params.PageParams) ([]dto.CompilationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result []dto.CompilationResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		compilations, err := s.repo.List(ctx, pinned, page)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get compilations failed", err)
		}

		ids := make([]int64, len(compilations))
		for i := range compilations {
			ids[i] = compilations[i].ID
		}
		links, err := s.repo.EventIDs(ctx, ids)
		if err != nil {
			return errors.NewAppError(errors.ErrGetFailed, "get compilation events failed", err)
		}

		// one enrichment pass over the union of all event ids
		var all []int64
		for _, eventIDs := range links {
			all = append(all, eventIDs...)
		}
		byID, appErr := s.shortEvents(ctx, all)
		if appErr != nil {
			return appErr
		}

		result = make([]dto.CompilationResponse, 0, len(compilations))
		for i := range compilations {
			events := make([]eventdto.EventShortResponse, 0, len(links[compilations[i].ID]))
			for _, eventID := range links[compilations[i].ID] {
				if event, ok := byID[eventID]; ok {
					events = append(events, event)
				}
			}
			result = append(result, *mapper.ToCompilationResponse(&compilations[i], events))
		}
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}
	return result, nil
}

func (s *CompilationService) PublicGetCompilationByID(ctx context.Context, id int64) (*dto.CompilationResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	var result *dto.CompilationResponse
	err := s.tx.RunInTx(ctx, true, func(ctx context.Context) error {
		compilation, appErr := s.getCompilation(ctx, id)
		if appErr != nil {
			return appErr
		}
		events, appErr := s.loadEvents(ctx, id)
		if appErr != nil {
			return appErr
		}
		result = mapper.ToCompilationResponse(compilation, events)
		return nil
	})
	if err != nil {
		return nil, errors.From(err)
	}
	return result, nil
}

func (s *CompilationService) getCompilation(ctx context.Context, id int64) (*entity.Compilation, *errors.AppError) {
	compilation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get compilation failed", err)
	}
	if compilation == nil {
		return nil, compilationNotFound(id)
	}
	return compilation, nil
}

// replaceEvents stores eventIDs as the compilation's events. Unknown ids
// fail with not found.
func (s *CompilationService) replaceEvents(ctx context.Context, compilationID int64, eventIDs []int64) ([]eventdto.EventShortResponse, *errors.AppError) {
	eventIDs = unique(eventIDs)
	byID, appErr := s.shortEvents(ctx, eventIDs)
	if appErr != nil {
		return nil, appErr
	}
	for _, id := range eventIDs {
		if _, ok := byID[id]; !ok {
			return nil, errors.Newf(errors.ErrNotFound, "Event with id=%d was not found", id)
		}
	}

	if err := s.repo.SetEvents(ctx, compilationID, eventIDs); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "save compilation events failed", err)
	}
	return ordered(eventIDs, byID), nil
}

func (s *CompilationService) loadEvents(ctx context.Context, compilationID int64) ([]eventdto.EventShortResponse, *errors.AppError) {
	links, err := s.repo.EventIDs(ctx, []int64{compilationID})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get compilation events failed", err)
	}
	eventIDs := links[compilationID]
	byID, appErr := s.shortEvents(ctx, eventIDs)
	if appErr != nil {
		return nil, appErr
	}
	return ordered(eventIDs, byID), nil
}

// shortEvents loads and enriches events, keyed by id.
func (s *CompilationService) shortEvents(ctx context.Context, ids []int64) (map[int64]eventdto.EventShortResponse, *errors.AppError) {
	result := make(map[int64]eventdto.EventShortResponse, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	events, err := s.events.FindByIDs(ctx, unique(ids))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get events failed", err)
	}
	if len(events) == 0 {
		return result, nil
	}
	lookup, err := s.enricher.Enrich(ctx, events)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "load event statistics failed", err)
	}
	for i := range events {
		result[events[i].ID] = *eventmapper.ToEventShortResponse(&events[i], lookup.For(events[i].ID))
	}
	return result, nil
}

func ordered(ids []int64, byID map[int64]eventdto.EventShortResponse) []eventdto.EventShortResponse {
	events := make([]eventdto.EventShortResponse, 0, len(ids))
	for _, id := range ids {
		if event, ok := byID[id]; ok {
			events = append(events, event)
		}
	}
	return events
}

func unique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func compilationNotFound(id int64) *errors.AppError {
	return errors.Newf(errors.ErrNotFound, "Compilation with id=%d was not found", id)
}
