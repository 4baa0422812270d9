package service

import (
	"context"

	"github.com/OmatthewY/explore-with-me/core/constants"
	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/utils"
	"github.com/OmatthewY/explore-with-me/stats/dto"
	"github.com/OmatthewY/explore-with-me/stats/entity"
	"github.com/OmatthewY/explore-with-me/stats/repository"
)

type StatsServiceInterface interface {
	SaveHit(ctx context.Context, hit *dto.EndpointHit) (*dto.EndpointHit, *errors.AppError)
	GetStats(ctx context.Context, req dto.StatsRequest) ([]dto.ViewStats, *errors.AppError)
}

type StatsService struct {
	repo repository.HitRepositoryInterface
}

func NewStatsService(repo repository.HitRepositoryInterface) StatsServiceInterface {
	return &StatsService{repo: repo}
}

func (s *StatsService) SaveHit(ctx context.Context, hit *dto.EndpointHit) (*dto.EndpointHit, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	saved, err := s.repo.Save(ctx, &entity.Hit{
		App:     hit.App,
		URI:     hit.URI,
		IP:      hit.IP,
		Created: hit.Timestamp.Time,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "save hit failed", err)
	}

	logger.Debug("StatsService:SaveHit:Saved", "id", saved.ID, "app", saved.App, "uri", saved.URI)
	return &dto.EndpointHit{
		ID:        saved.ID,
		App:       saved.App,
		URI:       saved.URI,
		IP:        saved.IP,
		Timestamp: utils.NewDateTime(saved.Created),
	}, nil
}

func (s *StatsService) GetStats(ctx context.Context, req dto.StatsRequest) ([]dto.ViewStats, *errors.AppError) {
	if req.End.Before(req.Start) {
		return nil, errors.Newf(errors.ErrWrongDate, "end %s is before start %s",
			utils.FormatDateTime(req.End), utils.FormatDateTime(req.Start))
	}

	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	rows, err := s.repo.Stats(ctx, entity.StatsFilter{
		Start:  req.Start,
		End:    req.End,
		URIs:   req.URIs,
		Unique: req.Unique,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "get stats failed", err)
	}

	result := make([]dto.ViewStats, len(rows))
	for i, row := range rows {
		result[i] = dto.ViewStats{App: row.App, URI: row.URI, Hits: row.Hits}
	}
	return result, nil
}
