package repository

import (
	"context"
	"fmt"

	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/stats/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HitRepositoryInterface interface {
	Save(ctx context.Context, hit *entity.Hit) (*entity.Hit, error)
	Stats(ctx context.Context, filter entity.StatsFilter) ([]entity.ViewStat, error)
}

type HitRepository struct {
	pool *pgxpool.Pool
}

func NewHitRepository(pool *pgxpool.Pool) *HitRepository {
	return &HitRepository{pool: pool}
}

func (r *HitRepository) Save(ctx context.Context, hit *entity.Hit) (*entity.Hit, error) {
	query := `
		INSERT INTO hits (app, uri, ip, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	saved := *hit
	if err := r.pool.QueryRow(ctx, query, hit.App, hit.URI, hit.IP, hit.Created).Scan(&saved.ID); err != nil {
		logger.Error("HitRepository:Save", "uri", hit.URI, "error", err)
		return nil, err
	}
	return &saved, nil
}

func (r *HitRepository) Stats(ctx context.Context, filter entity.StatsFilter) ([]entity.ViewStat, error) {
	count := "COUNT(ip)"
	if filter.Unique {
		count = "COUNT(DISTINCT ip)"
	}

	args := []any{filter.Start, filter.End}
	where := "created BETWEEN $1 AND $2"
	if len(filter.URIs) > 0 {
		args = append(args, filter.URIs)
		where += " AND uri = ANY($3)"
	}

	query := fmt.Sprintf(`
		SELECT app, uri, %s AS hits
		FROM hits
		WHERE %s
		GROUP BY app, uri
		ORDER BY hits DESC, uri
	`, count, where)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("HitRepository:Stats", "error", err)
		return nil, err
	}

	stats, err := pgx.CollectRows(rows, pgx.RowToStructByName[entity.ViewStat])
	if err != nil {
		logger.Error("HitRepository:Stats:Scan", "error", err)
		return nil, err
	}
	return stats, nil
}
