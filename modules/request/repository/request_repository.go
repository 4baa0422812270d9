package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/modules/request/entity"

	"github.com/lib/pq"
)

type RequestRepositoryInterface interface {
	Create(ctx context.Context, req *entity.Request) (*entity.Request, error)
	GetByID(ctx context.Context, id int64) (*entity.Request, error)
	FindByIDs(ctx context.Context, ids []int64) ([]entity.Request, error)
	FindByRequester(ctx context.Context, requesterID int64) ([]entity.Request, error)
	FindByEvent(ctx context.Context, eventID int64) ([]entity.Request, error)
	ExistsActive(ctx context.Context, requesterID, eventID int64) (bool, error)
	UpdateStatus(ctx context.Context, ids []int64, status entity.Status) error
	CountConfirmed(ctx context.Context, eventID int64) (int64, error)
	CountConfirmedByEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
}

type RequestRepository struct {
	DB database.IDatabase
}

func NewRequestRepository(db database.IDatabase) *RequestRepository {
	return &RequestRepository{DB: db}
}

const selectRequests = `SELECT id, requester_id, event_id, status, created FROM requests`

func (r *RequestRepository) Create(ctx context.Context, req *entity.Request) (*entity.Request, error) {
	query := `
		INSERT INTO requests (requester_id, event_id, status, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id, requester_id, event_id, status, created
	`
	var created entity.Request
	if err := r.DB.GetContext(ctx, &created, query, req.RequesterID, req.EventID, req.Status, req.Created); err != nil {
		logger.Error("RequestRepository:Create", "requester_id", req.RequesterID, "event_id", req.EventID, "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*entity.Request, error) {
	var req entity.Request
	if err := r.DB.GetContext(ctx, &req, selectRequests+` WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("RequestRepository:GetByID", "id", id, "error", err)
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) FindByIDs(ctx context.Context, ids []int64) ([]entity.Request, error) {
	return r.selectWhere(ctx, "FindByIDs", ` WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
}

func (r *RequestRepository) FindByRequester(ctx context.Context, requesterID int64) ([]entity.Request, error) {
	return r.selectWhere(ctx, "FindByRequester", ` WHERE requester_id = $1 ORDER BY id`, requesterID)
}

func (r *RequestRepository) FindByEvent(ctx context.Context, eventID int64) ([]entity.Request, error) {
	return r.selectWhere(ctx, "FindByEvent", ` WHERE event_id = $1 ORDER BY id`, eventID)
}

func (r *RequestRepository) selectWhere(ctx context.Context, op, where string, args ...any) ([]entity.Request, error) {
	requests := []entity.Request{}
	if err := r.DB.SelectContext(ctx, &requests, selectRequests+where, args...); err != nil {
		logger.Error("RequestRepository:"+op, "error", err)
		return nil, err
	}
	return requests, nil
}

func (r *RequestRepository) ExistsActive(ctx context.Context, requesterID, eventID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM requests
			WHERE requester_id = $1 AND event_id = $2 AND status <> $3
		)
	`
	var exists bool
	if err := r.DB.GetContext(ctx, &exists, query, requesterID, eventID, entity.StatusCanceled); err != nil {
		logger.Error("RequestRepository:ExistsActive", "error", err)
		return false, err
	}
	return exists, nil
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, ids []int64, status entity.Status) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.DB.ExecContext(ctx, `UPDATE requests SET status = $1 WHERE id = ANY($2)`, status, pq.Array(ids)); err != nil {
		logger.Error("RequestRepository:UpdateStatus", "status", status, "error", err)
		return err
	}
	return nil
}

func (r *RequestRepository) CountConfirmed(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = $2`
	if err := r.DB.GetContext(ctx, &count, query, eventID, entity.StatusConfirmed); err != nil {
		logger.Error("RequestRepository:CountConfirmed", "event_id", eventID, "error", err)
		return 0, err
	}
	return count, nil
}

// CountConfirmedByEvents returns confirmed counts keyed by event id. Events
// without confirmed requests are absent from the map.
func (r *RequestRepository) CountConfirmedByEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		EventID int64 `db:"event_id"`
		Count   int64 `db:"count"`
	}
	query := `
		SELECT event_id, COUNT(*) AS count
		FROM requests
		WHERE event_id = ANY($1) AND status = $2
		GROUP BY event_id
	`
	if err := r.DB.SelectContext(ctx, &rows, query, pq.Array(eventIDs), entity.StatusConfirmed); err != nil {
		logger.Error("RequestRepository:CountConfirmedByEvents", "error", err)
		return nil, err
	}
	for _, row := range rows {
		counts[row.EventID] = row.Count
	}
	return counts, nil
}
