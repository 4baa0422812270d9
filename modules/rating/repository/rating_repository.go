package repository

import (
	"context"

	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/rating/entity"

	"github.com/lib/pq"
)

type RatingRepositoryInterface interface {
	Upsert(ctx context.Context, rating *entity.Rating) (*entity.Rating, error)
	Delete(ctx context.Context, userID, eventID int64, value int) (bool, error)
	FindByUser(ctx context.Context, userID int64, page params.PageParams) ([]entity.Rating, error)
	CountLikes(ctx context.Context, eventID int64) (int64, error)
	CountDislikes(ctx context.Context, eventID int64) (int64, error)
	ScoresByEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
}

type RatingRepository struct {
	DB database.IDatabase
}

func NewRatingRepository(db database.IDatabase) *RatingRepository {
	return &RatingRepository{DB: db}
}

// Upsert stores the vote, replacing an earlier vote of the same user.
func (r *RatingRepository) Upsert(ctx context.Context, rating *entity.Rating) (*entity.Rating, error) {
	query := `
		INSERT INTO ratings (user_id, event_id, value, created)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, event_id)
		DO UPDATE SET value = EXCLUDED.value, created = EXCLUDED.created
		RETURNING id, user_id, event_id, value, created
	`
	var saved entity.Rating
	err := r.DB.GetContext(ctx, &saved, query, rating.UserID, rating.EventID, rating.Value, rating.Created)
	if err != nil {
		logger.Error("RatingRepository:Upsert", "user_id", rating.UserID, "event_id", rating.EventID, "error", err)
		return nil, err
	}
	return &saved, nil
}

func (r *RatingRepository) Delete(ctx context.Context, userID, eventID int64, value int) (bool, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM ratings WHERE user_id = $1 AND event_id = $2 AND value = $3`, userID, eventID, value)
	if err != nil {
		logger.Error("RatingRepository:Delete", "user_id", userID, "event_id", eventID, "error", err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *RatingRepository) FindByUser(ctx context.Context, userID int64, page params.PageParams) ([]entity.Rating, error) {
	limit, args := database.LimitOffset([]any{userID}, page.Limit(), page.Offset())
	query := `SELECT id, user_id, event_id, value, created FROM ratings WHERE user_id = $1 ORDER BY id` + limit

	ratings := []entity.Rating{}
	if err := r.DB.SelectContext(ctx, &ratings, query, args...); err != nil {
		logger.Error("RatingRepository:FindByUser", "user_id", userID, "error", err)
		return nil, err
	}
	return ratings, nil
}

func (r *RatingRepository) CountLikes(ctx context.Context, eventID int64) (int64, error) {
	return r.count(ctx, eventID, entity.Like)
}

func (r *RatingRepository) CountDislikes(ctx context.Context, eventID int64) (int64, error) {
	return r.count(ctx, eventID, entity.Dislike)
}

func (r *RatingRepository) count(ctx context.Context, eventID int64, value int) (int64, error) {
	var count int64
	err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM ratings WHERE event_id = $1 AND value = $2`, eventID, value)
	if err != nil {
		logger.Error("RatingRepository:Count", "event_id", eventID, "value", value, "error", err)
		return 0, err
	}
	return count, nil
}

// ScoresByEvents returns likes minus dislikes keyed by event id. Events
// without votes are absent from the map.
func (r *RatingRepository) ScoresByEvents(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	scores := make(map[int64]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return scores, nil
	}

	var rows []struct {
		EventID int64 `db:"event_id"`
		Score   int64 `db:"score"`
	}
	query := `
		SELECT event_id, SUM(value) AS score
		FROM ratings
		WHERE event_id = ANY($1)
		GROUP BY event_id
	`
	if err := r.DB.SelectContext(ctx, &rows, query, pq.Array(eventIDs)); err != nil {
		logger.Error("RatingRepository:ScoresByEvents", "error", err)
		return nil, err
	}
	for _, row := range rows {
		scores[row.EventID] = row.Score
	}
	return scores, nil
}
