package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/compilation/entity"

	"github.com/lib/pq"
)

type CompilationRepositoryInterface interface {
	Create(ctx context.Context, compilation *entity.Compilation) (*entity.Compilation, error)
	Update(ctx context.Context, compilation *entity.Compilation) error
	Delete(ctx context.Context, id int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*entity.Compilation, error)
	List(ctx context.Context, pinned *bool, page params.PageParams) ([]entity.Compilation, error)
	SetEvents(ctx context.Context, compilationID int64, eventIDs []int64) error
	EventIDs(ctx context.Context, compilationIDs []int64) (map[int64][]int64, error)
}

type CompilationRepository struct {
	DB database.IDatabase
}

func NewCompilationRepository(db database.IDatabase) *CompilationRepository {
	return &CompilationRepository{DB: db}
}

func (r *CompilationRepository) Create(ctx context.Context, compilation *entity.Compilation) (*entity.Compilation, error) {
	var created entity.Compilation
	err := r.DB.GetContext(ctx, &created,
		`INSERT INTO compilations (title, pinned) VALUES ($1, $2) RETURNING id, title, pinned`,
		compilation.Title, compilation.Pinned)
	if err != nil {
		logger.Error("CompilationRepository:Create", "title", compilation.Title, "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *CompilationRepository) Update(ctx context.Context, compilation *entity.Compilation) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE compilations SET title = $1, pinned = $2 WHERE id = $3`,
		compilation.Title, compilation.Pinned, compilation.ID)
	if err != nil {
		logger.Error("CompilationRepository:Update", "id", compilation.ID, "error", err)
		return err
	}
	return nil
}

func (r *CompilationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM compilations WHERE id = $1`, id)
	if err != nil {
		logger.Error("CompilationRepository:Delete", "id", id, "error", err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *CompilationRepository) GetByID(ctx context.Context, id int64) (*entity.Compilation, error) {
	var compilation entity.Compilation
	err := r.DB.GetContext(ctx, &compilation, `SELECT id, title, pinned FROM compilations WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CompilationRepository:GetByID", "id", id, "error", err)
		return nil, err
	}
	return &compilation, nil
}

func (r *CompilationRepository) List(ctx context.Context, pinned *bool, page params.PageParams) ([]entity.Compilation, error) {
	where := database.NewWhere()
	if pinned != nil {
		where.And(database.Eq("pinned", *pinned))
	}
	clause, args := where.Build(1)
	limit, args := database.LimitOffset(args, page.Limit(), page.Offset())

	compilations := []entity.Compilation{}
	query := `SELECT id, title, pinned FROM compilations` + clause + ` ORDER BY id` + limit
	if err := r.DB.SelectContext(ctx, &compilations, query, args...); err != nil {
		logger.Error("CompilationRepository:List", "error", err)
		return nil, err
	}
	return compilations, nil
}

// SetEvents replaces the event set of the compilation.
func (r *CompilationRepository) SetEvents(ctx context.Context, compilationID int64, eventIDs []int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM compilation_events WHERE compilation_id = $1`, compilationID); err != nil {
		logger.Error("CompilationRepository:SetEvents:Clear", "id", compilationID, "error", err)
		return err
	}
	if len(eventIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO compilation_events (compilation_id, event_id)
		SELECT $1, UNNEST($2::BIGINT[])
		ON CONFLICT DO NOTHING
	`
	if _, err := r.DB.ExecContext(ctx, query, compilationID, pq.Array(eventIDs)); err != nil {
		logger.Error("CompilationRepository:SetEvents:Insert", "id", compilationID, "error", err)
		return err
	}
	return nil
}

// EventIDs returns the event ids of each compilation, ordered by event id.
func (r *CompilationRepository) EventIDs(ctx context.Context, compilationIDs []int64) (map[int64][]int64, error) {
	result := make(map[int64][]int64, len(compilationIDs))
	if len(compilationIDs) == 0 {
		return result, nil
	}

	var links []entity.CompilationEvent
	query := `
		SELECT compilation_id, event_id
		FROM compilation_events
		WHERE compilation_id = ANY($1)
		ORDER BY compilation_id, event_id
	`
	if err := r.DB.SelectContext(ctx, &links, query, pq.Array(compilationIDs)); err != nil {
		logger.Error("CompilationRepository:EventIDs", "error", err)
		return nil, err
	}
	for _, link := range links {
		result[link.CompilationID] = append(result[link.CompilationID], link.EventID)
	}
	return result, nil
}
