package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/logger"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/event/entity"

	"github.com/lib/pq"
)

type EventRepositoryInterface interface {
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	SaveLocation(ctx context.Context, lat, lon float64) (int64, error)
	GetByID(ctx context.Context, id int64) (*entity.Event, error)
	Lock(ctx context.Context, id int64) error
	FindByIDs(ctx context.Context, ids []int64) ([]entity.Event, error)
	FindByInitiator(ctx context.Context, initiatorID int64, page params.PageParams) ([]entity.Event, error)
	FindPublic(ctx context.Context, filter entity.PublicFilter, page params.PageParams) ([]entity.Event, error)
	FindAdmin(ctx context.Context, filter entity.AdminFilter, page params.PageParams) ([]entity.Event, error)
}

type EventRepository struct {
	DB database.IDatabase
}

func NewEventRepository(db database.IDatabase) *EventRepository {
	return &EventRepository{DB: db}
}

const selectEvents = `
	SELECT e.id, e.title, e.annotation, e.description,
	       e.category_id, c.name AS category_name,
	       e.location_id, l.lat, l.lon,
	       e.initiator_id, u.name AS initiator_name,
	       e.state, e.event_date, e.created_on, e.published_on,
	       e.paid, e.participant_limit, e.request_moderation
	FROM events e
	JOIN categories c ON c.id = e.category_id
	JOIN users u ON u.id = e.initiator_id
	JOIN locations l ON l.id = e.location_id`

// confirmedBelowLimit keeps events that can still accept participants.
const confirmedBelowLimit = `(e.participant_limit = 0 OR (
		SELECT COUNT(*) FROM requests r WHERE r.event_id = e.id AND r.status = 'CONFIRMED'
	) < e.participant_limit)`

func (r *EventRepository) SaveLocation(ctx context.Context, lat, lon float64) (int64, error) {
	var id int64
	err := r.DB.GetContext(ctx, &id, `INSERT INTO locations (lat, lon) VALUES ($1, $2) RETURNING id`, lat, lon)
	if err != nil {
		logger.Error("EventRepository:SaveLocation", "error", err)
		return 0, err
	}
	return id, nil
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (title, annotation, description, category_id, location_id, initiator_id,
		                    state, event_date, created_on, published_on, paid, participant_limit, request_moderation)
		VALUES (:title, :annotation, :description, :category_id, :location_id, :initiator_id,
		        :state, :event_date, :created_on, :published_on, :paid, :participant_limit, :request_moderation)
		RETURNING id
	`
	named, args, err := r.bindNamed(query, event)
	if err != nil {
		return nil, err
	}

	var id int64
	if err := r.DB.GetContext(ctx, &id, named, args...); err != nil {
		logger.Error("EventRepository:Create", "initiator_id", event.InitiatorID, "error", err)
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = :title, annotation = :annotation, description = :description,
		    category_id = :category_id, location_id = :location_id, state = :state,
		    event_date = :event_date, published_on = :published_on, paid = :paid,
		    participant_limit = :participant_limit, request_moderation = :request_moderation
		WHERE id = :id
	`
	if _, err := r.DB.NamedExecContext(ctx, query, event); err != nil {
		logger.Error("EventRepository:Update", "id", event.ID, "error", err)
		return err
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	var event entity.Event
	err := r.DB.GetContext(ctx, &event, selectEvents+` WHERE e.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", "id", id, "error", err)
		return nil, err
	}
	return &event, nil
}

// Lock takes a row lock on the event for the rest of the transaction. A
// missing event is not an error.
func (r *EventRepository) Lock(ctx context.Context, id int64) error {
	var locked []int64
	if err := r.DB.SelectContext(ctx, &locked, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, id); err != nil {
		logger.Error("EventRepository:Lock", "id", id, "error", err)
		return err
	}
	return nil
}

func (r *EventRepository) FindByIDs(ctx context.Context, ids []int64) ([]entity.Event, error) {
	events := []entity.Event{}
	if len(ids) == 0 {
		return events, nil
	}
	if err := r.DB.SelectContext(ctx, &events, selectEvents+` WHERE e.id = ANY($1) ORDER BY e.id`, pq.Array(ids)); err != nil {
		logger.Error("EventRepository:FindByIDs", "error", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) FindByInitiator(ctx context.Context, initiatorID int64, page params.PageParams) ([]entity.Event, error) {
	return r.find(ctx, "FindByInitiator", database.NewWhere().And(database.Eq("e.initiator_id", initiatorID)), page)
}

func (r *EventRepository) FindPublic(ctx context.Context, filter entity.PublicFilter, page params.PageParams) ([]entity.Event, error) {
	return r.find(ctx, "FindPublic", PublicWhere(filter), page)
}

func (r *EventRepository) FindAdmin(ctx context.Context, filter entity.AdminFilter, page params.PageParams) ([]entity.Event, error) {
	return r.find(ctx, "FindAdmin", AdminWhere(filter), page)
}

func (r *EventRepository) find(ctx context.Context, op string, where *database.Where, page params.PageParams) ([]entity.Event, error) {
	clause, args := where.Build(1)
	limit, args := database.LimitOffset(args, page.Limit(), page.Offset())

	events := []entity.Event{}
	if err := r.DB.SelectContext(ctx, &events, selectEvents+clause+` ORDER BY e.id`+limit, args...); err != nil {
		logger.Error("EventRepository:"+op, "error", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) bindNamed(query string, arg any) (string, []any, error) {
	named, args, err := r.DB.SQLx().BindNamed(query, arg)
	if err != nil {
		logger.Error("EventRepository:BindNamed", "error", err)
		return "", nil, err
	}
	return named, args, nil
}

// PublicWhere builds the predicates of the public listing. Only published
// events dated inside [RangeStart, RangeEnd) qualify.
func PublicWhere(filter entity.PublicFilter) *database.Where {
	where := database.NewWhere().
		And(database.Eq("e.state", entity.StatePublished)).
		And(database.Gte("e.event_date", filter.RangeStart)).
		And(database.Lt("e.event_date", filter.RangeEnd))

	if filter.Text != "" {
		where.And(database.ILikeAny(filter.Text, "e.annotation", "e.description"))
	}
	if len(filter.Categories) > 0 {
		where.And(database.AnyOf("e.category_id", pq.Array(filter.Categories)))
	}
	if filter.Paid != nil {
		where.And(database.Eq("e.paid", *filter.Paid))
	}
	if filter.OnlyAvailable {
		where.And(database.Raw(confirmedBelowLimit))
	}
	return where
}

// AdminWhere builds the predicates of the admin listing; no filter matches everything.
func AdminWhere(filter entity.AdminFilter) *database.Where {
	where := database.NewWhere()
	if len(filter.Users) > 0 {
		where.And(database.AnyOf("e.initiator_id", pq.Array(filter.Users)))
	}
	if len(filter.States) > 0 {
		states := make([]string, len(filter.States))
		for i, s := range filter.States {
			states[i] = string(s)
		}
		where.And(database.AnyOf("e.state", pq.Array(states)))
	}
	if len(filter.Categories) > 0 {
		where.And(database.AnyOf("e.category_id", pq.Array(filter.Categories)))
	}
	if filter.RangeStart != nil {
		where.And(database.Gte("e.event_date", *filter.RangeStart))
	}
	if filter.RangeEnd != nil {
		where.And(database.Lt("e.event_date", *filter.RangeEnd))
	}
	return where
}
