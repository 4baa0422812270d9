package repository

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/core/params"
	"github.com/OmatthewY/explore-with-me/modules/event/entity"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRollback = errors.New("rollback")

type seed struct {
	t   *testing.T
	ctx context.Context
	db  *database.Database
}

func (s seed) id(query string, args ...any) int64 {
	s.t.Helper()
	var id int64
	require.NoError(s.t, s.db.GetContext(s.ctx, &id, query, args...))
	return id
}

func (s seed) event(categoryID, initiatorID int64, annotation string, limit int, date time.Time) int64 {
	location := s.id(`INSERT INTO locations (lat, lon) VALUES (55.75, 37.61) RETURNING id`)
	return s.id(`
		INSERT INTO events (title, annotation, description, category_id, location_id, initiator_id,
		                    state, event_date, published_on, participant_limit)
		VALUES ('event', $1, 'a description long enough', $2, $3, $4, 'PUBLISHED', $5, NOW(), $6)
		RETURNING id`, annotation, categoryID, location, initiatorID, date, limit)
}

func (s seed) request(requesterID, eventID int64, status string) {
	s.id(`INSERT INTO requests (requester_id, event_id, status) VALUES ($1, $2, $3) RETURNING id`,
		requesterID, eventID, status)
}

func ids(events []entity.Event) []int64 {
	out := make([]int64, len(events))
	for i := range events {
		out[i] = events[i].ID
	}
	return out
}

// Runs against a real database only when EWM_TEST_DATABASE_URL is set. All
// rows are written in one transaction that is rolled back.
func TestFindPublic_AvailabilityAndText(t *testing.T) {
	url := os.Getenv("EWM_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("EWM_TEST_DATABASE_URL not set")
	}

	conn, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	db := database.New(conn)
	defer db.Close()
	require.NoError(t, db.Migrate())

	repo := NewEventRepository(db)
	suffix := strconv.FormatInt(time.Now().UnixNano(), 10)
	date := time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
	page := params.NewPageParams(0, 10)

	err = db.RunInTx(context.Background(), false, func(ctx context.Context) error {
		s := seed{t: t, ctx: ctx, db: db}
		category := s.id(`INSERT INTO categories (name) VALUES ($1) RETURNING id`, "c"+suffix)
		initiator := s.id(`INSERT INTO users (name, email) VALUES ('owner', $1) RETURNING id`, "o"+suffix+"@example.com")
		first := s.id(`INSERT INTO users (name, email) VALUES ('first', $1) RETURNING id`, "a"+suffix+"@example.com")
		second := s.id(`INSERT INTO users (name, email) VALUES ('second', $1) RETURNING id`, "b"+suffix+"@example.com")

		unlimited := s.event(category, initiator, "open doors, 100 big offers", 0, date)
		full := s.event(category, initiator, "sold out show", 2, date)
		s.request(first, full, "CONFIRMED")
		s.request(second, full, "CONFIRMED")
		partly := s.event(category, initiator, "only 100% off today", 2, date)
		s.request(first, partly, "CONFIRMED")
		s.request(second, partly, "PENDING")

		filter := entity.PublicFilter{
			Categories: []int64{category},
			RangeStart: date.Add(-time.Hour),
			RangeEnd:   date.Add(time.Hour),
		}

		all, err := repo.FindPublic(ctx, filter, page)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{unlimited, full, partly}, ids(all))

		filter.OnlyAvailable = true
		available, err := repo.FindPublic(ctx, filter, page)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{unlimited, partly}, ids(available))

		filter.OnlyAvailable = false
		filter.Text = "100%"
		literal, err := repo.FindPublic(ctx, filter, page)
		require.NoError(t, err)
		assert.Equal(t, []int64{partly}, ids(literal))

		filter.Text = "SOLD_OUT"
		none, err := repo.FindPublic(ctx, filter, page)
		require.NoError(t, err)
		assert.Empty(t, none)
		return errRollback
	})
	assert.ErrorIs(t, err, errRollback)
}
