package repository

import (
	"testing"
	"time"

	"github.com/OmatthewY/explore-with-me/modules/event/entity"

	"github.com/stretchr/testify/assert"
)

func TestPublicWhere_Minimal(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(200, 0, 0)

	clause, args := PublicWhere(entity.PublicFilter{RangeStart: start, RangeEnd: end}).Build(1)

	assert.Equal(t, " WHERE e.state = $1 AND e.event_date >= $2 AND e.event_date < $3", clause)
	assert.Equal(t, []any{entity.StatePublished, start, end}, args)
}

func TestPublicWhere_AllFilters(t *testing.T) {
	paid := true
	filter := entity.PublicFilter{
		Text:          "Jazz",
		Categories:    []int64{1, 2},
		Paid:          &paid,
		RangeStart:    time.Now(),
		RangeEnd:      time.Now().Add(time.Hour),
		OnlyAvailable: true,
	}

	where := PublicWhere(filter)
	clause, args := where.Build(1)

	assert.Equal(t, 7, where.Len())
	assert.Contains(t, clause, `(e.annotation ILIKE $4 ESCAPE '\' OR e.description ILIKE $4 ESCAPE '\')`)
	assert.Contains(t, clause, "e.category_id = ANY($5)")
	assert.Contains(t, clause, "e.paid = $6")
	assert.Contains(t, clause, "e.participant_limit = 0 OR")
	assert.Len(t, args, 6)
	assert.Equal(t, "%Jazz%", args[3])
}

func TestAdminWhere_EmptyMatchesAll(t *testing.T) {
	clause, args := AdminWhere(entity.AdminFilter{}).Build(1)

	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestAdminWhere_Filters(t *testing.T) {
	start := time.Now()
	filter := entity.AdminFilter{
		Users:      []int64{3},
		States:     []entity.State{entity.StatePending, entity.StateCanceled},
		RangeStart: &start,
	}

	clause, args := AdminWhere(filter).Build(1)

	assert.Equal(t, " WHERE e.initiator_id = ANY($1) AND e.state = ANY($2) AND e.event_date >= $3", clause)
	assert.Len(t, args, 3)
	assert.Equal(t, start, args[2])
}
