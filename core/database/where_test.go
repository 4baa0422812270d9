package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere_EmptyMatchesAll(t *testing.T) {
	clause, args := NewWhere().Build(1)

	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestWhere_JoinsPredicatesWithAnd(t *testing.T) {
	where := NewWhere().
		And(Eq("e.state", "PUBLISHED")).
		And(Gte("e.event_date", 10)).
		And(Raw("e.paid IS TRUE")).
		And(Lt("e.event_date", 20))

	clause, args := where.Build(1)

	assert.Equal(t, " WHERE e.state = $1 AND e.event_date >= $2 AND e.paid IS TRUE AND e.event_date < $3", clause)
	assert.Equal(t, []any{"PUBLISHED", 10, 20}, args)
	assert.Equal(t, 4, where.Len())
}

func TestWhere_StartIndex(t *testing.T) {
	clause, args := NewWhere().And(Lte("created", 5)).Build(3)

	assert.Equal(t, " WHERE created <= $3", clause)
	assert.Equal(t, []any{5}, args)
}

func TestILikeAny_SharesOnePlaceholder(t *testing.T) {
	clause, args := NewWhere().And(ILikeAny("jazz", "annotation", "description")).Build(1)

	assert.Equal(t, ` WHERE (annotation ILIKE $1 ESCAPE '\' OR description ILIKE $1 ESCAPE '\')`, clause)
	assert.Equal(t, []any{"%jazz%"}, args)
}

func TestILikeAny_EscapesWildcards(t *testing.T) {
	_, args := NewWhere().And(ILikeAny(`100%_off\now`, "annotation")).Build(1)

	assert.Equal(t, []any{`%100\%\_off\\now%`}, args)
}

func TestAnyOf(t *testing.T) {
	clause, args := NewWhere().And(AnyOf("id", []int64{1, 2})).Build(1)

	assert.Equal(t, " WHERE id = ANY($1)", clause)
	assert.Len(t, args, 1)
}

func TestLimitOffset(t *testing.T) {
	clause, args := LimitOffset([]any{"a"}, 10, 20)

	assert.Equal(t, " LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{"a", 10, 20}, args)

	clause, args = LimitOffset(nil, 5, 0)
	assert.Equal(t, " LIMIT $1 OFFSET $2", clause)
	assert.Equal(t, []any{5, 0}, args)
}
