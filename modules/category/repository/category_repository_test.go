package repository

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/OmatthewY/explore-with-me/core/database"
	"github.com/OmatthewY/explore-with-me/modules/category/entity"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRollback = errors.New("rollback")

// Runs against a real database only when EWM_TEST_DATABASE_URL is set. All
// writes happen in one transaction that is rolled back.
func TestCategoryRepository_RoundTrip(t *testing.T) {
	url := os.Getenv("EWM_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("EWM_TEST_DATABASE_URL not set")
	}

	conn, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	db := database.New(conn)
	defer db.Close()
	require.NoError(t, db.Migrate())

	repo := NewCategoryRepository(db)
	name := "repo-test-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	err = db.RunInTx(context.Background(), false, func(ctx context.Context) error {
		created, err := repo.Create(ctx, &entity.Category{Name: name})
		require.NoError(t, err)
		assert.Positive(t, created.ID)

		found, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)

		inUse, err := repo.HasEvents(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, inUse)

		updated, err := repo.Update(ctx, &entity.Category{ID: created.ID, Name: name + "-2"})
		require.NoError(t, err)
		assert.Equal(t, name+"-2", updated.Name)

		missing, err := repo.Update(ctx, &entity.Category{ID: -1, Name: name})
		require.NoError(t, err)
		assert.Nil(t, missing)

		_, err = repo.Create(ctx, &entity.Category{Name: name + "-2"})
		assert.True(t, database.IsUniqueViolation(err))
		return errRollback
	})
	assert.ErrorIs(t, err, errRollback)
}
