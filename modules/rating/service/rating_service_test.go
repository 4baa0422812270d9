package service

import (
	"context"
	"testing"

	"github.com/OmatthewY/explore-with-me/core/errors"
	"github.com/OmatthewY/explore-with-me/core/params"
	evententity "github.com/OmatthewY/explore-with-me/modules/event/entity"
	"github.com/OmatthewY/explore-with-me/modules/rating/entity"
	userentity "github.com/OmatthewY/explore-with-me/modules/user/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, _ bool, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEvents map[int64]evententity.Event

func (f fakeEvents) GetByID(_ context.Context, id int64) (*evententity.Event, error) {
	e, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

type fakeUsers map[int64]bool

func (f fakeUsers) GetByID(_ context.Context, id int64) (*userentity.User, error) {
	if !f[id] {
		return nil, nil
	}
	return &userentity.User{ID: id}, nil
}

type voteKey struct{ user, event int64 }

type fakeRatingRepo struct {
	votes map[voteKey]int
}

func (r *fakeRatingRepo) Upsert(_ context.Context, rating *entity.Rating) (*entity.Rating, error) {
	r.votes[voteKey{rating.UserID, rating.EventID}] = rating.Value
	saved := *rating
	saved.ID = 1
	return &saved, nil
}

func (r *fakeRatingRepo) Delete(_ context.Context, userID, eventID int64, value int) (bool, error) {
	key := voteKey{userID, eventID}
	if v, ok := r.votes[key]; ok && v == value {
		delete(r.votes, key)
		return true, nil
	}
	return false, nil
}

func (r *fakeRatingRepo) FindByUser(_ context.Context, userID int64, _ params.PageParams) ([]entity.Rating, error) {
	out := []entity.Rating{}
	for k, v := range r.votes {
		if k.user == userID {
			out = append(out, entity.Rating{UserID: k.user, EventID: k.event, Value: v})
		}
	}
	return out, nil
}

func (r *fakeRatingRepo) CountLikes(context.Context, int64) (int64, error)    { return 0, nil }
func (r *fakeRatingRepo) CountDislikes(context.Context, int64) (int64, error) { return 0, nil }
func (r *fakeRatingRepo) ScoresByEvents(context.Context, []int64) (map[int64]int64, error) {
	return map[int64]int64{}, nil
}

func newRatingService() (RatingServiceInterface, *fakeRatingRepo) {
	repo := &fakeRatingRepo{votes: map[voteKey]int{}}
	events := fakeEvents{
		1: {ID: 1, InitiatorID: 1, State: evententity.StatePublished},
		2: {ID: 2, InitiatorID: 1, State: evententity.StatePending},
	}
	return NewRatingService(repo, events, fakeUsers{1: true, 2: true}, fakeTx{}), repo
}

func TestAddRating_Upserts(t *testing.T) {
	svc, repo := newRatingService()

	rating, appErr := svc.AddRating(context.Background(), 2, 1, true)
	require.Nil(t, appErr)
	assert.True(t, rating.IsLike)
	assert.Equal(t, entity.Like, repo.votes[voteKey{2, 1}])

	rating, appErr = svc.AddRating(context.Background(), 2, 1, false)
	require.Nil(t, appErr)
	assert.False(t, rating.IsLike)
	assert.Equal(t, entity.Dislike, repo.votes[voteKey{2, 1}])
	assert.Len(t, repo.votes, 1)
}

func TestAddRating_Conflicts(t *testing.T) {
	svc, _ := newRatingService()

	_, appErr := svc.AddRating(context.Background(), 1, 1, true)
	require.NotNil(t, appErr, "own event")
	assert.Equal(t, errors.ErrConflict, appErr.Code)

	_, appErr = svc.AddRating(context.Background(), 2, 2, true)
	require.NotNil(t, appErr, "unpublished")
	assert.Equal(t, errors.ErrConflict, appErr.Code)

	_, appErr = svc.AddRating(context.Background(), 2, 9, true)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestRemoveRating(t *testing.T) {
	svc, repo := newRatingService()
	repo.votes[voteKey{2, 1}] = entity.Like

	appErr := svc.RemoveRating(context.Background(), 2, 1, false)
	require.NotNil(t, appErr, "sign mismatch")
	assert.Equal(t, errors.ErrNotFound, appErr.Code)

	require.Nil(t, svc.RemoveRating(context.Background(), 2, 1, true))
	assert.Empty(t, repo.votes)
}

func TestGetUserRatings(t *testing.T) {
	svc, repo := newRatingService()
	repo.votes[voteKey{2, 1}] = entity.Dislike

	ratings, appErr := svc.GetUserRatings(context.Background(), 2, params.NewPageParams(0, 10))
	require.Nil(t, appErr)
	require.Len(t, ratings, 1)
	assert.False(t, ratings[0].IsLike)

	_, appErr = svc.GetUserRatings(context.Background(), 42, params.NewPageParams(0, 10))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
