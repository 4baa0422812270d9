package service

import (
	"context"
	"time"

	"github.com/OmatthewY/explore-with-me/core/params"
	categoryentity "github.com/OmatthewY/explore-with-me/modules/category/entity"
	"github.com/OmatthewY/explore-with-me/modules/event/entity"
	userentity "github.com/OmatthewY/explore-with-me/modules/user/entity"
	statsdto "github.com/OmatthewY/explore-with-me/stats/dto"
)

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, _ bool, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEventRepo struct {
	events       map[int64]*entity.Event
	listed       []entity.Event
	nextID       int64
	nextLocation int64
	publicFilter entity.PublicFilter
	adminFilter  entity.AdminFilter
}

func newFakeEventRepo(events ...entity.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: map[int64]*entity.Event{}, nextID: 100, nextLocation: 500}
	for i := range events {
		e := events[i]
		r.events[e.ID] = &e
		r.listed = append(r.listed, e)
	}
	return r
}

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) (*entity.Event, error) {
	r.nextID++
	e := *event
	e.ID = r.nextID
	r.events[e.ID] = &e
	copied := e
	return &copied, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *entity.Event) error {
	e := *event
	r.events[e.ID] = &e
	return nil
}

func (r *fakeEventRepo) SaveLocation(_ context.Context, _, _ float64) (int64, error) {
	r.nextLocation++
	return r.nextLocation, nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*entity.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEventRepo) Lock(context.Context, int64) error { return nil }

func (r *fakeEventRepo) FindByIDs(_ context.Context, ids []int64) ([]entity.Event, error) {
	var out []entity.Event
	for _, id := range ids {
		if e, ok := r.events[id]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) FindByInitiator(_ context.Context, initiatorID int64, _ params.PageParams) ([]entity.Event, error) {
	var out []entity.Event
	for _, e := range r.listed {
		if e.InitiatorID == initiatorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) FindPublic(_ context.Context, filter entity.PublicFilter, _ params.PageParams) ([]entity.Event, error) {
	r.publicFilter = filter
	return r.listed, nil
}

func (r *fakeEventRepo) FindAdmin(_ context.Context, filter entity.AdminFilter, _ params.PageParams) ([]entity.Event, error) {
	r.adminFilter = filter
	return r.listed, nil
}

type fakeCategories map[int64]bool

func (f fakeCategories) GetByID(_ context.Context, id int64) (*categoryentity.Category, error) {
	if !f[id] {
		return nil, nil
	}
	return &categoryentity.Category{ID: id, Name: "concerts"}, nil
}

type fakeUsers map[int64]bool

func (f fakeUsers) GetByID(_ context.Context, id int64) (*userentity.User, error) {
	if !f[id] {
		return nil, nil
	}
	return &userentity.User{ID: id, Name: "user", Email: "user@example.com"}, nil
}

type fakeCounters struct {
	confirmed map[int64]int64
	likes     map[int64]int64
	dislikes  map[int64]int64
	scores    map[int64]int64
}

func (f *fakeCounters) CountConfirmed(_ context.Context, eventID int64) (int64, error) {
	return f.confirmed[eventID], nil
}

func (f *fakeCounters) CountConfirmedByEvents(_ context.Context, ids []int64) (map[int64]int64, error) {
	out := map[int64]int64{}
	for _, id := range ids {
		if v, ok := f.confirmed[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (f *fakeCounters) CountLikes(_ context.Context, eventID int64) (int64, error) {
	return f.likes[eventID], nil
}

func (f *fakeCounters) CountDislikes(_ context.Context, eventID int64) (int64, error) {
	return f.dislikes[eventID], nil
}

func (f *fakeCounters) ScoresByEvents(_ context.Context, ids []int64) (map[int64]int64, error) {
	out := map[int64]int64{}
	for _, id := range ids {
		if v, ok := f.scores[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

type fakeStats struct {
	rows     []statsdto.ViewStats
	requests []statsdto.StatsRequest
}

func (f *fakeStats) GetStats(_ context.Context, req statsdto.StatsRequest) ([]statsdto.ViewStats, error) {
	f.requests = append(f.requests, req)
	return f.rows, nil
}

type fixture struct {
	svc      *EventService
	repo     *fakeEventRepo
	counters *fakeCounters
	stats    *fakeStats
	now      time.Time
}

func newFixture(events ...entity.Event) *fixture {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	f := &fixture{
		repo:     newFakeEventRepo(events...),
		counters: &fakeCounters{},
		stats:    &fakeStats{},
		now:      now,
	}
	f.svc = NewEventService(f.repo, fakeCategories{1: true, 2: true}, fakeUsers{1: true, 2: true, 3: true},
		f.counters, f.counters, f.stats, "ewm", fakeTx{})
	clock := func() time.Time { return now }
	f.svc.now = clock
	f.svc.enricher.now = clock
	return f
}

func publishedEvent(id int64, publishedOn time.Time) entity.Event {
	p := publishedOn
	return entity.Event{
		ID:          id,
		Title:       "event",
		Annotation:  "an annotation long enough",
		CategoryID:  1,
		InitiatorID: 1,
		State:       entity.StatePublished,
		EventDate:   publishedOn.Add(48 * time.Hour),
		PublishedOn: &p,
	}
}

func pendingEvent(id int64, eventDate time.Time) entity.Event {
	return entity.Event{
		ID:          id,
		Title:       "event",
		CategoryID:  1,
		InitiatorID: 1,
		State:       entity.StatePending,
		EventDate:   eventDate,
	}
}
