package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/OmatthewY/explore-with-me/stats/dto"
	"github.com/OmatthewY/explore-with-me/stats/entity"
	"github.com/OmatthewY/explore-with-me/stats/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryHits aggregates like the SQL repository does.
type memoryHits struct {
	hits []entity.Hit
}

func (m *memoryHits) Save(_ context.Context, hit *entity.Hit) (*entity.Hit, error) {
	saved := *hit
	saved.ID = int64(len(m.hits) + 1)
	m.hits = append(m.hits, saved)
	return &saved, nil
}

func (m *memoryHits) Stats(_ context.Context, f entity.StatsFilter) ([]entity.ViewStat, error) {
	type key struct{ app, uri string }
	counts := map[key]map[string]int64{}
	for _, h := range m.hits {
		if h.Created.Before(f.Start) || h.Created.After(f.End) {
			continue
		}
		if len(f.URIs) > 0 && !slices.Contains(f.URIs, h.URI) {
			continue
		}
		k := key{h.App, h.URI}
		if counts[k] == nil {
			counts[k] = map[string]int64{}
		}
		counts[k][h.IP]++
	}

	out := []entity.ViewStat{}
	for k, byIP := range counts {
		var hits int64
		for _, n := range byIP {
			if f.Unique {
				hits++
			} else {
				hits += n
			}
		}
		out = append(out, entity.ViewStat{App: k.app, URI: k.uri, Hits: hits})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hits > out[j].Hits })
	return out, nil
}

func newRouter() (http.Handler, *memoryHits) {
	repo := &memoryHits{}
	r := chi.NewRouter()
	NewStatsHandler(service.NewStatsService(repo)).Routes(r)
	return r, repo
}

func postHit(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/hit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func getStats(t *testing.T, h http.Handler, query string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats?"+query, nil))
	return rec
}

func hitBody(uri, ip string) string {
	return `{"app":"ewm-main-service","uri":"` + uri + `","ip":"` + ip + `","timestamp":"2024-05-01 10:00:00"}`
}

func statsQuery(uris []string, unique bool) string {
	q := url.Values{}
	q.Set("start", "2024-01-01 00:00:00")
	q.Set("end", "2024-12-31 00:00:00")
	for _, u := range uris {
		q.Add("uris", u)
	}
	if unique {
		q.Set("unique", "true")
	}
	return q.Encode()
}

func TestSaveHit_Created(t *testing.T) {
	h, repo := newRouter()

	rec := postHit(t, h, hitBody("/events/1", "10.0.0.1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var saved dto.EndpointHit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "/events/1", saved.URI)
	assert.Len(t, repo.hits, 1)
}

func TestSaveHit_Invalid(t *testing.T) {
	h, repo := newRouter()

	assert.Equal(t, http.StatusBadRequest, postHit(t, h, hitBody("/events/1", "not-an-ip")).Code)
	assert.Equal(t, http.StatusBadRequest, postHit(t, h, hitBody("", "10.0.0.1")).Code)
	assert.Equal(t, http.StatusBadRequest, postHit(t, h, `{"app":`).Code)
	assert.Empty(t, repo.hits)
}

func TestGetStats_UniqueAndTotal(t *testing.T) {
	h, _ := newRouter()
	for range 3 {
		require.Equal(t, http.StatusCreated, postHit(t, h, hitBody("/events/1", "10.0.0.1")).Code)
	}
	require.Equal(t, http.StatusCreated, postHit(t, h, hitBody("/events/2", "10.0.0.2")).Code)
	require.Equal(t, http.StatusCreated, postHit(t, h, hitBody("/events/2", "10.0.0.3")).Code)

	var total []dto.ViewStats
	rec := getStats(t, h, statsQuery([]string{"/events/1", "/events/2"}, false))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &total))
	require.Len(t, total, 2)
	assert.Equal(t, dto.ViewStats{App: "ewm-main-service", URI: "/events/1", Hits: 3}, total[0])

	var unique []dto.ViewStats
	rec = getStats(t, h, statsQuery([]string{"/events/1"}, true))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unique))
	require.Len(t, unique, 1)
	assert.Equal(t, int64(1), unique[0].Hits)
}

func TestGetStats_DoubleEncodedDates(t *testing.T) {
	h, _ := newRouter()
	require.Equal(t, http.StatusCreated, postHit(t, h, hitBody("/events/1", "10.0.0.1")).Code)

	start := url.QueryEscape(url.QueryEscape("2024-01-01 00:00:00"))
	end := url.QueryEscape(url.QueryEscape("2024-12-31 00:00:00"))
	rec := getStats(t, h, "start="+start+"&end="+end)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"hits":1`)
}

func TestGetStats_BadRequests(t *testing.T) {
	h, _ := newRouter()

	rec := getStats(t, h, "start=2024-12-31%2000:00:00&end=2024-01-01%2000:00:00")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "WRONG_DATE")

	assert.Equal(t, http.StatusBadRequest, getStats(t, h, "end=2024-01-01%2000:00:00").Code)
	assert.Equal(t, http.StatusBadRequest, getStats(t, h, "start=yesterday&end=2024-01-01%2000:00:00").Code)
}

func TestGetStats_NoHitsIsEmptyList(t *testing.T) {
	h, _ := newRouter()

	rec := getStats(t, h, statsQuery(nil, false))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
