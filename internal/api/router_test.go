package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/optimizer"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/services"
)

const squareBody = `{"closed_tour": true, "stops": [
	{"id": "A", "lat": 0, "lng": 0},
	{"id": "C", "lat": 1, "lng": 1},
	{"id": "B", "lat": 0, "lng": 1},
	{"id": "D", "lat": 1, "lng": 0}
]}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(conn))
	require.NoError(t, repositories.SeedStopLists(conn, repositories.DialectSQLite, []repositories.StopListSeed{{
		ID:   "square",
		Name: "Equator square",
		Stops: []domain.Stop{
			{ID: "A", Lat: 0, Lng: 0},
			{ID: "B", Lat: 0, Lng: 1},
			{ID: "C", Lat: 1, Lng: 1},
			{ID: "D", Lat: 1, Lng: 0},
		},
	}}))

	repo := repositories.NewSQLStopListRepository(conn, repositories.DialectSQLite)
	svc := services.NewRouteService(repo, nil, optimizer.DefaultOptions(), 2)

	srv := httptest.NewServer(NewRouter(repo, svc, conn))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decode[map[string]string](t, res)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["store"])

	_, err := uuid.Parse(res.Header.Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestHealthMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	assert.Equal(t, http.MethodGet, res.Header.Get("Allow"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.NewString()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", id)
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, id, res.Header.Get("X-Request-ID"))

	req.Header.Set("X-Request-ID", "not a uuid")
	res2, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res2.Body.Close()
	assert.NotEqual(t, "not a uuid", res2.Header.Get("X-Request-ID"))
}

func TestOptimizeSquare(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/routes/optimize", squareBody)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	route := decode[dto.RouteResponse](t, res)
	assert.Equal(t, []string{"A", "B", "C", "D"}, route.Order)
	assert.Equal(t, "exact", route.Method)
	assert.True(t, route.ClosedTour)
	assert.InDelta(t, 444.7, route.TotalDistanceKm, 0.2)
	assert.Len(t, route.Legs, 4)
	require.Len(t, route.Path, 5)
	assert.Equal(t, []float64{1, 0}, route.Path[1], "path entries are [lng, lat]")
	assert.Equal(t, route.Path[0], route.Path[4])
}

func TestOptimizeEmptyStopsArrayIsTrivial(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/routes/optimize", `{"stops": []}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	route := decode[dto.RouteResponse](t, res)
	assert.Empty(t, route.Order)
	assert.Equal(t, 0.0, route.TotalDistanceKm)
	assert.Equal(t, "trivial", route.Method)
}

func TestOptimizeClientErrors(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		code   string
		stopID string
	}{
		{"missing stops", `{}`, "empty_input", ""},
		{"null stops", `{"stops": null}`, "empty_input", ""},
		{"duplicate id", `{"stops": [{"id":"A","lat":0,"lng":0},{"id":"B","lat":0,"lng":1},{"id":"A","lat":1,"lng":1}]}`, "duplicate_id", "A"},
		{"latitude out of range", `{"stops": [{"id":"A","lat":0,"lng":0},{"id":"far","lat":95,"lng":0}]}`, "invalid_coordinate", "far"},
		{"missing longitude", `{"stops": [{"id":"A","lat":0}]}`, "invalid_coordinate", ""},
		{"threshold too large", `{"exact_threshold": 20, "stops": [{"id":"A","lat":0,"lng":0}]}`, "invalid_options", ""},
	}

	srv := newTestServer(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := do(t, srv, http.MethodPost, "/routes/optimize", tc.body)
			require.Equal(t, http.StatusBadRequest, res.StatusCode)

			body := decode[dto.ErrorResponse](t, res)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.stopID, body.StopID)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestOptimizeMalformedBodies(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{"", "{", `{"stops": []} {"stops": []}`, `{"stops": "nope"}`} {
		res := do(t, srv, http.MethodPost, "/routes/optimize", body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "body %q", body)
	}
}

func TestOptimizeIgnoresUnknownFields(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/routes/optimize", `{"colour":"blue","stops":[{"id":"A","lat":0,"lng":0,"etc":1}]}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestOptimizeBatch(t *testing.T) {
	srv := newTestServer(t)

	body := `{"requests": [
		` + squareBody + `,
		{"stops": [{"id":"A","lat":0,"lng":0},{"id":"A","lat":0,"lng":1}]},
		{"stops": [{"id":"A","lng":0}]},
		{"stops": [{"id":"solo","lat":10,"lng":10}]}
	]}`
	res := do(t, srv, http.MethodPost, "/routes/optimize/batch", body)
	require.Equal(t, http.StatusOK, res.StatusCode)

	out := decode[dto.BatchOptimizeResponse](t, res)
	require.Len(t, out.Results, 4)

	require.NotNil(t, out.Results[0].Route)
	assert.Equal(t, []string{"A", "B", "C", "D"}, out.Results[0].Route.Order)

	require.NotNil(t, out.Results[1].Error)
	assert.Equal(t, "duplicate_id", out.Results[1].Error.Code)
	assert.Nil(t, out.Results[1].Route)

	require.NotNil(t, out.Results[2].Error)
	assert.Equal(t, "invalid_coordinate", out.Results[2].Error.Code)

	require.NotNil(t, out.Results[3].Route)
	assert.Equal(t, []string{"solo"}, out.Results[3].Route.Order)

	for i, r := range out.Results {
		assert.Equal(t, i, r.Index)
	}
}

func TestOptimizeBatchTooLarge(t *testing.T) {
	srv := newTestServer(t)

	reqs := make([]string, services.MaxBatchSize+1)
	for i := range reqs {
		reqs[i] = `{"stops": []}`
	}
	res := do(t, srv, http.MethodPost, "/routes/optimize/batch", `{"requests": [`+strings.Join(reqs, ",")+`]}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "batch_too_large", decode[dto.ErrorResponse](t, res).Code)
}

func TestListStopLists(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodGet, "/stop-lists", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	out := decode[dto.ListStopListsResponse](t, res)
	require.Len(t, out.StopLists, 1)
	assert.Equal(t, dto.StopListSummary{ID: "square", Name: "Equator square", StopCount: 4, OriginID: "A"}, out.StopLists[0])
}

func TestOptimizeStopList(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/stop-lists/square/optimize", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	route := decode[dto.RouteResponse](t, res)
	assert.False(t, route.ClosedTour)
	assert.Equal(t, "A", route.Order[0])
	assert.Len(t, route.Legs, 3)

	res = do(t, srv, http.MethodPost, "/stop-lists/square/optimize", `{"closed_tour": true}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	route = decode[dto.RouteResponse](t, res)
	assert.Equal(t, []string{"A", "B", "C", "D"}, route.Order)
	assert.Len(t, route.Legs, 4)
}

func TestOptimizeStopListNotFound(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/stop-lists/nowhere/optimize", "")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "not_found", decode[dto.ErrorResponse](t, res).Code)
}

func TestOptimizeStopListMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodGet, "/stop-lists/square/optimize", "")
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}
