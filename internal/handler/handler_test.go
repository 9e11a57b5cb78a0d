package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReimoK/PathBuddy/internal/auth"
	"github.com/ReimoK/PathBuddy/internal/domain"
	"github.com/ReimoK/PathBuddy/internal/handler"
	"github.com/ReimoK/PathBuddy/internal/middleware"
	"github.com/ReimoK/PathBuddy/internal/store"
)

var testToday = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

// testEnv bundles a fully wired test server with direct store access so
// tests can seed and inspect state without going through HTTP.
type testEnv struct {
	srv      *httptest.Server
	trips    *store.MemoryTripStore
	profiles *store.MemoryProfileStore
}

// newTestEnv builds the real router — bearer auth middleware included — on
// top of the in-memory stores, with a fixed clock for the planned/past split.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	trips := store.NewMemoryTripStore()
	profiles := store.NewMemoryProfileStore()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := handler.NewServerWithClock(trips, profiles, logger, func() time.Time { return testToday })

	r := chi.NewRouter()
	r.Use(middleware.NewBearerAuth(auth.TokenMap{"secret-a": "user-1", "secret-b": "user-2"}))
	s.Routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, trips: trips, profiles: profiles}
}

// do issues a JSON request with the given bearer token ("" for none) and
// decodes the response body into out when out is non-nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	var body map[string]string
	code := env.do(t, http.MethodGet, "/healthz", "", nil, &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateTrip_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	code := env.do(t, http.MethodPost, "/api/trips", "secret-a", map[string]string{
		"destination": "Paris",
		"start_date":  "2025-06-01",
		"end_date":    "2025-05-30",
	}, &body)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "End date cannot be before start date", body.Errors["end_date"])
	assert.Empty(t, body.Errors["destination"])
	assert.Empty(t, body.Errors["start_date"])

	trips, err := env.trips.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, trips, "validation failure must not write to the store")
}

// TestCreateTrip_CanonicalizesDates verifies the full pipeline over HTTP:
// slash-format input is persisted in ISO form.
func TestCreateTrip_CanonicalizesDates(t *testing.T) {
	env := newTestEnv(t)

	var body map[string]int64
	code := env.do(t, http.MethodPost, "/api/trips", "secret-a", map[string]string{
		"destination": "  Paris, France ",
		"start_date":  "06/01/2025",
		"end_date":    "06/10/2025",
		"interests":   "food",
		"budget":      "Moderate",
	}, &body)

	require.Equal(t, http.StatusCreated, code)
	require.NotZero(t, body["id"])

	saved, err := env.trips.Get(context.Background(), body["id"], "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Paris, France", saved.Destination)
	assert.Equal(t, "2025-06-01", saved.StartDate)
	assert.Equal(t, "2025-06-10", saved.EndDate)
	require.NotNil(t, saved.BudgetCategory)
	assert.Equal(t, "Moderate", *saved.BudgetCategory)
}

func TestCreateTrip_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodPost, env.srv.URL+"/api/trips", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret-a")

	resp, err := env.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateTrip_ReplacesInPlace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id, err := env.trips.Save(ctx, domain.Trip{
		Owner: "user-1", Destination: "Paris", StartDate: "2025-06-01", EndDate: "2025-06-10",
	})
	require.NoError(t, err)

	var body map[string]int64
	code := env.do(t, http.MethodPut, "/api/trips/"+itoa(id), "secret-a", map[string]string{
		"destination": "Rome, Italy",
		"start_date":  "2025-07-01",
		"end_date":    "2025-07-05",
	}, &body)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, id, body["id"])

	trips, err := env.trips.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, trips, 1, "update must not create a second record")
	assert.Equal(t, "Rome, Italy", trips[0].Destination)
}

func TestUpdateTrip_NotFound(t *testing.T) {
	env := newTestEnv(t)

	code := env.do(t, http.MethodPut, "/api/trips/999", "secret-a", map[string]string{
		"destination": "Rome",
		"start_date":  "2025-07-01",
		"end_date":    "2025-07-05",
	}, nil)

	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetTrip_WithItinerary(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.trips.Save(context.Background(), domain.Trip{
		Owner: "user-1", Destination: "Paris", StartDate: "2025-01-01", EndDate: "2025-01-03",
	})
	require.NoError(t, err)

	var body struct {
		Destination string   `json:"destination"`
		Itinerary   []string `json:"itinerary"`
	}
	code := env.do(t, http.MethodGet, "/api/trips/"+itoa(id), "secret-a", nil, &body)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Paris", body.Destination)
	assert.Equal(t, []string{"2025-01-01", "2025-01-02", "2025-01-03"}, body.Itinerary)
}

// TestGetTrip_UnparseableDates_EmptyItinerary pins the fail-closed itinerary
// rule at the API level.
func TestGetTrip_UnparseableDates_EmptyItinerary(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.trips.Save(context.Background(), domain.Trip{
		Owner: "user-1", Destination: "Paris", StartDate: "someday", EndDate: "2025-01-03",
	})
	require.NoError(t, err)

	var body struct {
		Itinerary []string `json:"itinerary"`
	}
	code := env.do(t, http.MethodGet, "/api/trips/"+itoa(id), "secret-a", nil, &body)

	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body.Itinerary)
}

func TestGetTrip_OtherUsersTrip_NotFound(t *testing.T) {
	env := newTestEnv(t)

	id, err := env.trips.Save(context.Background(), domain.Trip{
		Owner: "user-2", Destination: "Paris", StartDate: "2025-01-01", EndDate: "2025-01-03",
	})
	require.NoError(t, err)

	code := env.do(t, http.MethodGet, "/api/trips/"+itoa(id), "secret-a", nil, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHome_PartitionsTrips(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.trips.Save(ctx, domain.Trip{Owner: "user-1", Destination: "Future", StartDate: "2025-07-01", EndDate: "2025-07-10"})
	require.NoError(t, err)
	_, err = env.trips.Save(ctx, domain.Trip{Owner: "user-1", Destination: "Past", StartDate: "2025-01-01", EndDate: "2025-01-05"})
	require.NoError(t, err)
	require.NoError(t, env.profiles.Write(ctx, "user-1", domain.Profile{Name: "Reimo"}))

	var body struct {
		Profile domain.Profile `json:"profile"`
		Planned []domain.Trip  `json:"planned_trips"`
		Past    []domain.Trip  `json:"past_trips"`
	}
	code := env.do(t, http.MethodGet, "/api/home", "secret-a", nil, &body)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Reimo", body.Profile.Name)
	require.Len(t, body.Planned, 1)
	assert.Equal(t, "Future", body.Planned[0].Destination)
	require.Len(t, body.Past, 1)
	assert.Equal(t, "Past", body.Past[0].Destination)
}

// TestHome_Unauthenticated_DegradesToEmpty verifies identity absence reads
// as "no data", not as an error.
func TestHome_Unauthenticated_DegradesToEmpty(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.trips.Save(context.Background(), domain.Trip{
		Owner: "user-1", Destination: "Paris", StartDate: "2025-07-01", EndDate: "2025-07-10",
	})
	require.NoError(t, err)

	var body struct {
		Planned []domain.Trip `json:"planned_trips"`
		Past    []domain.Trip `json:"past_trips"`
	}
	code := env.do(t, http.MethodGet, "/api/home", "", nil, &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body.Planned)
	assert.Empty(t, body.Past)
}

func TestClearTrips(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.trips.Save(ctx, domain.Trip{Owner: "user-1", Destination: "Paris", StartDate: "2025-07-01", EndDate: "2025-07-10"})
	require.NoError(t, err)

	code := env.do(t, http.MethodDelete, "/api/trips", "secret-a", nil, nil)
	assert.Equal(t, http.StatusNoContent, code)

	trips, err := env.trips.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestProfile_PutGetClear(t *testing.T) {
	env := newTestEnv(t)

	var putResp map[string]string
	code := env.do(t, http.MethodPut, "/api/profile", "secret-a", map[string]string{
		"name":               "  Reimo ",
		"home_base":          "Tartu, Estonia",
		"favorite_interests": "hiking",
	}, &putResp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Profile saved!", putResp["status"])

	var got domain.Profile
	code = env.do(t, http.MethodGet, "/api/profile", "secret-a", nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Reimo", got.Name, "saved profile must be trimmed")
	assert.Equal(t, "Tartu, Estonia", got.HomeBase)

	code = env.do(t, http.MethodDelete, "/api/profile", "secret-a", nil, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code = env.do(t, http.MethodGet, "/api/profile", "secret-a", nil, &got)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, got.Name)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
