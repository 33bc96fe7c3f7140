package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/civic-etl-go/internal/config"
	"github.com/jengzang/civic-etl-go/internal/database"
	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/pipeline"
	"github.com/jengzang/civic-etl-go/internal/repository"
	"github.com/jengzang/civic-etl-go/internal/stats"
)

const testSecret = "test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	conn, err := database.Open(filepath.Join(root, "civic.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, database.NewMigrationManager(conn).RunMigrations())

	ctx := context.Background()
	ring := orb.Ring{{-79.4, 43.6}, {-79.3, 43.6}, {-79.3, 43.7}, {-79.4, 43.7}, {-79.4, 43.6}}
	require.NoError(t, repository.NewZoneRepository(conn).ReplaceWards(ctx, []models.Ward{
		{ID: 1, Name: "West", Population: 20000, CityID: 1, Boundary: orb.MultiPolygon{{ring}}},
	}))
	require.NoError(t, repository.NewStationRepository(conn).ReplaceAll(ctx, []models.Station{
		{ID: 7000, Name: "Bay St", Lat: 43.65, Lon: -79.38, Capacity: 15, WardID: models.Zone(1)},
		{ID: 7001, Name: "Far", Lat: 43.75, Lon: -79.20, Capacity: 11},
	}))
	require.NoError(t, repository.NewAccidentRepository(conn).ReplaceAll(ctx, []models.AccidentRecord{
		{Date: models.NewDate(time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC)), Latitude: 43.65, Longitude: -79.35, Class: models.ClassFatal, WardID: models.Zone(1)},
	}))

	cfg := &config.Config{JWTSecret: testSecret, CityID: 1}
	layout := pipeline.DefaultLayout(filepath.Join(root, "raw"), filepath.Join(root, "processed"))
	engine := pipeline.NewEngine(cfg, layout, pipeline.NewStore(conn))
	return SetupRouter(cfg, conn, engine)
}

func do(t *testing.T, r *gin.Engine, method, target, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func signedToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestHealthAndMetrics(t *testing.T) {
	r := setup(t)

	w, _ := do(t, r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w, _ = do(t, r, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestStationsEndpoints(t *testing.T) {
	r := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/v1/stations?pageSize=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var page models.Page[json.RawMessage]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 1)

	w, env = do(t, r, http.MethodGet, "/api/v1/stations/nearest?lat=43.651&lon=-79.381&limit=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var nearest []struct {
		ID       int32   `json:"station_id"`
		Distance float64 `json:"distance_meters"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &nearest))
	require.Len(t, nearest, 1)
	assert.Equal(t, int32(7000), nearest[0].ID)
	assert.Less(t, nearest[0].Distance, 200.0)

	w, _ = do(t, r, http.MethodGet, "/api/v1/stations/nearest?lat=123&lon=-79", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// the equator and prime meridian are valid coordinates
	w, env = do(t, r, http.MethodGet, "/api/v1/stations/nearest?lat=0&lon=0&limit=1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &nearest))
	require.Len(t, nearest, 1)

	w, _ = do(t, r, http.MethodGet, "/api/v1/stations/nearest?lon=-79", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/stations/9999", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/stations/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWeatherRejectsBadDates(t *testing.T) {
	r := setup(t)

	w, _ := do(t, r, http.MethodGet, "/api/v1/weather?from=01/02/2019", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/v1/weather?from=2019-01-01", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"data":[]`)
}

func TestWardsEndpoints(t *testing.T) {
	r := setup(t)

	w, env := do(t, r, http.MethodGet, "/api/v1/wards", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var wards []struct {
		ID           int64 `json:"ward_id"`
		Accidents    int64 `json:"accidents"`
		Stations     int   `json:"stations"`
		DockCapacity int   `json:"dock_capacity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &wards))
	require.Len(t, wards, 1)
	assert.Equal(t, int64(1), wards[0].Accidents)
	assert.Equal(t, 1, wards[0].Stations)
	assert.Equal(t, 15, wards[0].DockCapacity)

	w, env = do(t, r, http.MethodGet, "/api/v1/wards/stats", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Wards           int           `json:"wards"`
		Accidents       stats.Summary `json:"accidents"`
		AccidentsPer10k stats.Summary `json:"accidents_per_10k"`
		DockCapacity    stats.Summary `json:"dock_capacity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.Wards)
	assert.Equal(t, 1.0, summary.Accidents.Median)
	assert.Equal(t, 0.5, summary.AccidentsPer10k.Mean)
	assert.Equal(t, 15.0, summary.DockCapacity.Max)

	w, _ = do(t, r, http.MethodGet, "/api/v1/wards/geojson", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"FeatureCollection"`)
}

func TestStartRunRequiresToken(t *testing.T) {
	r := setup(t)

	w, _ := do(t, r, http.MethodPost, "/api/v1/runs", "", `{"datasets":["weather"]}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, r, http.MethodPost, "/api/v1/runs", signedToken(t, "wrong-secret"), `{"datasets":["weather"]}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := do(t, r, http.MethodPost, "/api/v1/runs", signedToken(t, testSecret), `{"datasets":["bikes"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Unknown dataset", env.Message)

	w, _ = do(t, r, http.MethodGet, "/api/v1/runs", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/api/v1/runs/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
