package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stationPayload = `{"last_updated":1700000000,"data":{"stations":[{"station_id":"7000","name":"Fort York  Blvd / Capreol Ct","lat":43.639832,"lon":-79.395954,"capacity":35,"rental_methods":["KEY","CREDITCARD"]}]}}`

func newTestClient(url string, retries uint64) *Client {
	return NewClient(Options{
		StationInfoURL:  url,
		WeatherURL:      url + "/climate_data/bulk_data_e.html",
		Timeout:         time.Second,
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
	})
}

func TestStationInformation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(stationPayload))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL, 3).StationInformation(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, stationPayload, string(body))
}

func TestStationInformationRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(stationPayload))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).StationInformation(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestStationInformationGivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2).StationInformation(context.Background())
	var ferr *Error
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, http.StatusBadGateway, ferr.Status)
	assert.Equal(t, SourceStations, ferr.Source)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestStationInformationPermanentFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"client error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		"bad shape": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"stations":{}}}`))
		},
		"not json": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		},
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				handler(w, r)
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, 3).StationInformation(context.Background())
			var ferr *Error
			require.True(t, errors.As(err, &ferr))
			assert.False(t, ferr.Retryable())
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestWeatherMonth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/climate_data/bulk_data_e.html", r.URL.Path)
		assert.Equal(t, "csv", q.Get("format"))
		assert.Equal(t, "51459", q.Get("stationID"))
		assert.Equal(t, "2018", q.Get("Year"))
		assert.Equal(t, "3", q.Get("Month"))
		assert.Equal(t, "2", q.Get("timeframe"))
		w.Write([]byte("\"Date/Time\",\"Mean Temp (°C)\"\n\"2018-01-01\",\"-5\"\n"))
	}))
	defer srv.Close()

	body, err := newTestClient(srv.URL, 0).WeatherMonth(context.Background(), 51459, 2018, 3)
	require.NoError(t, err)
	assert.Contains(t, string(body), "2018-01-01")
}

func TestWeatherMonthCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL, 5).WeatherMonth(ctx, 51459, 2018, 1)
	assert.Error(t, err)
}

func TestWeatherFileName(t *testing.T) {
	assert.Equal(t, "51459_2018_03_daily.csv", WeatherFileName(51459, 2018, 3))
}
