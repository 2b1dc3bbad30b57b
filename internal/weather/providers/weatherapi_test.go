package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tj/assert"

	"weather-gateway/internal/weather"
)

func TestCurrentSuccess(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"key": r.URL.Query().Get("key"),
			"q":   r.URL.Query().Get("q"),
			"aqi": r.URL.Query().Get("aqi"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(currentFixture))
	}))
	defer srv.Close()

	p := NewWeatherAPI(srv.Client(), "test-key", srv.URL)

	snapshot, err := p.Current(context.Background(), "London")
	assert.Nil(t, err)

	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "London", gotQuery["q"])
	assert.Equal(t, "yes", gotQuery["aqi"])
	assert.Equal(t, "London", snapshot.Location.Name)
}

func TestCurrentUnresolvableLocationIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPI(srv.Client(), "test-key", srv.URL)

	_, err := p.Current(context.Background(), "Nowheresville")
	assert.True(t, errors.Is(err, weather.ErrNotFound))
}

func TestCurrentAuthFailureIsUpstreamError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		p := NewWeatherAPI(srv.Client(), "bad-key", srv.URL)

		_, err := p.Current(context.Background(), "London")
		assert.True(t, errors.Is(err, weather.ErrUpstream))
		assert.False(t, errors.Is(err, weather.ErrNotFound))

		srv.Close()
	}
}

func TestCurrentServerErrorIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewWeatherAPI(srv.Client(), "test-key", srv.URL)

	_, err := p.Current(context.Background(), "London")
	assert.True(t, errors.Is(err, weather.ErrUpstream))
}

func TestCurrentTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	p := NewWeatherAPI(srv.Client(), "test-key", srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Current(ctx, "London")
	assert.True(t, errors.Is(err, weather.ErrUpstreamTimeout))
}

func TestMissingAPIKeyIsConfigError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	p := NewWeatherAPI(srv.Client(), "", srv.URL)

	_, err := p.Current(context.Background(), "London")
	assert.True(t, errors.Is(err, weather.ErrConfig))
	assert.Equal(t, 0, calls)
}

func TestCurrentMalformedJSONIsDataFormatError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"location": `))
	}))
	defer srv.Close()

	p := NewWeatherAPI(srv.Client(), "test-key", srv.URL)

	_, err := p.Current(context.Background(), "London")
	assert.True(t, errors.Is(err, weather.ErrDataFormat))
}

func TestForecastRequestParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("days"))
		assert.Equal(t, "no", r.URL.Query().Get("alerts"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastFixtureJSON(t)))
	}))
	defer srv.Close()

	p := NewWeatherAPI(srv.Client(), "test-key", srv.URL)

	snapshot, days, err := p.Forecast(context.Background(), "London", 3)
	assert.Nil(t, err)
	assert.Equal(t, "London", snapshot.Location.Name)
	assert.Len(t, days, 2)
	assert.Len(t, days[0].Hours, 8)
}

func TestHistoryRequestParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history.json", r.URL.Path)
		assert.Equal(t, "2025-02-28", r.URL.Query().Get("dt"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(historyFixtureJSON(t)))
	}))
	defer srv.Close()

	p := NewWeatherAPI(srv.Client(), "test-key", srv.URL)

	loc, day, err := p.History(context.Background(), "London", "2025-02-28")
	assert.Nil(t, err)
	assert.Equal(t, "London", loc.Name)
	assert.Equal(t, "2025-02-28", day.Date)
}

// forecastFixtureJSON extends the current fixture with two forecast days.
func forecastFixtureJSON(t *testing.T) string {
	t.Helper()

	p := decodePayload(t, currentFixture)
	p.Forecast = &rawForecast{
		Forecastday: []rawForecastDay{
			testForecastDay("2025-03-02", 24),
			testForecastDay("2025-03-03", 24),
		},
	}
	return marshalPayload(t, p)
}

func historyFixtureJSON(t *testing.T) string {
	t.Helper()

	p := decodePayload(t, currentFixture)
	p.Current = nil
	p.Forecast = &rawForecast{
		Forecastday: []rawForecastDay{testForecastDay("2025-02-28", 0)},
	}
	return marshalPayload(t, p)
}

func marshalPayload(t *testing.T, p payload) string {
	t.Helper()

	out, err := json.Marshal(p)
	assert.Nil(t, err)
	return string(out)
}
