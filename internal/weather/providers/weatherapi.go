package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"weather-gateway/internal/weather"
)

// DefaultBaseURL is the weatherapi.com API root.
const DefaultBaseURL = "http://api.weatherapi.com/v1"

// WeatherAPI is an HTTP client for weatherapi.com implementing
// weather.Provider. Outbound calls go through a circuit breaker so a broken
// upstream fails fast instead of tying up request handlers.
type WeatherAPI struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewWeatherAPI creates a client. An empty baseURL selects the production API.
func NewWeatherAPI(client *http.Client, apiKey, baseURL string) *WeatherAPI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &WeatherAPI{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

// Current fetches current conditions for a location query.
func (p *WeatherAPI) Current(ctx context.Context, query string) (weather.Snapshot, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("aqi", "yes")

	pl, err := p.get(ctx, "current.json", params)
	if err != nil {
		return weather.Snapshot{}, err
	}
	return mapSnapshot(pl)
}

// Forecast fetches current conditions plus a days-long forecast.
func (p *WeatherAPI) Forecast(ctx context.Context, query string, days int) (weather.Snapshot, []weather.ForecastDay, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("days", strconv.Itoa(days))
	params.Set("aqi", "yes")
	params.Set("alerts", "no")

	pl, err := p.get(ctx, "forecast.json", params)
	if err != nil {
		return weather.Snapshot{}, nil, err
	}

	snapshot, err := mapSnapshot(pl)
	if err != nil {
		return weather.Snapshot{}, nil, err
	}
	forecastDays, err := mapForecastDays(pl)
	if err != nil {
		return weather.Snapshot{}, nil, err
	}
	return snapshot, forecastDays, nil
}

// History fetches the day report for one past calendar date (YYYY-MM-DD).
func (p *WeatherAPI) History(ctx context.Context, query, date string) (weather.Location, weather.HistoryDay, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("dt", date)

	pl, err := p.get(ctx, "history.json", params)
	if err != nil {
		return weather.Location{}, weather.HistoryDay{}, err
	}
	return mapHistoryDay(pl)
}

// get issues one request (no retries) and maps transport and HTTP failures to
// the gateway error taxonomy. Only network failures and 5xx responses count
// against the breaker; client errors such as an unresolvable location do not.
func (p *WeatherAPI) get(ctx context.Context, endpoint string, params url.Values) (payload, error) {
	if p.apiKey == "" {
		return payload{}, weather.ErrConfig
	}
	params.Set("key", p.apiKey)

	u := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return payload{}, fmt.Errorf("%w: %v", weather.ErrUpstream, err)
	}

	result, err := p.circuit.Execute(func() (interface{}, error) {
		resp, doErr := p.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: provider returned status %d", weather.ErrUpstream, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return payload{}, fmt.Errorf("%w: circuit breaker open", weather.ErrUpstream)
		}
		if errors.Is(err, weather.ErrUpstream) {
			return payload{}, err
		}
		return payload{}, classifyTransportErr(err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		// The provider reports an unresolvable location as 400.
		return payload{}, fmt.Errorf("%w: provider could not resolve location", weather.ErrNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return payload{}, fmt.Errorf("%w: authentication or quota failure (status %d)", weather.ErrUpstream, resp.StatusCode)
	default:
		return payload{}, fmt.Errorf("%w: unexpected status %d", weather.ErrUpstream, resp.StatusCode)
	}

	var pl payload
	if err := json.NewDecoder(resp.Body).Decode(&pl); err != nil {
		return payload{}, fmt.Errorf("%w: %v", weather.ErrDataFormat, err)
	}
	return pl, nil
}

func classifyTransportErr(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", weather.ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %v", weather.ErrUpstream, err)
}
