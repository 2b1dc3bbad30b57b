package weather

import (
	"context"
	"fmt"
	"time"

	"weather-gateway/internal/logger"
)

const (
	// DefaultSingleTimeout bounds single-resource upstream lookups.
	DefaultSingleTimeout = 10 * time.Second
	// DefaultForecastTimeout bounds forecast lookups, which carry larger payloads.
	DefaultForecastTimeout = 15 * time.Second

	// MinForecastDays and MaxForecastDays bound the forecast days parameter.
	MinForecastDays = 1
	MaxForecastDays = 10
	// MinHistoryDays and MaxHistoryDays bound the history days parameter.
	MinHistoryDays = 1
	MaxHistoryDays = 7
)

// LocationQuery is one of the three mutually exclusive location forms a
// request may carry.
type LocationQuery struct {
	City string
	Lat  *float64
	Lon  *float64
}

// providerQuery renders the query in the upstream provider's location syntax.
func (q LocationQuery) providerQuery() string {
	if q.Lat != nil && q.Lon != nil {
		return fmt.Sprintf("%f,%f", *q.Lat, *q.Lon)
	}
	return q.City
}

// Service implements the gateway operations on top of a single upstream
// provider. It holds no mutable state; every call is independent.
type Service struct {
	provider        Provider
	singleTimeout   time.Duration
	forecastTimeout time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// NewService creates a Service. Zero timeouts fall back to the defaults.
func NewService(provider Provider, singleTimeout, forecastTimeout time.Duration) *Service {
	if singleTimeout <= 0 {
		singleTimeout = DefaultSingleTimeout
	}
	if forecastTimeout <= 0 {
		forecastTimeout = DefaultForecastTimeout
	}
	return &Service{
		provider:        provider,
		singleTimeout:   singleTimeout,
		forecastTimeout: forecastTimeout,
		now:             time.Now,
	}
}

// Current returns current conditions for a city.
func (s *Service) Current(ctx context.Context, city string) (Snapshot, error) {
	if city == "" {
		return Snapshot{}, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.singleTimeout)
	defer cancel()

	return s.provider.Current(ctx, city)
}

// ByCoordinates returns current conditions for a lat/lon pair. Out-of-range
// coordinates are rejected before any upstream call is made.
func (s *Service) ByCoordinates(ctx context.Context, lat, lon float64) (Snapshot, error) {
	if lat < -90 || lat > 90 {
		return Snapshot{}, fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidInput)
	}
	if lon < -180 || lon > 180 {
		return Snapshot{}, fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, s.singleTimeout)
	defer cancel()

	return s.provider.Current(ctx, fmt.Sprintf("%f,%f", lat, lon))
}

// Forecast returns current conditions plus a days-long forecast for exactly
// one location form.
func (s *Service) Forecast(ctx context.Context, loc LocationQuery, days int) (ForecastReport, error) {
	hasCity := loc.City != ""
	hasCoords := loc.Lat != nil && loc.Lon != nil

	switch {
	case !hasCity && !hasCoords:
		return ForecastReport{}, fmt.Errorf("%w: either city or lat/lon must be provided", ErrInvalidInput)
	case hasCity && hasCoords:
		return ForecastReport{}, fmt.Errorf("%w: city and lat/lon are mutually exclusive", ErrInvalidInput)
	}
	if hasCoords {
		if *loc.Lat < -90 || *loc.Lat > 90 {
			return ForecastReport{}, fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidInput)
		}
		if *loc.Lon < -180 || *loc.Lon > 180 {
			return ForecastReport{}, fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidInput)
		}
	}
	if days < MinForecastDays || days > MaxForecastDays {
		return ForecastReport{}, fmt.Errorf("%w: days must be between %d and %d", ErrInvalidInput, MinForecastDays, MaxForecastDays)
	}

	ctx, cancel := context.WithTimeout(ctx, s.forecastTimeout)
	defer cancel()

	snapshot, forecastDays, err := s.provider.Forecast(ctx, loc.providerQuery(), days)
	if err != nil {
		return ForecastReport{}, err
	}

	return ForecastReport{
		Snapshot: snapshot,
		Forecast: ForecastBlock{Forecastday: forecastDays},
	}, nil
}

// History returns day reports for the `days` calendar dates immediately
// preceding today, most recent first. Dates the upstream fails for are
// skipped; the result is shorter than `days` on partial failure and the
// operation fails with ErrNotFound only when every date fails. Location
// metadata is taken from the last per-date call that succeeded.
func (s *Service) History(ctx context.Context, city string, days int) (HistoryReport, error) {
	if city == "" {
		return HistoryReport{}, fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if days < MinHistoryDays || days > MaxHistoryDays {
		return HistoryReport{}, fmt.Errorf("%w: days must be between %d and %d", ErrInvalidInput, MinHistoryDays, MaxHistoryDays)
	}

	report := HistoryReport{History: make([]HistoryDay, 0, days)}

	for i := 0; i < days; i++ {
		date := s.now().AddDate(0, 0, -(i + 1)).Format("2006-01-02")

		loc, day, err := s.historyForDate(ctx, city, date)
		if err != nil {
			logger.WithFields(logger.Fields{
				"op":   "history",
				"city": city,
				"date": date,
			}).Warnf("skipping date: %v", err)
			continue
		}

		report.Location = loc
		report.History = append(report.History, day)
	}

	if len(report.History) == 0 {
		return HistoryReport{}, fmt.Errorf("%w: no history available for %q", ErrNotFound, city)
	}

	return report, nil
}

func (s *Service) historyForDate(ctx context.Context, city, date string) (Location, HistoryDay, error) {
	ctx, cancel := context.WithTimeout(ctx, s.singleTimeout)
	defer cancel()

	return s.provider.History(ctx, city, date)
}

// ByLocation returns current conditions for an IP address; an empty ip asks
// the provider to infer the location from the caller's network origin.
func (s *Service) ByLocation(ctx context.Context, ip string) (Snapshot, error) {
	query := ip
	if query == "" {
		query = "auto:ip"
	}

	ctx, cancel := context.WithTimeout(ctx, s.singleTimeout)
	defer cancel()

	return s.provider.Current(ctx, query)
}
