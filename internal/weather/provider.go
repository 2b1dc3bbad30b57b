package weather

import "context"

// Provider abstracts the upstream weather data source. The query string is a
// provider location query: a city name, "lat,lon" coordinates, a literal IP
// address or "auto:ip".
type Provider interface {
	// Current returns current conditions for the queried location.
	Current(ctx context.Context, query string) (Snapshot, error)

	// Forecast returns current conditions plus a multi-day forecast.
	Forecast(ctx context.Context, query string, days int) (Snapshot, []ForecastDay, error)

	// History returns the day report for one past calendar date (YYYY-MM-DD).
	History(ctx context.Context, query, date string) (Location, HistoryDay, error)
}
