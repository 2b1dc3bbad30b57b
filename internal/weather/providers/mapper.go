package providers

import (
	"fmt"

	"weather-gateway/internal/weather"
)

// hourStride selects every third hourly sample of a forecast day.
const hourStride = 3

// fields tracks the first missing required field while mapping a payload.
type fields struct {
	missing string
}

func (f *fields) miss(path string) {
	if f.missing == "" {
		f.missing = path
	}
}

func (f *fields) num(v *float64, path string) float64 {
	if v == nil {
		f.miss(path)
		return 0
	}
	return *v
}

func (f *fields) count(v *int, path string) int {
	if v == nil {
		f.miss(path)
		return 0
	}
	return *v
}

func (f *fields) str(v *string, path string) string {
	if v == nil {
		f.miss(path)
		return ""
	}
	return *v
}

func (f *fields) err() error {
	if f.missing == "" {
		return nil
	}
	return fmt.Errorf("%w: missing field %q", weather.ErrDataFormat, f.missing)
}

// mapSnapshot extracts the whitelisted location and current-conditions fields
// from a raw payload. All gateway operations returning a Snapshot go through
// here so the field set cannot drift between endpoints.
func mapSnapshot(p payload) (weather.Snapshot, error) {
	f := &fields{}
	if p.Location == nil {
		f.miss("location")
	}
	if p.Current == nil {
		f.miss("current")
	}
	if err := f.err(); err != nil {
		return weather.Snapshot{}, err
	}

	cur := weather.Current{
		TempC:      f.num(p.Current.TempC, "current.temp_c"),
		TempF:      f.num(p.Current.TempF, "current.temp_f"),
		FeelslikeC: f.num(p.Current.FeelslikeC, "current.feelslike_c"),
		FeelslikeF: f.num(p.Current.FeelslikeF, "current.feelslike_f"),
		Condition:  mapCondition(p.Current.Condition, "current.condition", f),
		Humidity:   f.count(p.Current.Humidity, "current.humidity"),
		WindKph:    f.num(p.Current.WindKph, "current.wind_kph"),
		WindMph:    f.num(p.Current.WindMph, "current.wind_mph"),
		WindDegree: f.count(p.Current.WindDegree, "current.wind_degree"),
		WindDir:    f.str(p.Current.WindDir, "current.wind_dir"),
		PressureMb: f.num(p.Current.PressureMb, "current.pressure_mb"),
		VisKm:      f.num(p.Current.VisKm, "current.vis_km"),
		UV:         f.num(p.Current.UV, "current.uv"),
	}

	// Gust is the one numeric field the provider omits in calm conditions.
	if p.Current.GustKph != nil {
		cur.GustKph = *p.Current.GustKph
	}

	airQuality := p.Current.AirQuality
	if airQuality == nil {
		airQuality = map[string]float64{}
	}

	snapshot := weather.Snapshot{
		Location:   mapLocation(p.Location, f),
		Current:    cur,
		AirQuality: airQuality,
	}

	if err := f.err(); err != nil {
		return weather.Snapshot{}, err
	}
	return snapshot, nil
}

func mapLocation(loc *rawLocation, f *fields) weather.Location {
	return weather.Location{
		Name:      f.str(loc.Name, "location.name"),
		Region:    f.str(loc.Region, "location.region"),
		Country:   f.str(loc.Country, "location.country"),
		Lat:       f.num(loc.Lat, "location.lat"),
		Lon:       f.num(loc.Lon, "location.lon"),
		TzID:      f.str(loc.TzID, "location.tz_id"),
		Localtime: f.str(loc.Localtime, "location.localtime"),
	}
}

func mapCondition(c *rawCondition, path string, f *fields) weather.Condition {
	if c == nil {
		f.miss(path)
		return weather.Condition{}
	}
	return weather.Condition{
		Text: f.str(c.Text, path+".text"),
		Icon: f.str(c.Icon, path+".icon"),
		Code: f.count(c.Code, path+".code"),
	}
}

// mapForecastDays maps the forecastday array, reducing each day's hourly
// samples to every third entry (indices 0, 3, ..., clamped to array length).
func mapForecastDays(p payload) ([]weather.ForecastDay, error) {
	if p.Forecast == nil {
		return nil, fmt.Errorf("%w: missing field %q", weather.ErrDataFormat, "forecast")
	}

	f := &fields{}
	days := make([]weather.ForecastDay, 0, len(p.Forecast.Forecastday))
	for i, d := range p.Forecast.Forecastday {
		path := fmt.Sprintf("forecast.forecastday[%d]", i)
		days = append(days, weather.ForecastDay{
			Date:  f.str(d.Date, path+".date"),
			Day:   mapDay(d.Day, path+".day", f),
			Astro: mapAstro(d.Astro, path+".astro", f),
			Hours: reduceHours(d.Hour, path+".hour", f),
		})
	}

	if err := f.err(); err != nil {
		return nil, err
	}
	return days, nil
}

func mapDay(d *rawDay, path string, f *fields) weather.DaySummary {
	if d == nil {
		f.miss(path)
		return weather.DaySummary{}
	}
	return weather.DaySummary{
		MaxtempC:          f.num(d.MaxtempC, path+".maxtemp_c"),
		MaxtempF:          f.num(d.MaxtempF, path+".maxtemp_f"),
		MintempC:          f.num(d.MintempC, path+".mintemp_c"),
		MintempF:          f.num(d.MintempF, path+".mintemp_f"),
		AvgtempC:          f.num(d.AvgtempC, path+".avgtemp_c"),
		AvgtempF:          f.num(d.AvgtempF, path+".avgtemp_f"),
		Condition:         mapCondition(d.Condition, path+".condition", f),
		MaxwindKph:        f.num(d.MaxwindKph, path+".maxwind_kph"),
		TotalprecipMm:     f.num(d.TotalprecipMm, path+".totalprecip_mm"),
		Avghumidity:       f.num(d.Avghumidity, path+".avghumidity"),
		DailyChanceOfRain: f.count(d.DailyChanceOfRain, path+".daily_chance_of_rain"),
		UV:                f.num(d.UV, path+".uv"),
	}
}

func mapAstro(a *rawAstro, path string, f *fields) weather.Astro {
	if a == nil {
		f.miss(path)
		return weather.Astro{}
	}
	return weather.Astro{
		Sunrise:   f.str(a.Sunrise, path+".sunrise"),
		Sunset:    f.str(a.Sunset, path+".sunset"),
		Moonrise:  f.str(a.Moonrise, path+".moonrise"),
		Moonset:   f.str(a.Moonset, path+".moonset"),
		MoonPhase: f.str(a.MoonPhase, path+".moon_phase"),
	}
}

func reduceHours(hours []rawHour, path string, f *fields) []weather.HourSample {
	samples := make([]weather.HourSample, 0, (len(hours)+hourStride-1)/hourStride)
	for i := 0; i < len(hours); i += hourStride {
		h := hours[i]
		hp := fmt.Sprintf("%s[%d]", path, i)
		samples = append(samples, weather.HourSample{
			Time:       f.str(h.Time, hp+".time"),
			TempC:      f.num(h.TempC, hp+".temp_c"),
			TempF:      f.num(h.TempF, hp+".temp_f"),
			Condition:  mapCondition(h.Condition, hp+".condition", f),
			WindKph:    f.num(h.WindKph, hp+".wind_kph"),
			Humidity:   f.count(h.Humidity, hp+".humidity"),
			FeelslikeC: f.num(h.FeelslikeC, hp+".feelslike_c"),
			FeelslikeF: f.num(h.FeelslikeF, hp+".feelslike_f"),
		})
	}
	return samples
}

// mapHistoryDay maps a single-date history payload to the location metadata
// and the day report.
func mapHistoryDay(p payload) (weather.Location, weather.HistoryDay, error) {
	if p.Location == nil {
		return weather.Location{}, weather.HistoryDay{}, fmt.Errorf("%w: missing field %q", weather.ErrDataFormat, "location")
	}
	if p.Forecast == nil || len(p.Forecast.Forecastday) == 0 {
		return weather.Location{}, weather.HistoryDay{}, fmt.Errorf("%w: missing field %q", weather.ErrDataFormat, "forecast.forecastday")
	}

	f := &fields{}
	loc := mapLocation(p.Location, f)

	d := p.Forecast.Forecastday[0]
	day := weather.HistoryDay{
		Date: f.str(d.Date, "forecast.forecastday[0].date"),
		Day:  mapDay(d.Day, "forecast.forecastday[0].day", f),
	}

	if err := f.err(); err != nil {
		return weather.Location{}, weather.HistoryDay{}, err
	}
	return loc, day, nil
}
