package weather

// Location identifies the place a snapshot or day report describes.
// Values are passed through from the upstream provider verbatim.
type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TzID      string  `json:"tz_id"`
	Localtime string  `json:"localtime"`
}

// Condition is the provider's textual weather condition with its icon and code.
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

// Current holds the whitelisted current-conditions fields.
type Current struct {
	TempC      float64   `json:"temp_c"`
	TempF      float64   `json:"temp_f"`
	FeelslikeC float64   `json:"feelslike_c"`
	FeelslikeF float64   `json:"feelslike_f"`
	Condition  Condition `json:"condition"`
	Humidity   int       `json:"humidity"`
	WindKph    float64   `json:"wind_kph"`
	WindMph    float64   `json:"wind_mph"`
	WindDegree int       `json:"wind_degree"`
	WindDir    string    `json:"wind_dir"`
	PressureMb float64   `json:"pressure_mb"`
	VisKm      float64   `json:"vis_km"`
	UV         float64   `json:"uv"`
	GustKph    float64   `json:"gust_kph"`
}

// Snapshot is the normalized current-conditions output shape shared by the
// current, coordinates, location and forecast operations. Air quality is an
// opaque provider-defined mapping; an empty map is emitted when the provider
// sends none.
type Snapshot struct {
	Location   Location           `json:"location"`
	Current    Current            `json:"current"`
	AirQuality map[string]float64 `json:"air_quality"`
}

// DaySummary is the day-level aggregate shared by forecast and history days.
type DaySummary struct {
	MaxtempC          float64   `json:"maxtemp_c"`
	MaxtempF          float64   `json:"maxtemp_f"`
	MintempC          float64   `json:"mintemp_c"`
	MintempF          float64   `json:"mintemp_f"`
	AvgtempC          float64   `json:"avgtemp_c"`
	AvgtempF          float64   `json:"avgtemp_f"`
	Condition         Condition `json:"condition"`
	MaxwindKph        float64   `json:"maxwind_kph"`
	TotalprecipMm     float64   `json:"totalprecip_mm"`
	Avghumidity       float64   `json:"avghumidity"`
	DailyChanceOfRain int       `json:"daily_chance_of_rain"`
	UV                float64   `json:"uv"`
}

// Astro holds per-day astronomical data.
type Astro struct {
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	Moonrise  string `json:"moonrise"`
	Moonset   string `json:"moonset"`
	MoonPhase string `json:"moon_phase"`
}

// HourSample is a single down-sampled hourly entry of a forecast day.
type HourSample struct {
	Time       string    `json:"time"`
	TempC      float64   `json:"temp_c"`
	TempF      float64   `json:"temp_f"`
	Condition  Condition `json:"condition"`
	WindKph    float64   `json:"wind_kph"`
	Humidity   int       `json:"humidity"`
	FeelslikeC float64   `json:"feelslike_c"`
	FeelslikeF float64   `json:"feelslike_f"`
}

// ForecastDay is one forecast calendar day: aggregate, astro and every third
// hourly sample of the provider's 24.
type ForecastDay struct {
	Date  string       `json:"date"`
	Day   DaySummary   `json:"day"`
	Astro Astro        `json:"astro"`
	Hours []HourSample `json:"hour"`
}

// HistoryDay is one past calendar day; history carries no hourly data.
type HistoryDay struct {
	Date string     `json:"date"`
	Day  DaySummary `json:"day"`
}

// ForecastReport is the forecast operation's aggregate response.
type ForecastReport struct {
	Snapshot
	Forecast ForecastBlock `json:"forecast"`
}

// ForecastBlock mirrors the provider's forecastday nesting so the frontend
// shape stays stable.
type ForecastBlock struct {
	Forecastday []ForecastDay `json:"forecastday"`
}

// HistoryReport is the history operation's aggregate response. Location comes
// from the last per-date call that succeeded.
type HistoryReport struct {
	Location Location     `json:"location"`
	History  []HistoryDay `json:"history"`
}
