package providers

// Raw weatherapi.com payload shapes. Required fields are pointers so that the
// mapper can distinguish "absent upstream" from a genuine zero value.

type payload struct {
	Location *rawLocation `json:"location"`
	Current  *rawCurrent  `json:"current"`
	Forecast *rawForecast `json:"forecast"`
}

type rawLocation struct {
	Name      *string  `json:"name"`
	Region    *string  `json:"region"`
	Country   *string  `json:"country"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	TzID      *string  `json:"tz_id"`
	Localtime *string  `json:"localtime"`
}

type rawCondition struct {
	Text *string `json:"text"`
	Icon *string `json:"icon"`
	Code *int    `json:"code"`
}

type rawCurrent struct {
	TempC      *float64      `json:"temp_c"`
	TempF      *float64      `json:"temp_f"`
	FeelslikeC *float64      `json:"feelslike_c"`
	FeelslikeF *float64      `json:"feelslike_f"`
	Condition  *rawCondition `json:"condition"`
	Humidity   *int          `json:"humidity"`
	WindKph    *float64      `json:"wind_kph"`
	WindMph    *float64      `json:"wind_mph"`
	WindDegree *int          `json:"wind_degree"`
	WindDir    *string       `json:"wind_dir"`
	PressureMb *float64      `json:"pressure_mb"`
	VisKm      *float64      `json:"vis_km"`
	UV         *float64      `json:"uv"`

	// Optional: gust defaults to 0 and air quality to an empty map.
	GustKph    *float64           `json:"gust_kph"`
	AirQuality map[string]float64 `json:"air_quality"`
}

type rawForecast struct {
	Forecastday []rawForecastDay `json:"forecastday"`
}

type rawForecastDay struct {
	Date  *string   `json:"date"`
	Day   *rawDay   `json:"day"`
	Astro *rawAstro `json:"astro"`
	Hour  []rawHour `json:"hour"`
}

type rawDay struct {
	MaxtempC          *float64      `json:"maxtemp_c"`
	MaxtempF          *float64      `json:"maxtemp_f"`
	MintempC          *float64      `json:"mintemp_c"`
	MintempF          *float64      `json:"mintemp_f"`
	AvgtempC          *float64      `json:"avgtemp_c"`
	AvgtempF          *float64      `json:"avgtemp_f"`
	Condition         *rawCondition `json:"condition"`
	MaxwindKph        *float64      `json:"maxwind_kph"`
	TotalprecipMm     *float64      `json:"totalprecip_mm"`
	Avghumidity       *float64      `json:"avghumidity"`
	DailyChanceOfRain *int          `json:"daily_chance_of_rain"`
	UV                *float64      `json:"uv"`
}

type rawAstro struct {
	Sunrise   *string `json:"sunrise"`
	Sunset    *string `json:"sunset"`
	Moonrise  *string `json:"moonrise"`
	Moonset   *string `json:"moonset"`
	MoonPhase *string `json:"moon_phase"`
}

type rawHour struct {
	Time       *string       `json:"time"`
	TempC      *float64      `json:"temp_c"`
	TempF      *float64      `json:"temp_f"`
	Condition  *rawCondition `json:"condition"`
	WindKph    *float64      `json:"wind_kph"`
	Humidity   *int          `json:"humidity"`
	FeelslikeC *float64      `json:"feelslike_c"`
	FeelslikeF *float64      `json:"feelslike_f"`
}
