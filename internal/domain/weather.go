package domain

// WeatherCondition is one condition tag on an hourly record ("Rain", "Clear", ...).
type WeatherCondition struct {
	Main string `json:"main"`
}

// HourlyWeather is a single hourly record from the weather provider.
// Dt is a unix timestamp (UTC), Temp is in the configured unit system (metric).
type HourlyWeather struct {
	Dt      int64              `json:"dt"`
	Temp    float64            `json:"temp"`
	Weather []WeatherCondition `json:"weather"`
}

// WeatherSummary reduces a set of hourly records. AvgTemp is nil when the
// set was empty; the itinerary embeds this type with both fields nil.
type WeatherSummary struct {
	AvgTemp   *float64 `json:"avg_temp"`
	RainHours *int     `json:"rain_hours"`
}

// WeatherReport is the weather tool's output. A non-success provider
// response is a soft failure: Error carries the raw response body and the
// other fields stay empty. Callers must check Error before trusting Summary.
type WeatherReport struct {
	Summary WeatherSummary  `json:"summary"`
	Details []HourlyWeather `json:"details"`
	Error   string          `json:"error,omitempty"`
}
