package domain

import "context"

// TravelData is the read-only tabular store, built once at startup and
// injected into services. Safe for concurrent reads without coordination.
type TravelData interface {
	LocationByID(id int) (Location, bool)
	ActivitiesByLocation(id int) []Activity // table order
	AccommodationsByCity(id int) []Accommodation
	Transports() []Transport
	LocationsSample(n int) []Location // first n rows, for prompt grounding
}

// ChatModel abstracts the completion API.
type ChatModel interface {
	Complete(ctx context.Context, turns []Turn, opts CompleteOptions) (Completion, error)
}

// WeatherProvider returns the hourly forecast for a coordinate pair.
// Non-2xx provider responses surface as *UpstreamError.
type WeatherProvider interface {
	Hourly(ctx context.Context, lat, lon float64) ([]HourlyWeather, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
