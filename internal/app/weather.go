package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"travel_agent/internal/domain"
)

// placeholder summary served when no weather credential is configured.
// Degraded mode, not an error.
const placeholderAvgTemp = 18.0

// WeatherService resolves a location id to coordinates and reduces the
// provider's hourly forecast to a summary over the requested window.
type WeatherService struct {
	data     domain.TravelData
	provider domain.WeatherProvider // nil when no credential is configured
	cache    domain.Cache           // nil disables caching
	cacheTTL time.Duration
}

func NewWeatherService(data domain.TravelData, provider domain.WeatherProvider, cache domain.Cache, ttl time.Duration) *WeatherService {
	return &WeatherService{data: data, provider: provider, cache: cache, cacheTTL: ttl}
}

// Fetch returns a weather report for the location over [start, end+1d].
// Provider non-success responses are a soft failure: the report carries the
// raw body under "error" and no Go error is returned.
func (s *WeatherService) Fetch(ctx context.Context, locationID int, start, end time.Time) (domain.WeatherReport, error) {
	loc, ok := s.data.LocationByID(locationID)
	if !ok {
		return domain.WeatherReport{}, fmt.Errorf("location %d: %w", locationID, domain.ErrLocationNotFound)
	}

	if s.provider == nil {
		zero := 0
		avg := placeholderAvgTemp
		return domain.WeatherReport{
			Summary: domain.WeatherSummary{AvgTemp: &avg, RainHours: &zero},
			Details: []domain.HourlyWeather{},
		}, nil
	}

	key := fmt.Sprintf("weather:%d:%s:%s", locationID, start.Format("2006-01-02"), end.Format("2006-01-02"))
	if s.cache != nil {
		var cached domain.WeatherReport
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return cached, nil
		}
	}

	hours, err := s.provider.Hourly(ctx, loc.Lat, loc.Lon)
	if err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			return domain.WeatherReport{Error: ue.Body, Details: []domain.HourlyWeather{}}, nil
		}
		return domain.WeatherReport{}, err
	}

	report := summarize(hours, start, end.AddDate(0, 0, 1)) // +1 day pads for timezone slack
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, report, int(s.cacheTTL.Seconds()))
	}
	return report, nil
}

func summarize(hours []domain.HourlyWeather, from, to time.Time) domain.WeatherReport {
	relevant := make([]domain.HourlyWeather, 0, len(hours))
	var sum float64
	rain := 0
	for _, h := range hours {
		t := time.Unix(h.Dt, 0).UTC()
		if t.Before(from) || t.After(to) {
			continue
		}
		relevant = append(relevant, h)
		sum += h.Temp
		if hasPrecipitation(h) {
			rain++
		}
	}

	summary := domain.WeatherSummary{RainHours: &rain}
	if len(relevant) > 0 {
		avg := math.Round(sum/float64(len(relevant))*10) / 10
		summary.AvgTemp = &avg
	}
	return domain.WeatherReport{Summary: summary, Details: relevant}
}

func hasPrecipitation(h domain.HourlyWeather) bool {
	for _, c := range h.Weather {
		if strings.EqualFold(c.Main, "rain") || strings.EqualFold(c.Main, "snow") {
			return true
		}
	}
	return false
}
