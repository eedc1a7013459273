package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel_agent/internal/app"
	"travel_agent/internal/domain"
)

func hourAt(t time.Time, temp float64, conditions ...string) domain.HourlyWeather {
	h := domain.HourlyWeather{Dt: t.Unix(), Temp: temp}
	for _, c := range conditions {
		h.Weather = append(h.Weather, domain.WeatherCondition{Main: c})
	}
	return h
}

func TestFetch_PlaceholderWhenNoProviderConfigured(t *testing.T) {
	svc := app.NewWeatherService(testData(), nil, nil, 0)

	rep, err := svc.Fetch(context.Background(), 1, date("2024-03-10"), date("2024-03-12"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rep.Summary.AvgTemp == nil || *rep.Summary.AvgTemp != 18 {
		t.Fatalf("avg_temp: %+v", rep.Summary.AvgTemp)
	}
	if rep.Summary.RainHours == nil || *rep.Summary.RainHours != 0 {
		t.Fatalf("rain_hours: %+v", rep.Summary.RainHours)
	}
	if rep.Details == nil || len(rep.Details) != 0 {
		t.Fatalf("details: %+v", rep.Details)
	}
}

func TestFetch_WindowFilterAndSummary(t *testing.T) {
	start := date("2024-03-10")
	end := date("2024-03-11")
	provider := &fakeProvider{hours: []domain.HourlyWeather{
		hourAt(start.Add(-time.Hour), 30, "Clear"),           // before window
		hourAt(start, 10, "Rain"),                            // boundary, in
		hourAt(start.Add(6*time.Hour), 20, "Clear"),          // in
		hourAt(end.AddDate(0, 0, 1), 12, "Snow"),             // padded boundary, in
		hourAt(end.AddDate(0, 0, 1).Add(time.Hour), 5, "Rain"), // past padding
	}}
	svc := app.NewWeatherService(testData(), provider, nil, 0)

	rep, err := svc.Fetch(context.Background(), 1, start, end)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(rep.Details) != 3 {
		t.Fatalf("details: want 3, got %d", len(rep.Details))
	}
	if rep.Summary.AvgTemp == nil || *rep.Summary.AvgTemp != 14.0 {
		t.Fatalf("avg_temp: %+v", rep.Summary.AvgTemp)
	}
	// Rain + Snow, matched case-insensitively
	if rep.Summary.RainHours == nil || *rep.Summary.RainHours != 2 {
		t.Fatalf("rain_hours: %+v", rep.Summary.RainHours)
	}
	if *rep.Summary.RainHours > len(rep.Details) {
		t.Fatalf("rain_hours exceeds details length")
	}
}

func TestFetch_EmptyWindowYieldsNullAverage(t *testing.T) {
	provider := &fakeProvider{hours: []domain.HourlyWeather{
		hourAt(date("2024-06-01"), 25, "Clear"), // far outside the window
	}}
	svc := app.NewWeatherService(testData(), provider, nil, 0)

	rep, err := svc.Fetch(context.Background(), 1, date("2024-03-10"), date("2024-03-10"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if rep.Summary.AvgTemp != nil {
		t.Fatalf("avg_temp should be null, got %v", *rep.Summary.AvgTemp)
	}
	if rep.Summary.RainHours == nil || *rep.Summary.RainHours != 0 {
		t.Fatalf("rain_hours: %+v", rep.Summary.RainHours)
	}
	if len(rep.Details) != 0 {
		t.Fatalf("details: %+v", rep.Details)
	}
}

func TestFetch_ProviderNonSuccessIsSoftFailure(t *testing.T) {
	provider := &fakeProvider{err: &domain.UpstreamError{Service: "openweather", Status: 401, Body: `{"cod":401,"message":"Invalid API key"}`}}
	svc := app.NewWeatherService(testData(), provider, nil, 0)

	rep, err := svc.Fetch(context.Background(), 1, date("2024-03-10"), date("2024-03-10"))
	if err != nil {
		t.Fatalf("soft failure must not return an error, got %v", err)
	}
	if rep.Error != `{"cod":401,"message":"Invalid API key"}` {
		t.Fatalf("error payload: %q", rep.Error)
	}
}

func TestFetch_TransportErrorIsHardFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := app.NewWeatherService(testData(), &fakeProvider{err: boom}, nil, 0)

	_, err := svc.Fetch(context.Background(), 1, date("2024-03-10"), date("2024-03-10"))
	if !errors.Is(err, boom) {
		t.Fatalf("want transport error, got %v", err)
	}
}

func TestFetch_UnknownLocation(t *testing.T) {
	svc := app.NewWeatherService(testData(), nil, nil, 0)
	_, err := svc.Fetch(context.Background(), 404, date("2024-03-10"), date("2024-03-10"))
	if !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("want ErrLocationNotFound, got %v", err)
	}
}

type recordingCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func (c *recordingCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.gets++
	return false, nil
}

func (c *recordingCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.sets++
	return nil
}

func (c *recordingCache) Del(ctx context.Context, key string) error { return nil }

func TestFetch_CacheIsConsultedWhenConfigured(t *testing.T) {
	cache := &recordingCache{}
	provider := &fakeProvider{hours: []domain.HourlyWeather{hourAt(date("2024-03-10"), 20, "Clear")}}
	svc := app.NewWeatherService(testData(), provider, cache, 10*time.Minute)

	if _, err := svc.Fetch(context.Background(), 1, date("2024-03-10"), date("2024-03-10")); err != nil {
		t.Fatalf("err: %v", err)
	}
	if cache.gets != 1 || cache.sets != 1 {
		t.Fatalf("cache usage: gets=%d sets=%d", cache.gets, cache.sets)
	}
}
