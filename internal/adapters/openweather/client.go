package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travel_agent/internal/adapters/observability"
	"travel_agent/internal/domain"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/3.0/onecall"

// Client fetches the One Call hourly forecast. Any non-200 answer is
// surfaced as *domain.UpstreamError with the raw body preserved so callers
// can relay it verbatim.
type Client struct {
	base string
	key  string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if base == "" {
		base = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: base,
		key:  key,
		hc:   &http.Client{Timeout: 15 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) Hourly(ctx context.Context, lat, lon float64) ([]domain.HourlyWeather, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("exclude", "minutely,daily,alerts")
	q.Set("units", "metric")
	q.Set("appid", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("openweather: %w", err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("openweather", "onecall", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return nil, &domain.UpstreamError{
			Service: "openweather",
			Status:  resp.StatusCode,
			Body:    strings.TrimSpace(string(b)),
		}
	}

	var out struct {
		Hourly []domain.HourlyWeather `json:"hourly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("openweather: decode: %w", err)
	}
	return out.Hourly, nil
}
