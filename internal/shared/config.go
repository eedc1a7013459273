package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv           string
	HTTPAddr         string
	MetricsAddr      string
	DataDir          string
	OpenAIKey        string
	OpenAIBase       string
	OpenAIAPIVersion string
	Model            string
	OpenWeatherKey   string
	OpenWeatherBase  string
	WeatherRPS       int
	SnapshotSize     int
	RedisAddr        string
	RedisPass        string
	RedisDB          int
	CacheTTL         time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:           env("APP_ENV", "prod"),
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		MetricsAddr:      env("METRICS_ADDR", ":9100"),
		DataDir:          env("DATA_DIR", "data"),
		OpenAIKey:        env("OPENAI_API_KEY", ""),
		OpenAIBase:       env("OPENAI_BASE_URL", ""),
		OpenAIAPIVersion: env("OPENAI_API_VERSION", ""),
		Model:            env("OPENAI_MODEL", "gpt-4o-mini"),
		OpenWeatherKey:   env("OPENWEATHER_API_KEY", ""),
		OpenWeatherBase:  env("OPENWEATHER_BASE_URL", ""),
		WeatherRPS:       atoi("OPENWEATHER_RPS", 5),
		SnapshotSize:     atoi("SNAPSHOT_SIZE", 12),
		RedisAddr:        env("REDIS_ADDR", ""),
		RedisPass:        env("REDIS_PASSWORD", ""),
		RedisDB:          atoi("REDIS_DB", 0),
		CacheTTL:         time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
