package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	GeocodingAPIKey  string        `env:"GEOCODING_API_KEY,required,notEmpty"`
	GeocodingBaseURL string        `env:"GEOCODING_BASE_URL" envDefault:"https://maps.googleapis.com"`
	GeocodingTimeout time.Duration `env:"GEOCODING_TIMEOUT" envDefault:"5s"`
	GeocacheTTL      time.Duration `env:"GEOCACHE_TTL" envDefault:"0s"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	NATSURL   string `env:"NATS_URL"`

	MatchMaxDistanceKm float64 `env:"MATCH_MAX_DISTANCE_KM" envDefault:"10000"`
	MatchMaxRating     float64 `env:"MATCH_MAX_RATING" envDefault:"5"`
	MatchWorkers       int     `env:"MATCH_WORKERS" envDefault:"8"`

	LikeRateLimit  int           `env:"LIKE_RATE_LIMIT" envDefault:"60"`
	LikeRateWindow time.Duration `env:"LIKE_RATE_WINDOW" envDefault:"1m"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
