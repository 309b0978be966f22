package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/swapwise")
	t.Setenv("GEOCODING_API_KEY", "key")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.MatchMaxDistanceKm != 10000 || cfg.MatchMaxRating != 5 || cfg.MatchWorkers != 8 {
		t.Fatalf("unexpected match defaults: %+v", cfg)
	}
	if cfg.GeocodingTimeout != 5*time.Second {
		t.Fatalf("expected 5s geocoding timeout, got %v", cfg.GeocodingTimeout)
	}
	if cfg.GeocacheTTL != 0 {
		t.Fatalf("expected cache without ttl by default, got %v", cfg.GeocacheTTL)
	}
	if cfg.LikeRateLimit != 60 || cfg.LikeRateWindow != time.Minute {
		t.Fatalf("unexpected like rate defaults: %d per %v", cfg.LikeRateLimit, cfg.LikeRateWindow)
	}
}

func TestLoadConfig_RequiresGeocodingKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/swapwise")
	t.Setenv("GEOCODING_API_KEY", "")
	t.Setenv("JWT_SECRET", "secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when GEOCODING_API_KEY is missing")
	}
}

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/swapwise")
	t.Setenv("GEOCODING_API_KEY", "key")
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is empty")
	}
}
