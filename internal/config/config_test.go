package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "bitirme_test")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("ACCESS_JWT_SECRET", "access-secret-32-bytes-aaaaaaaaaa")
	os.Setenv("REFRESH_JWT_SECRET", "refresh-secret-32-bytes-bbbbbbbbb")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		t.Fatalf("expected distinct access/refresh secrets")
	}
	if cfg.JWT.AccessTokenTTL >= cfg.JWT.RefreshTokenTTL {
		t.Fatalf("access TTL %v should be shorter than refresh TTL %v", cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)
	}
	if cfg.JWT.StoreTimeout <= 0 {
		t.Fatalf("expected a default store timeout, got %v", cfg.JWT.StoreTimeout)
	}
}
